package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/customers/internal/domain/errors"
	"github.com/polkiloo/customers/internal/domain/model"
	pkgAuth "github.com/polkiloo/customers/internal/pkg/auth"
	"github.com/polkiloo/customers/internal/server/http/dto"
	"github.com/polkiloo/customers/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/customers/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func performRequest(t *testing.T, method, pattern, path string, handler gin.HandlerFunc, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, pattern, handler)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) dto.APIError {
	t.Helper()
	var apiErr dto.APIError
	if err := json.Unmarshal(resp.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("expected error body, got %q: %v", resp.Body.String(), err)
	}
	return apiErr
}

func multipartBody(t *testing.T, field string, data []byte) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, "avatar.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return buf.Bytes(), writer.FormDataContentType()
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: customer", domainErrors.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: email", domainErrors.ErrAlreadyExists), http.StatusConflict},
		{fmt.Errorf("%w: age", domainErrors.ErrValidation), http.StatusBadRequest},
		{domainErrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{pkgAuth.ErrInvalidToken, http.StatusUnauthorized},
		{domainErrors.ErrProfileImageStorage, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, got)
		}
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	email := testhelpers.RandomEmail()
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.RegistrationRequest{Name: "Alex", Email: email, Password: password, Age: 30, Gender: "male"})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(_ context.Context, reg model.Registration) (model.Customer, string, error) {
		if reg.Email != email || reg.Password != password || reg.Gender != model.GenderMale {
			t.Fatalf("unexpected registration passed to facade: %+v", reg)
		}
		return model.Customer{ID: 5, Name: reg.Name, Email: reg.Email, PasswordHash: "hash", Age: reg.Age, Gender: reg.Gender}, "session-token", nil
	}})

	resp := performRequest(t, http.MethodPost, "/customers", "/customers", handler.Register, body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", got)
	}
	var view dto.CustomerView
	if err := json.Unmarshal(resp.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.ID != 5 || view.Username != email {
		t.Fatalf("unexpected view %+v", view)
	}
	if bytes.Contains(resp.Body.Bytes(), []byte("hash")) {
		t.Fatalf("password hash leaked: %s", resp.Body.String())
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	valid := []byte(`{"name":"a","email":"a@example.com","password":"b","age":20,"gender":"MALE"}`)
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "validation", body: []byte(`{"name":""}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, model.Registration) (model.Customer, string, error) {
			return model.Customer{}, "", fmt.Errorf("%w: name is required", domainErrors.ErrValidation)
		}}, status: http.StatusBadRequest},
		{name: "already exists", body: valid, facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, model.Registration) (model.Customer, string, error) {
			return model.Customer{}, "", domainErrors.ErrAlreadyExists
		}}, status: http.StatusConflict},
		{name: "internal", body: valid, facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, model.Registration) (model.Customer, string, error) {
			return model.Customer{}, "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/customers", "/customers", NewAuthHandler(tt.facade).Register, tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			apiErr := decodeError(t, resp)
			if apiErr.StatusCode != tt.status || apiErr.Path != "/customers" {
				t.Fatalf("unexpected error body %+v", apiErr)
			}
			if resp.Header().Get("Authorization") != "" {
				t.Fatal("expected no authorization header on failure")
			}
		})
	}
}

func TestAuthHandlerInternalErrorHidesDetails(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{LoginFn: func(context.Context, string, string) (model.Customer, string, error) {
		return model.Customer{}, "", errors.New("pq: connection refused to 10.0.0.1")
	}})
	resp := performRequest(t, http.MethodPost, "/login", "/login", handler.Login, []byte(`{"username":"a","password":"b"}`), jsonHeaders)
	if apiErr := decodeError(t, resp); apiErr.Message != internalErrorMessage {
		t.Fatalf("expected generic message, got %q", apiErr.Message)
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	var gotEmail, gotPassword string
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{LoginFn: func(_ context.Context, email, password string) (model.Customer, string, error) {
		gotEmail, gotPassword = email, password
		return model.Customer{ID: 1, Email: email}, "jwt", nil
	}})
	resp := performRequest(t, http.MethodPost, "/login", "/login", handler.Login, []byte(`{"username":"a@example.com","password":"pass"}`), jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotEmail != "a@example.com" || gotPassword != "pass" {
		t.Fatalf("unexpected credentials %q %q", gotEmail, gotPassword)
	}
	if resp.Header().Get("Authorization") != "Bearer jwt" {
		t.Fatalf("expected authorization header, got %q", resp.Header().Get("Authorization"))
	}
	var body dto.LoginResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if body.Token != "jwt" || body.Customer.Email != "a@example.com" {
		t.Fatalf("unexpected login response %+v", body)
	}
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid", body: []byte(`{"username":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{LoginFn: func(context.Context, string, string) (model.Customer, string, error) {
			return model.Customer{}, "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusUnauthorized},
		{name: "internal", body: []byte(`{"username":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{LoginFn: func(context.Context, string, string) (model.Customer, string, error) {
			return model.Customer{}, "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(tt.facade).Login, tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestCustomerHandlerList(t *testing.T) {
	handler := NewCustomerHandler(testhelpers.CustomerFacadeStub{}, 0)
	resp := performRequest(t, http.MethodGet, "/customers", "/customers", handler.List, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var views []dto.CustomerView
	if err := json.Unmarshal(resp.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(views) != 1 || views[0].Email != "alex@example.com" {
		t.Fatalf("unexpected customers %+v", views)
	}

	failing := NewCustomerHandler(testhelpers.CustomerFacadeStub{CustomersFn: func(context.Context) ([]model.Customer, error) {
		return nil, errors.New("boom")
	}}, 0)
	resp = performRequest(t, http.MethodGet, "/customers", "/customers", failing.List, nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestCustomerHandlerGet(t *testing.T) {
	handler := NewCustomerHandler(testhelpers.CustomerFacadeStub{CustomerFn: func(_ context.Context, id int64) (model.Customer, error) {
		if id == 404 {
			return model.Customer{}, fmt.Errorf("%w: customer with id [404] not found", domainErrors.ErrNotFound)
		}
		return model.Customer{ID: id, Email: "a@example.com"}, nil
	}}, 0)

	resp := performRequest(t, http.MethodGet, "/customers/:id", "/customers/7", handler.Get, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/customers/:id", "/customers/404", handler.Get, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
	if apiErr := decodeError(t, resp); apiErr.Message != "not found: customer with id [404] not found" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}

	for _, path := range []string{"/customers/abc", "/customers/0", "/customers/-1"} {
		resp = performRequest(t, http.MethodGet, "/customers/:id", path, handler.Get, nil, nil)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", path, resp.Code)
		}
	}
}

func TestCustomerHandlerUpdate(t *testing.T) {
	var got model.CustomerUpdate
	handler := NewCustomerHandler(testhelpers.CustomerFacadeStub{UpdateFn: func(_ context.Context, id int64, update model.CustomerUpdate) (model.Customer, error) {
		got = update
		return model.Customer{ID: id, Name: *update.Name, Age: 30}, nil
	}}, 0)

	resp := performRequest(t, http.MethodPut, "/customers/:id", "/customers/3", handler.Update, []byte(`{"name":"Sam"}`), jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got.Name == nil || *got.Name != "Sam" || got.Email != nil || got.Age != nil {
		t.Fatalf("unexpected update %+v", got)
	}

	resp = performRequest(t, http.MethodPut, "/customers/:id", "/customers/3", handler.Update, []byte(`nope`), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for bad json, got %d", resp.Code)
	}
}

func TestCustomerHandlerUpdateFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "no changes", err: fmt.Errorf("%w: no data changes found", domainErrors.ErrValidation), status: http.StatusBadRequest},
		{name: "email taken", err: fmt.Errorf("%w: email already taken", domainErrors.ErrAlreadyExists), status: http.StatusConflict},
		{name: "missing", err: domainErrors.ErrNotFound, status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewCustomerHandler(testhelpers.CustomerFacadeStub{UpdateFn: func(context.Context, int64, model.CustomerUpdate) (model.Customer, error) {
				return model.Customer{}, tt.err
			}}, 0)
			resp := performRequest(t, http.MethodPut, "/customers/:id", "/customers/3", handler.Update, []byte(`{}`), jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestCustomerHandlerDelete(t *testing.T) {
	var deleted int64
	handler := NewCustomerHandler(testhelpers.CustomerFacadeStub{DeleteFn: func(_ context.Context, id int64) error {
		if id == 9 {
			return domainErrors.ErrNotFound
		}
		deleted = id
		return nil
	}}, 0)

	resp := performRequest(t, http.MethodDelete, "/customers/:id", "/customers/3", handler.Delete, nil, nil)
	if resp.Code != http.StatusOK || deleted != 3 {
		t.Fatalf("expected delete of 3 with 200, got %d (deleted %d)", resp.Code, deleted)
	}

	resp = performRequest(t, http.MethodDelete, "/customers/:id", "/customers/9", handler.Delete, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestCustomerHandlerUploadProfileImage(t *testing.T) {
	var stored []byte
	handler := NewCustomerHandler(testhelpers.CustomerFacadeStub{UploadImageFn: func(_ context.Context, id int64, data []byte) (string, error) {
		stored = data
		return "img-1", nil
	}}, 16)

	body, contentType := multipartBody(t, "file", []byte("png-bytes"))
	resp := performRequest(t, http.MethodPost, "/customers/:id/profile-image", "/customers/1/profile-image", handler.UploadProfileImage, body, map[string]string{"Content-Type": contentType})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if string(stored) != "png-bytes" {
		t.Fatalf("unexpected stored bytes %q", stored)
	}
	var out dto.ProfileImageResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil || out.ProfileImageID != "img-1" {
		t.Fatalf("unexpected response %s (%v)", resp.Body.String(), err)
	}
}

func TestCustomerHandlerUploadProfileImageFailures(t *testing.T) {
	storageFailure := testhelpers.CustomerFacadeStub{UploadImageFn: func(context.Context, int64, []byte) (string, error) {
		return "", fmt.Errorf("%w: s3 down", domainErrors.ErrProfileImageStorage)
	}}
	tooLarge, tooLargeType := multipartBody(t, "file", bytes.Repeat([]byte("x"), 17))
	wrongField, wrongFieldType := multipartBody(t, "avatar", []byte("x"))
	empty, emptyType := multipartBody(t, "file", nil)
	ok, okType := multipartBody(t, "file", []byte("x"))

	tests := []struct {
		name        string
		facade      testhelpers.CustomerFacadeStub
		body        []byte
		contentType string
		status      int
	}{
		{name: "too large", body: tooLarge, contentType: tooLargeType, status: http.StatusRequestEntityTooLarge},
		{name: "wrong field", body: wrongField, contentType: wrongFieldType, status: http.StatusBadRequest},
		{name: "empty", body: empty, contentType: emptyType, status: http.StatusBadRequest},
		{name: "not multipart", body: []byte("x"), contentType: "text/plain", status: http.StatusBadRequest},
		{name: "storage", facade: storageFailure, body: ok, contentType: okType, status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewCustomerHandler(tt.facade, 16)
			resp := performRequest(t, http.MethodPost, "/customers/:id/profile-image", "/customers/1/profile-image", handler.UploadProfileImage, tt.body, map[string]string{"Content-Type": tt.contentType})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestCustomerHandlerUploadProfileImageRejectsOversizedBody(t *testing.T) {
	called := false
	handler := NewCustomerHandler(testhelpers.CustomerFacadeStub{UploadImageFn: func(context.Context, int64, []byte) (string, error) {
		called = true
		return "img", nil
	}}, 16)

	oversized, contentType := multipartBody(t, "file", bytes.Repeat([]byte("x"), int(middleware.MultipartOverhead)+32))
	resp := performRequest(t, http.MethodPost, "/customers/:id/profile-image", "/customers/1/profile-image", handler.UploadProfileImage, oversized, map[string]string{"Content-Type": contentType})
	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", resp.Code)
	}
	if called {
		t.Fatal("expected oversized upload not to reach the facade")
	}
	if apiErr := decodeError(t, resp); apiErr.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("unexpected error body %+v", apiErr)
	}
}

func TestCustomerHandlerUploadProfileImageStreamingLimit(t *testing.T) {
	handler := NewCustomerHandler(testhelpers.CustomerFacadeStub{}, 16)
	oversized, contentType := multipartBody(t, "file", bytes.Repeat([]byte("x"), int(middleware.MultipartOverhead)+32))

	router := gin.New()
	router.POST("/customers/:id/profile-image", handler.UploadProfileImage)
	req := httptest.NewRequest(http.MethodPost, "/customers/1/profile-image", bytes.NewReader(oversized))
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = -1
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code == http.StatusOK {
		t.Fatalf("expected oversized body without length to be rejected")
	}
}

func TestCustomerHandlerProfileImage(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")
	handler := NewCustomerHandler(testhelpers.CustomerFacadeStub{ProfileImageFn: func(_ context.Context, id int64) ([]byte, error) {
		if id == 2 {
			return nil, fmt.Errorf("%w: customer with id [2] profile image not found", domainErrors.ErrNotFound)
		}
		return png, nil
	}}, 0)

	resp := performRequest(t, http.MethodGet, "/customers/:id/profile-image", "/customers/1/profile-image", handler.ProfileImage, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != "image/png" {
		t.Fatalf("expected image/png, got %q", got)
	}
	if !bytes.Equal(resp.Body.Bytes(), png) {
		t.Fatalf("unexpected image bytes %q", resp.Body.Bytes())
	}

	resp = performRequest(t, http.MethodGet, "/customers/:id/profile-image", "/customers/2/profile-image", handler.ProfileImage, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}
