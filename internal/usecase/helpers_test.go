package usecase

import (
	"io"
	"log/slog"

	"github.com/polkiloo/customers/internal/domain/model"
	testhelpers "github.com/polkiloo/customers/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestCustomerUseCase() (*CustomerUseCase, *testhelpers.CustomerRepositoryStub, *testhelpers.ObjectStoreStub) {
	repo := testhelpers.NewCustomerRepositoryStub()
	images := testhelpers.NewObjectStoreStub()
	uc := NewCustomerUseCase(repo, testhelpers.HasherStub{}, images, "bucket", discardLogger())
	return uc, repo, images
}

func validRegistration() model.Registration {
	return model.Registration{
		Name:     "Alex",
		Email:    "alex@example.com",
		Password: "password",
		Age:      30,
		Gender:   model.GenderMale,
	}
}

func strPtr(v string) *string { return &v }

func intPtr(v int) *int { return &v }
