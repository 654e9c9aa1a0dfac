package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/polkiloo/customers/internal/adapter/objectstore"
	domainErrors "github.com/polkiloo/customers/internal/domain/errors"
	"github.com/polkiloo/customers/internal/domain/model"
	"github.com/polkiloo/customers/internal/domain/repository"
	pkgAuth "github.com/polkiloo/customers/internal/pkg/auth"
)

// ProfileImageKey returns the object key of a customer's profile image.
func ProfileImageKey(customerID int64, imageID string) string {
	return fmt.Sprintf("profile-images/%d/%s", customerID, imageID)
}

// CustomerUseCase orchestrates customer CRUD and profile images.
type CustomerUseCase struct {
	customers  repository.CustomerRepository
	hasher     pkgAuth.PasswordHasher
	images     objectstore.Store
	bucket     string
	logger     *slog.Logger
	newImageID func() string
}

// NewCustomerUseCase constructs CustomerUseCase storing images in bucket.
func NewCustomerUseCase(customers repository.CustomerRepository, hasher pkgAuth.PasswordHasher, images objectstore.Store, bucket string, logger *slog.Logger) *CustomerUseCase {
	return &CustomerUseCase{
		customers:  customers,
		hasher:     hasher,
		images:     images,
		bucket:     bucket,
		logger:     logger,
		newImageID: uuid.NewString,
	}
}

func notFound(id int64) error {
	return fmt.Errorf("%w: customer with id [%d] not found", domainErrors.ErrNotFound, id)
}

// List returns customers ordered by id, capped by the repository page size.
func (u *CustomerUseCase) List(ctx context.Context) ([]model.Customer, error) {
	return u.customers.SelectAll(ctx)
}

// Add validates and stores a new customer. Only the password hash is persisted.
func (u *CustomerUseCase) Add(ctx context.Context, reg model.Registration) (model.Customer, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	if err := ValidateRegistration(reg); err != nil {
		return model.Customer{}, err
	}

	exists, err := u.customers.ExistsByEmail(ctx, reg.Email)
	if err != nil {
		return model.Customer{}, err
	}
	if exists {
		return model.Customer{}, fmt.Errorf("%w: email already taken", domainErrors.ErrAlreadyExists)
	}

	hash, err := u.hasher.Hash(reg.Password)
	if err != nil {
		return model.Customer{}, err
	}

	return u.customers.Insert(ctx, model.Customer{
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: hash,
		Age:          reg.Age,
		Gender:       reg.Gender,
	})
}

// Get returns the customer or ErrNotFound.
func (u *CustomerUseCase) Get(ctx context.Context, id int64) (model.Customer, error) {
	customer, found, err := u.customers.SelectByID(ctx, id)
	if err != nil {
		return model.Customer{}, err
	}
	if !found {
		return model.Customer{}, notFound(id)
	}
	return customer, nil
}

// DeleteByID removes an existing customer.
func (u *CustomerUseCase) DeleteByID(ctx context.Context, id int64) error {
	if err := u.ensureExists(ctx, id); err != nil {
		return err
	}
	return u.customers.DeleteByID(ctx, id)
}

// Update applies a partial update and persists the merged record with one write.
// Nothing is written when the update is rejected.
func (u *CustomerUseCase) Update(ctx context.Context, id int64, update model.CustomerUpdate) (model.Customer, error) {
	current, err := u.Get(ctx, id)
	if err != nil {
		return model.Customer{}, err
	}

	merged, changed, err := ApplyUpdate(ctx, current, update, u.customers.ExistsByEmail)
	if err != nil {
		return model.Customer{}, err
	}

	if err := u.customers.Update(ctx, merged); err != nil {
		return model.Customer{}, err
	}

	u.logger.Info("customer updated", slog.Int64("customer_id", id), slog.Any("fields", changed))
	return merged, nil
}

// UploadProfileImage stores data under a fresh image id and records it on the customer.
func (u *CustomerUseCase) UploadProfileImage(ctx context.Context, id int64, data []byte) (string, error) {
	if err := u.ensureExists(ctx, id); err != nil {
		return "", err
	}

	imageID := u.newImageID()
	if err := u.images.Put(ctx, u.bucket, ProfileImageKey(id, imageID), data); err != nil {
		return "", fmt.Errorf("%w: %v", domainErrors.ErrProfileImageStorage, err)
	}

	// The uploaded object stays in the bucket when recording its id fails.
	if err := u.customers.UpdateProfileImageID(ctx, id, imageID); err != nil {
		u.logger.Warn("profile image stored but not recorded",
			slog.Int64("customer_id", id),
			slog.String("image_id", imageID),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("%w: record profile image id: %w", domainErrors.ErrProfileImageStorage, err)
	}
	return imageID, nil
}

// ProfileImage returns the stored profile image bytes.
func (u *CustomerUseCase) ProfileImage(ctx context.Context, id int64) ([]byte, error) {
	customer, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !customer.HasProfileImage() {
		return nil, fmt.Errorf("%w: customer with id [%d] profile image not found", domainErrors.ErrNotFound, id)
	}

	data, err := u.images.Get(ctx, u.bucket, ProfileImageKey(id, *customer.ProfileImageID))
	if err != nil {
		if errors.Is(err, objectstore.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: customer with id [%d] profile image not found", domainErrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrProfileImageStorage, err)
	}
	return data, nil
}

func (u *CustomerUseCase) ensureExists(ctx context.Context, id int64) error {
	exists, err := u.customers.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return notFound(id)
	}
	return nil
}
