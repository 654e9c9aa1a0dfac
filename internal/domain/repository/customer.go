package repository

import (
	"context"

	"github.com/polkiloo/customers/internal/domain/model"
)

// MaxPageSize bounds the number of customers returned by SelectAll.
const MaxPageSize = 100

// CustomerRepository describes persistence operations for customers.
// Find operations report absence through the found flag, never through an error.
// Writes that touch zero rows are not errors; callers decide whether that matters.
type CustomerRepository interface {
	SelectAll(ctx context.Context) ([]model.Customer, error)
	SelectByID(ctx context.Context, id int64) (model.Customer, bool, error)
	SelectByEmail(ctx context.Context, email string) (model.Customer, bool, error)
	Insert(ctx context.Context, customer model.Customer) (model.Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) error
	Update(ctx context.Context, customer model.Customer) error
	UpdateProfileImageID(ctx context.Context, id int64, imageID string) error
}
