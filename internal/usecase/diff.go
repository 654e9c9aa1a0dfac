package usecase

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/customers/internal/domain/errors"
	"github.com/polkiloo/customers/internal/domain/model"
)

// Customer fields that an update may change.
const (
	FieldName  = "name"
	FieldEmail = "email"
	FieldAge   = "age"
)

// EmailTaken reports whether an email is already registered.
type EmailTaken func(ctx context.Context, email string) (bool, error)

// ApplyUpdate merges update into current and returns the merged record with the changed fields.
// Only fields that are present and differ from the current value count as changes.
// current is never mutated, and nothing is persisted here.
func ApplyUpdate(ctx context.Context, current model.Customer, update model.CustomerUpdate, emailTaken EmailTaken) (model.Customer, []string, error) {
	merged := current
	changed := make([]string, 0, 3)

	if update.Name != nil && *update.Name != current.Name {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return current, nil, fmt.Errorf("%w: name must not be blank", domainErrors.ErrValidation)
		}
		if name != current.Name {
			merged.Name = name
			changed = append(changed, FieldName)
		}
	}

	if update.Email != nil && *update.Email != current.Email {
		email := strings.TrimSpace(*update.Email)
		if email != current.Email {
			if err := ValidateEmail(email); err != nil {
				return current, nil, err
			}
			// The value differs from the current one, so any match belongs to another record.
			taken, err := emailTaken(ctx, email)
			if err != nil {
				return current, nil, err
			}
			if taken {
				return current, nil, fmt.Errorf("%w: email already taken", domainErrors.ErrAlreadyExists)
			}
			merged.Email = email
			changed = append(changed, FieldEmail)
		}
	}

	if update.Age != nil && *update.Age != current.Age {
		if err := ValidateAge(*update.Age); err != nil {
			return current, nil, err
		}
		merged.Age = *update.Age
		changed = append(changed, FieldAge)
	}

	if len(changed) == 0 {
		return current, nil, fmt.Errorf("%w: no data changes found", domainErrors.ErrValidation)
	}

	return merged, changed, nil
}
