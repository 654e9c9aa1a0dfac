package test

import (
	"context"
	"sort"
	"sync"

	domainErrors "github.com/polkiloo/customers/internal/domain/errors"
	"github.com/polkiloo/customers/internal/domain/model"
	"github.com/polkiloo/customers/internal/domain/repository"
)

// CustomerRepositoryStub stores customers in-memory for tests.
type CustomerRepositoryStub struct {
	mu        sync.Mutex
	Customers map[int64]model.Customer
	Next      int64
	Err       error

	ExistsByEmailFn func(context.Context, string) (bool, error)
	UpdateFn        func(context.Context, model.Customer) error
	UpdateImageIDFn func(context.Context, int64, string) error

	// Writes counts Insert, DeleteByID, Update and UpdateProfileImageID calls.
	Writes  int
	Updates []model.Customer
}

// NewCustomerRepositoryStub constructs stub repository with initialized storage.
func NewCustomerRepositoryStub() *CustomerRepositoryStub {
	return &CustomerRepositoryStub{Customers: make(map[int64]model.Customer), Next: 1}
}

// Seed stores customer as-is, assigning an id when missing.
func (s *CustomerRepositoryStub) Seed(customer model.Customer) model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()
	if customer.ID == 0 {
		customer.ID = s.Next
	}
	if customer.ID >= s.Next {
		s.Next = customer.ID + 1
	}
	s.Customers[customer.ID] = customer
	return customer
}

func (s *CustomerRepositoryStub) init() {
	if s.Customers == nil {
		s.Customers = make(map[int64]model.Customer)
	}
	if s.Next == 0 {
		s.Next = 1
	}
}

// SelectAll returns customers ordered by id, capped at repository.MaxPageSize.
func (s *CustomerRepositoryStub) SelectAll(ctx context.Context) ([]model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	result := make([]model.Customer, 0, len(s.Customers))
	for _, c := range s.Customers {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	if len(result) > repository.MaxPageSize {
		result = result[:repository.MaxPageSize]
	}
	return result, nil
}

// SelectByID fetches customer by identifier.
func (s *CustomerRepositoryStub) SelectByID(ctx context.Context, id int64) (model.Customer, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return model.Customer{}, false, s.Err
	}
	c, ok := s.Customers[id]
	return c, ok, nil
}

// SelectByEmail fetches customer by email.
func (s *CustomerRepositoryStub) SelectByEmail(ctx context.Context, email string) (model.Customer, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return model.Customer{}, false, s.Err
	}
	for _, c := range s.Customers {
		if c.Email == email {
			return c, true, nil
		}
	}
	return model.Customer{}, false, nil
}

// Insert stores customer unless the email is taken.
func (s *CustomerRepositoryStub) Insert(ctx context.Context, customer model.Customer) (model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return model.Customer{}, s.Err
	}
	s.init()
	for _, c := range s.Customers {
		if c.Email == customer.Email {
			return model.Customer{}, domainErrors.ErrAlreadyExists
		}
	}
	s.Writes++
	customer.ID = s.Next
	s.Next++
	s.Customers[customer.ID] = customer
	return customer, nil
}

// ExistsByEmail reports whether any customer uses email.
func (s *CustomerRepositoryStub) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if s.ExistsByEmailFn != nil {
		return s.ExistsByEmailFn(ctx, email)
	}
	_, found, err := s.SelectByEmail(ctx, email)
	return found, err
}

// ExistsByID reports whether customer with id is stored.
func (s *CustomerRepositoryStub) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, found, err := s.SelectByID(ctx, id)
	return found, err
}

// DeleteByID removes customer; missing ids are ignored.
func (s *CustomerRepositoryStub) DeleteByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Writes++
	delete(s.Customers, id)
	return nil
}

// Update overwrites name, email and age of a stored customer.
func (s *CustomerRepositoryStub) Update(ctx context.Context, customer model.Customer) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, customer)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Writes++
	s.Updates = append(s.Updates, customer)
	stored, ok := s.Customers[customer.ID]
	if !ok {
		return nil
	}
	stored.Name = customer.Name
	stored.Email = customer.Email
	stored.Age = customer.Age
	s.Customers[customer.ID] = stored
	return nil
}

// UpdateProfileImageID records the profile image id of a stored customer.
func (s *CustomerRepositoryStub) UpdateProfileImageID(ctx context.Context, id int64, imageID string) error {
	if s.UpdateImageIDFn != nil {
		return s.UpdateImageIDFn(ctx, id, imageID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Writes++
	stored, ok := s.Customers[id]
	if !ok {
		return nil
	}
	stored.ProfileImageID = &imageID
	s.Customers[id] = stored
	return nil
}

var _ repository.CustomerRepository = (*CustomerRepositoryStub)(nil)
