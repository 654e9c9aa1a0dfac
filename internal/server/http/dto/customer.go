package dto

import "github.com/polkiloo/customers/internal/domain/model"

// CustomerUpdateRequest is a partial update; omitted fields stay untouched.
type CustomerUpdateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Age   *int    `json:"age"`
}

// ToModel converts request into a domain update.
func (r CustomerUpdateRequest) ToModel() model.CustomerUpdate {
	return model.CustomerUpdate{Name: r.Name, Email: r.Email, Age: r.Age}
}

// CustomerView is the public representation of a customer.
type CustomerView struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Gender         string   `json:"gender"`
	Age            int      `json:"age"`
	Roles          []string `json:"roles"`
	Username       string   `json:"username"`
	ProfileImageID *string  `json:"profileImageId"`
}

// NewCustomerView maps a customer without its password hash.
func NewCustomerView(c model.Customer) CustomerView {
	return CustomerView{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Gender:         string(c.Gender),
		Age:            c.Age,
		Roles:          []string{model.RoleUser},
		Username:       c.Email,
		ProfileImageID: c.ProfileImageID,
	}
}

// NewCustomerViews maps a list of customers.
func NewCustomerViews(customers []model.Customer) []CustomerView {
	views := make([]CustomerView, 0, len(customers))
	for _, c := range customers {
		views = append(views, NewCustomerView(c))
	}
	return views
}

// ProfileImageResponse reports the id assigned to an uploaded image.
type ProfileImageResponse struct {
	ProfileImageID string `json:"profileImageId"`
}
