package model

// Gender is the customer's declared gender.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Valid reports whether g is one of the supported values.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

const (
	MinAge = 1
	MaxAge = 150
)

// RoleUser is the only scope granted to authenticated customers.
const RoleUser = "ROLE_USER"

// Customer represents a registered customer. Email doubles as the login username.
type Customer struct {
	ID             int64
	Name           string
	Email          string
	PasswordHash   string
	Age            int
	Gender         Gender
	ProfileImageID *string
}

// HasProfileImage reports whether a profile image id has been recorded.
func (c Customer) HasProfileImage() bool {
	return c.ProfileImageID != nil && *c.ProfileImageID != ""
}

// Registration carries the fields required to create a customer.
type Registration struct {
	Name     string `validate:"required,max=255"`
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,max=72"`
	Age      int    `validate:"min=1,max=150"`
	Gender   Gender `validate:"required,oneof=MALE FEMALE"`
}

// CustomerUpdate is a partial update. Nil fields are left untouched.
type CustomerUpdate struct {
	Name  *string
	Email *string
	Age   *int
}
