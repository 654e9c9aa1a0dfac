package orm

import "github.com/polkiloo/customers/internal/domain/model"

// CustomerRecord maps the customer table for gorm.
type CustomerRecord struct {
	ID             int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Name           string  `gorm:"column:name;not null"`
	Email          string  `gorm:"column:email;not null;uniqueIndex"`
	Password       string  `gorm:"column:password;not null"`
	Age            int     `gorm:"column:age;not null"`
	Gender         string  `gorm:"column:gender;not null"`
	ProfileImageID *string `gorm:"column:profile_image_id;uniqueIndex"`
}

// TableName pins the table shared with the SQL backend.
func (CustomerRecord) TableName() string {
	return "customer"
}

func recordFromModel(c model.Customer) CustomerRecord {
	return CustomerRecord{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Password:       c.PasswordHash,
		Age:            c.Age,
		Gender:         string(c.Gender),
		ProfileImageID: c.ProfileImageID,
	}
}

func (r CustomerRecord) toModel() model.Customer {
	return model.Customer{
		ID:             r.ID,
		Name:           r.Name,
		Email:          r.Email,
		PasswordHash:   r.Password,
		Age:            r.Age,
		Gender:         model.Gender(r.Gender),
		ProfileImageID: r.ProfileImageID,
	}
}
