package model

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is the operator account. One user owns one salon.
type User struct {
	BaseModel
	SalonID  uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`
	Salon    *Salon    `gorm:"foreignKey:SalonID" json:"salon,omitempty" validate:"-"`
	Email    string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string    `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Name     string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID      uuid.UUID `json:"id"`
	SalonID uuid.UUID `json:"salonId"`
	Email   string    `json:"email"`
	Name    string    `json:"name"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{ID: u.ID, SalonID: u.SalonID, Email: u.Email, Name: u.Name}
}
