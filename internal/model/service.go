package model

import "github.com/google/uuid"

// Service is a catalog entry for bookable work (measurement visits,
// assembly, maintenance).
type Service struct {
	BaseModel
	SalonID     uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string    `json:"description"`
	Category    string    `gorm:"type:varchar(100)" json:"category"`
	PriceCents  int64     `gorm:"not null;default:0" json:"priceCents" validate:"gte=0"`
	DurationMin int       `gorm:"not null;default:60" json:"durationMin" validate:"gt=0"`
	Active      bool      `gorm:"default:true" json:"active"`
}
