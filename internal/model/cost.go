package model

import (
	"time"

	"github.com/google/uuid"
)

type CostType string

const (
	CostFixo     CostType = "FIXO"
	CostVariavel CostType = "VARIAVEL"
)

// Cost is an operating expense occurrence. Recurring expenses share a
// RecurringGroupID and get one row per YearMonth bucket; the backfill
// engine fills the gaps up to the month being viewed.
type Cost struct {
	BaseModel
	SalonID     uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Type        CostType  `gorm:"type:varchar(10);default:'FIXO'" json:"type"`
	Category    string    `gorm:"type:varchar(100)" json:"category"`
	AmountCents int64     `gorm:"not null;default:0" json:"amountCents" validate:"gte=0"`
	YearMonth   string    `gorm:"type:varchar(7);index;not null" json:"yearMonth"`
	OccurredAt  time.Time `gorm:"index;not null" json:"occurredAt"`

	SupplierID *uuid.UUID `gorm:"type:uuid;index" json:"supplierId,omitempty"`
	Supplier   *Client    `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`

	RecurringGroupID string `gorm:"type:varchar(255);index" json:"recurringGroupId"`
	Active           bool   `gorm:"default:true" json:"active"`
	Notes            string `json:"notes"`
}
