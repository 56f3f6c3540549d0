package model

import (
	"time"

	"github.com/google/uuid"
)

type CashDirection string

const (
	CashIn  CashDirection = "IN"
	CashOut CashDirection = "OUT"
)

type CashSource string

const CashSourceManual CashSource = "MANUAL"

// CashCategory labels manual cash transactions.
type CashCategory struct {
	BaseModel
	SalonID uuid.UUID     `gorm:"type:uuid;not null;index:idx_cash_cat,unique" json:"salonId"`
	Name    string        `gorm:"type:varchar(100);not null;index:idx_cash_cat,unique" json:"name" validate:"required"`
	Type    CashDirection `gorm:"type:varchar(3);not null" json:"type"`
}

// CashTransaction is a manual cash-book entry outside the order and
// payable flows (a tip, a small counter sale, a petty expense).
type CashTransaction struct {
	BaseModel
	SalonID     uuid.UUID     `gorm:"type:uuid;index;not null" json:"salonId"`
	Type        CashDirection `gorm:"type:varchar(3);not null" json:"type"`
	Source      CashSource    `gorm:"type:varchar(10);not null;default:'MANUAL'" json:"source"`
	AmountCents int64         `gorm:"not null" json:"amountCents" validate:"gt=0"`
	OccurredAt  time.Time     `gorm:"index;not null" json:"occurredAt"`
	Description string        `gorm:"type:varchar(255)" json:"description"`
	CategoryID  *uuid.UUID    `gorm:"type:uuid" json:"categoryId,omitempty"`
	Category    *CashCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
