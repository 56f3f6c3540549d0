package model

import (
	"time"

	"github.com/google/uuid"

	"marcenaria-api/internal/billing"
)

// Receivable is money owed to the salon, usually born from an order or
// an approved budget, split into installments.
type Receivable struct {
	BaseModel
	SalonID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"salonId"`
	OrderID     *uuid.UUID `gorm:"type:uuid;index" json:"orderId,omitempty"`
	ClientID    *uuid.UUID `gorm:"type:uuid;index" json:"clientId,omitempty"`
	Client      *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Description string     `gorm:"type:varchar(255)" json:"description"`
	TotalCents  int64      `gorm:"not null;default:0" json:"totalCents"`

	PaymentMethod billing.PaymentMethod `gorm:"type:varchar(15)" json:"paymentMethod"`
	Notes         string                `json:"notes"`

	Installments []ReceivableInstallment `gorm:"foreignKey:ReceivableID" json:"installments,omitempty"`
}

type ReceivableInstallment struct {
	BaseModel
	ReceivableID uuid.UUID `gorm:"type:uuid;index;not null" json:"receivableId"`
	Number       int       `gorm:"not null" json:"number"`
	DueDate      time.Time `gorm:"index;not null" json:"dueDate"`
	AmountCents  int64     `gorm:"not null" json:"amountCents"`

	Status billing.InstallmentStatus `gorm:"type:varchar(12);default:'PENDENTE'" json:"status"`
	PaidAt *time.Time                `json:"paidAt,omitempty"`
	Method billing.PaymentMethod     `gorm:"type:varchar(15)" json:"method"`
	Notes  string                    `json:"notes"`
}
