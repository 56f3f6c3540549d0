package model

import (
	"time"

	"github.com/google/uuid"

	"marcenaria-api/internal/billing"
)

// Payable is money the salon owes a supplier, split into installments.
// TotalCents is kept equal to the sum of the installment amounts.
type Payable struct {
	BaseModel
	SalonID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"salonId"`
	SupplierID  *uuid.UUID `gorm:"type:uuid;index" json:"supplierId,omitempty"`
	Supplier    *Client    `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Description string     `gorm:"type:varchar(255);not null" json:"description"`
	Category    string     `gorm:"type:varchar(100)" json:"category"`
	TotalCents  int64      `gorm:"not null;default:0" json:"totalCents"`

	PaymentMethod billing.PaymentMethod `gorm:"type:varchar(15)" json:"paymentMethod"`
	Notes         string                `json:"notes"`

	Installments []PayableInstallment `gorm:"foreignKey:PayableID" json:"installments,omitempty"`
}

type PayableInstallment struct {
	BaseModel
	PayableID   uuid.UUID `gorm:"type:uuid;index;not null" json:"payableId"`
	Number      int       `gorm:"not null" json:"number"`
	DueDate     time.Time `gorm:"index;not null" json:"dueDate"`
	AmountCents int64     `gorm:"not null" json:"amountCents"`

	Status billing.InstallmentStatus `gorm:"type:varchar(12);default:'PENDENTE'" json:"status"`
	PaidAt *time.Time                `json:"paidAt,omitempty"`
	Method billing.PaymentMethod     `gorm:"type:varchar(15)" json:"method"`
	Notes  string                    `json:"notes"`
}
