package model

import (
	"time"

	"github.com/google/uuid"

	"marcenaria-api/internal/billing"
)

type BudgetStatus string

const (
	BudgetRascunho  BudgetStatus = "RASCUNHO"
	BudgetEnviado   BudgetStatus = "ENVIADO"
	BudgetAprovado  BudgetStatus = "APROVADO"
	BudgetRejeitado BudgetStatus = "REJEITADO"
	BudgetCancelado BudgetStatus = "CANCELADO"
)

// Terminal reports whether the budget can no longer be edited or
// approved. APROVADO and CANCELADO are final.
func (s BudgetStatus) Terminal() bool {
	return s == BudgetAprovado || s == BudgetCancelado
}

// Budget is a quotation. Approving one atomically spawns an order plus
// its receivable schedule and freezes the budget.
type Budget struct {
	BaseModel
	SalonID  uuid.UUID    `gorm:"type:uuid;index;not null" json:"salonId"`
	ClientID uuid.UUID    `gorm:"type:uuid;index;not null" json:"clientId"`
	Client   *Client      `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Status   BudgetStatus `gorm:"type:varchar(12);default:'RASCUNHO'" json:"status"`

	Items        []BudgetItem        `gorm:"foreignKey:BudgetID" json:"items,omitempty"`
	Installments []BudgetInstallment `gorm:"foreignKey:BudgetID" json:"customInstallments,omitempty"`

	SubtotalCents int64 `gorm:"not null;default:0" json:"subtotalCents"`
	DiscountCents int64 `gorm:"not null;default:0" json:"discountCents"`
	TotalCents    int64 `gorm:"not null;default:0" json:"totalCents"`

	PaymentMode       billing.PaymentMode   `gorm:"type:varchar(10);default:'AVISTA'" json:"paymentMode"`
	PaymentMethod     billing.PaymentMethod `gorm:"type:varchar(15)" json:"paymentMethod"`
	InstallmentsCount int                   `gorm:"default:1" json:"installmentsCount"`
	FirstDueDate      *time.Time            `json:"firstDueDate,omitempty"`

	ValidUntil      *time.Time `json:"validUntil,omitempty"`
	Notes           string     `json:"notes"`
	SentAt          *time.Time `json:"sentAt,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	ApprovedOrderID *uuid.UUID `gorm:"type:uuid" json:"approvedOrderId,omitempty"`
}

type BudgetItem struct {
	BaseModel
	BudgetID       uuid.UUID `gorm:"type:uuid;index;not null" json:"budgetId"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Description    string    `json:"description"`
	Quantity       int       `gorm:"not null;default:1" json:"quantity"`
	UnitPriceCents int64     `gorm:"not null;default:0" json:"unitPriceCents"`
	TotalCents     int64     `gorm:"not null;default:0" json:"totalCents"`
}

// BudgetInstallment is an explicit payment plan entry attached to a
// budget. When present, approval copies these verbatim instead of
// auto-splitting the total.
type BudgetInstallment struct {
	BaseModel
	BudgetID    uuid.UUID `gorm:"type:uuid;index;not null" json:"budgetId"`
	Number      int       `gorm:"not null" json:"number"`
	DueDate     time.Time `gorm:"not null" json:"dueDate"`
	AmountCents int64     `gorm:"not null" json:"amountCents"`
}
