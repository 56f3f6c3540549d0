package model

import "github.com/google/uuid"

type ClientType string

const (
	ClientCliente    ClientType = "CLIENTE"
	ClientFornecedor ClientType = "FORNECEDOR"
	ClientBoth       ClientType = "BOTH"
)

// IsSupplier reports whether the contact can appear as a supplier on
// payables, costs and stock purchases.
func (t ClientType) IsSupplier() bool {
	return t == ClientFornecedor || t == ClientBoth
}

// Client is a contact: a customer, a supplier, or both. Phone is stored
// digits-only and is unique per salon.
type Client struct {
	BaseModel
	SalonID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_clients_salon_phone,unique" json:"salonId"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone     string     `gorm:"type:varchar(20);not null;index:idx_clients_salon_phone,unique" json:"phone" validate:"required"`
	Email     string     `gorm:"type:varchar(255)" json:"email"`
	Instagram string     `gorm:"type:varchar(100)" json:"instagram"`
	Cpf       string     `gorm:"type:varchar(14)" json:"cpf"`
	Address   string     `gorm:"type:varchar(255)" json:"address"`
	Type      ClientType `gorm:"type:varchar(12);default:'CLIENTE'" json:"type"`
	Notes     string     `json:"notes"`
}
