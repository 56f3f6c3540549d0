package model

import (
	"time"

	"github.com/google/uuid"
)

type MaterialUnit string

const (
	UnitUN    MaterialUnit = "UN"
	UnitM     MaterialUnit = "M"
	UnitM2    MaterialUnit = "M2"
	UnitM3    MaterialUnit = "M3"
	UnitL     MaterialUnit = "L"
	UnitKG    MaterialUnit = "KG"
	UnitCX    MaterialUnit = "CX"
	UnitOutro MaterialUnit = "OUTRO"
)

// ValidMaterialUnit reports whether u is a known measurement unit.
func ValidMaterialUnit(u MaterialUnit) bool {
	switch u {
	case UnitUN, UnitM, UnitM2, UnitM3, UnitL, UnitKG, UnitCX, UnitOutro:
		return true
	}
	return false
}

type MovementType string

const (
	MovementIn     MovementType = "IN"
	MovementOut    MovementType = "OUT"
	MovementAdjust MovementType = "ADJUST"
)

type MovementSource string

const (
	SourceManual   MovementSource = "MANUAL"
	SourceOrder    MovementSource = "ORDER"
	SourcePurchase MovementSource = "PURCHASE"
)

// Material is a stock catalog entry. Stock on hand is never stored; it
// is computed from the movement ledger on read.
type Material struct {
	BaseModel
	SalonID  uuid.UUID    `gorm:"type:uuid;index;not null" json:"salonId"`
	Name     string       `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Unit     MaterialUnit `gorm:"type:varchar(8);default:'UN'" json:"unit"`
	Category string       `gorm:"type:varchar(100)" json:"category"`
	MinStock float64      `gorm:"type:numeric;default:0" json:"minStock"`
	Active   bool         `gorm:"default:true" json:"active"`
	Notes    string       `json:"notes"`
}

// MaterialMovement is one ledger entry. IN rows carry the purchase cost
// and supplier; OUT rows never do. A purchase movement may also spawn a
// payable and always records a stock cost, all in the same transaction.
type MaterialMovement struct {
	BaseModel
	SalonID    uuid.UUID      `gorm:"type:uuid;index;not null" json:"salonId"`
	MaterialID uuid.UUID      `gorm:"type:uuid;index;not null" json:"materialId"`
	Material   *Material      `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
	Type       MovementType   `gorm:"type:varchar(8);not null" json:"type"`
	Source     MovementSource `gorm:"type:varchar(10);default:'MANUAL'" json:"source"`
	Quantity   float64        `gorm:"type:numeric;not null" json:"quantity"`

	UnitCostCents  int64      `gorm:"not null;default:0" json:"unitCostCents"`
	TotalCostCents int64      `gorm:"not null;default:0" json:"totalCostCents"`
	SupplierID     *uuid.UUID `gorm:"type:uuid;index" json:"supplierId,omitempty"`
	Supplier       *Client    `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	NfNumber       string     `gorm:"type:varchar(50)" json:"nfNumber"`

	OrderID    *uuid.UUID `gorm:"type:uuid;index" json:"orderId,omitempty"`
	PayableID  *uuid.UUID `gorm:"type:uuid" json:"payableId,omitempty"`
	OccurredAt time.Time  `gorm:"index;not null" json:"occurredAt"`
	Notes      string     `json:"notes"`
}

// MaterialSupplierPrice remembers the last purchase price per
// material/supplier pair, refreshed on every IN movement.
type MaterialSupplierPrice struct {
	BaseModel
	SalonID        uuid.UUID `gorm:"type:uuid;not null;index:idx_mat_supplier,unique" json:"salonId"`
	MaterialID     uuid.UUID `gorm:"type:uuid;not null;index:idx_mat_supplier,unique" json:"materialId"`
	SupplierID     uuid.UUID `gorm:"type:uuid;not null;index:idx_mat_supplier,unique" json:"supplierId"`
	Supplier       *Client   `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	UnitCostCents  int64     `gorm:"not null" json:"unitCostCents"`
	LastPurchaseAt time.Time `gorm:"not null" json:"lastPurchaseAt"`
}
