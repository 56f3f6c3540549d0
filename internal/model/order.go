package model

import (
	"time"

	"github.com/google/uuid"

	"marcenaria-api/internal/billing"
)

type OrderStatus string

const (
	OrderOrcamento   OrderStatus = "ORCAMENTO"
	OrderPedido      OrderStatus = "PEDIDO"
	OrderEmProducao  OrderStatus = "EM_PRODUCAO"
	OrderPronto      OrderStatus = "PRONTO"
	OrderEntregue    OrderStatus = "ENTREGUE"
	OrderCancelado   OrderStatus = "CANCELADO"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderOrcamento, OrderPedido, OrderEmProducao, OrderPronto, OrderEntregue, OrderCancelado:
		return true
	}
	return false
}

// Order is a confirmed piece of work for a client. Money fields are
// integer cents; totals are derived from the items at write time.
type Order struct {
	BaseModel
	SalonID  uuid.UUID   `gorm:"type:uuid;index;not null" json:"salonId"`
	ClientID uuid.UUID   `gorm:"type:uuid;index;not null" json:"clientId"`
	Client   *Client     `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Status   OrderStatus `gorm:"type:varchar(15);default:'PEDIDO'" json:"status"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`

	SubtotalCents int64 `gorm:"not null;default:0" json:"subtotalCents"`
	DiscountCents int64 `gorm:"not null;default:0" json:"discountCents"`
	TotalCents    int64 `gorm:"not null;default:0" json:"totalCents"`

	PaymentMode       billing.PaymentMode   `gorm:"type:varchar(10);default:'AVISTA'" json:"paymentMode"`
	PaymentMethod     billing.PaymentMethod `gorm:"type:varchar(15)" json:"paymentMethod"`
	InstallmentsCount int                   `gorm:"default:1" json:"installmentsCount"`
	FirstDueDate      *time.Time            `json:"firstDueDate,omitempty"`

	ExpectedDeliveryAt *time.Time `json:"expectedDeliveryAt,omitempty"`
	DeliveredAt        *time.Time `json:"deliveredAt,omitempty"`
	Notes              string     `json:"notes"`
}

// OrderItem is one order line with its extended total snapshot.
type OrderItem struct {
	BaseModel
	OrderID        uuid.UUID `gorm:"type:uuid;index;not null" json:"orderId"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Description    string    `json:"description"`
	Quantity       int       `gorm:"not null;default:1" json:"quantity"`
	UnitPriceCents int64     `gorm:"not null;default:0" json:"unitPriceCents"`
	TotalCents     int64     `gorm:"not null;default:0" json:"totalCents"`
}
