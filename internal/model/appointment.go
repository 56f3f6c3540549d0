package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentAgendado   AppointmentStatus = "AGENDADO"
	AppointmentConfirmado AppointmentStatus = "CONFIRMADO"
	AppointmentFinalizado AppointmentStatus = "FINALIZADO"
	AppointmentCancelado  AppointmentStatus = "CANCELADO"
)

// Appointment is a scheduled visit for a catalog service. FINALIZADO
// appointments count as income in the cash-flow reports.
type Appointment struct {
	BaseModel
	SalonID   uuid.UUID         `gorm:"type:uuid;index;not null" json:"salonId"`
	ClientID  uuid.UUID         `gorm:"type:uuid;index;not null" json:"clientId" validate:"uuid_required"`
	Client    *Client           `gorm:"foreignKey:ClientID" json:"client,omitempty" validate:"-"`
	ServiceID uuid.UUID         `gorm:"type:uuid;index;not null" json:"serviceId" validate:"uuid_required"`
	Service   *Service          `gorm:"foreignKey:ServiceID" json:"service,omitempty" validate:"-"`
	StartAt   time.Time         `gorm:"index;not null" json:"startAt" validate:"required"`
	EndAt     time.Time         `gorm:"not null" json:"endAt"`
	Status    AppointmentStatus `gorm:"type:varchar(12);default:'AGENDADO'" json:"status"`
	Notes     string            `json:"notes"`
}
