package repository

import (
	"time"

	"marcenaria-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentFilter struct {
	From     time.Time
	To       time.Time
	ClientID uuid.UUID
	Status   model.AppointmentStatus
}

type AppointmentRepository interface {
	Create(appt *model.Appointment) error
	FindAll(salonID uuid.UUID, f AppointmentFilter) ([]model.Appointment, error)
	FindByID(salonID, id uuid.UUID) (*model.Appointment, error)
	Update(appt *model.Appointment) error
	Delete(salonID, id uuid.UUID) error
	SumFinishedBetween(salonID uuid.UUID, from, to time.Time) (int64, error)
}

type appointmentRepo struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) AppointmentRepository {
	return &appointmentRepo{db}
}

func (r *appointmentRepo) Create(appt *model.Appointment) error {
	return r.db.Create(appt).Error
}

func (r *appointmentRepo) FindAll(salonID uuid.UUID, f AppointmentFilter) ([]model.Appointment, error) {
	var appts []model.Appointment
	q := r.db.Preload("Client").Preload("Service").Where("salon_id = ?", salonID)
	if !f.From.IsZero() {
		q = q.Where("start_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("start_at < ?", f.To)
	}
	if f.ClientID != uuid.Nil {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	err := q.Order("start_at ASC").Find(&appts).Error
	return appts, err
}

func (r *appointmentRepo) FindByID(salonID, id uuid.UUID) (*model.Appointment, error) {
	var appt model.Appointment
	err := r.db.Preload("Client").Preload("Service").
		First(&appt, "salon_id = ? AND id = ?", salonID, id).Error
	return &appt, err
}

func (r *appointmentRepo) Update(appt *model.Appointment) error {
	return r.db.Save(appt).Error
}

func (r *appointmentRepo) Delete(salonID, id uuid.UUID) error {
	return r.db.Delete(&model.Appointment{}, "salon_id = ? AND id = ?", salonID, id).Error
}

// SumFinishedBetween totals the service price of FINALIZADO appointments
// whose start falls in [from, to). Counts as income in cash flow.
func (r *appointmentRepo) SumFinishedBetween(salonID uuid.UUID, from, to time.Time) (int64, error) {
	var sum int64
	err := r.db.Model(&model.Appointment{}).
		Joins("JOIN services ON services.id = appointments.service_id").
		Where("appointments.salon_id = ? AND appointments.status = ? AND appointments.start_at >= ? AND appointments.start_at < ?",
			salonID, model.AppointmentFinalizado, from, to).
		Select("COALESCE(SUM(services.price_cents), 0)").
		Scan(&sum).Error
	return sum, err
}
