package repository

import (
	"time"

	"marcenaria-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientFilter struct {
	Search string
	Type   model.ClientType
}

// ClientMetrics aggregates a client's appointment history.
type ClientMetrics struct {
	Visits        int64      `json:"visits"`
	Canceled      int64      `json:"canceled"`
	TotalSpent    int64      `json:"totalSpentCents"`
	LastVisit     *time.Time `json:"lastVisit,omitempty"`
	FrequencyDays int        `json:"frequencyDays"`
}

type ClientRepository interface {
	Create(client *model.Client) error
	FindAll(salonID uuid.UUID, f ClientFilter) ([]model.Client, error)
	FindByID(salonID, id uuid.UUID) (*model.Client, error)
	FindByPhone(salonID uuid.UUID, phone string) (*model.Client, error)
	Update(client *model.Client) error
	Delete(salonID, id uuid.UUID) error
	CountBySalon(salonID uuid.UUID) (int64, error)
	CountAppointments(salonID, clientID uuid.UUID) (int64, error)
	Metrics(salonID, clientID uuid.UUID) (*ClientMetrics, error)
}

type clientRepo struct {
	db *gorm.DB
}

func NewClientRepo(db *gorm.DB) ClientRepository {
	return &clientRepo{db}
}

func (r *clientRepo) Create(client *model.Client) error {
	return r.db.Create(client).Error
}

func (r *clientRepo) FindAll(salonID uuid.UUID, f ClientFilter) ([]model.Client, error) {
	var clients []model.Client
	q := r.db.Where("salon_id = ?", salonID)
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?) OR phone LIKE ? OR LOWER(instagram) LIKE LOWER(?)", like, like, like)
	}
	if f.Type != "" {
		if f.Type == model.ClientFornecedor {
			q = q.Where("type IN ?", []model.ClientType{model.ClientFornecedor, model.ClientBoth})
		} else {
			q = q.Where("type IN ?", []model.ClientType{f.Type, model.ClientBoth})
		}
	}
	err := q.Order("name ASC").Find(&clients).Error
	return clients, err
}

func (r *clientRepo) FindByID(salonID, id uuid.UUID) (*model.Client, error) {
	var client model.Client
	err := r.db.First(&client, "salon_id = ? AND id = ?", salonID, id).Error
	return &client, err
}

func (r *clientRepo) FindByPhone(salonID uuid.UUID, phone string) (*model.Client, error) {
	var client model.Client
	err := r.db.First(&client, "salon_id = ? AND phone = ?", salonID, phone).Error
	return &client, err
}

func (r *clientRepo) Update(client *model.Client) error {
	return r.db.Save(client).Error
}

func (r *clientRepo) Delete(salonID, id uuid.UUID) error {
	return r.db.Delete(&model.Client{}, "salon_id = ? AND id = ?", salonID, id).Error
}

func (r *clientRepo) CountBySalon(salonID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Client{}).Where("salon_id = ?", salonID).Count(&count).Error
	return count, err
}

func (r *clientRepo) CountAppointments(salonID, clientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Appointment{}).
		Where("salon_id = ? AND client_id = ?", salonID, clientID).
		Count(&count).Error
	return count, err
}

func (r *clientRepo) Metrics(salonID, clientID uuid.UUID) (*ClientMetrics, error) {
	var m ClientMetrics

	base := r.db.Model(&model.Appointment{}).
		Where("appointments.salon_id = ? AND appointments.client_id = ?", salonID, clientID)

	if err := base.Session(&gorm.Session{}).
		Where("appointments.status = ?", model.AppointmentFinalizado).
		Count(&m.Visits).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("appointments.status = ?", model.AppointmentCancelado).
		Count(&m.Canceled).Error; err != nil {
		return nil, err
	}

	if err := base.Session(&gorm.Session{}).
		Joins("JOIN services ON services.id = appointments.service_id").
		Where("appointments.status = ?", model.AppointmentFinalizado).
		Select("COALESCE(SUM(services.price_cents), 0)").
		Scan(&m.TotalSpent).Error; err != nil {
		return nil, err
	}

	var last model.Appointment
	err := r.db.Where("salon_id = ? AND client_id = ? AND status = ?", salonID, clientID, model.AppointmentFinalizado).
		Order("start_at DESC").First(&last).Error
	if err == nil {
		m.LastVisit = &last.StartAt
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	// Average days between finished visits.
	if m.Visits >= 2 {
		var firstVisit model.Appointment
		if err := r.db.Where("salon_id = ? AND client_id = ? AND status = ?", salonID, clientID, model.AppointmentFinalizado).
			Order("start_at ASC").First(&firstVisit).Error; err != nil {
			return nil, err
		}
		span := last.StartAt.Sub(firstVisit.StartAt)
		m.FrequencyDays = int(span.Hours() / 24 / float64(m.Visits-1))
	}

	return &m, nil
}
