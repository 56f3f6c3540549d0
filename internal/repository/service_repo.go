package repository

import (
	"marcenaria-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRepository interface {
	Create(svc *model.Service) error
	FindAll(salonID uuid.UUID, activeOnly bool) ([]model.Service, error)
	FindByID(salonID, id uuid.UUID) (*model.Service, error)
	Update(svc *model.Service) error
	Delete(salonID, id uuid.UUID) error
	CountAppointments(salonID, serviceID uuid.UUID) (int64, error)
}

type serviceRepo struct {
	db *gorm.DB
}

func NewServiceRepo(db *gorm.DB) ServiceRepository {
	return &serviceRepo{db}
}

func (r *serviceRepo) Create(svc *model.Service) error {
	return r.db.Create(svc).Error
}

func (r *serviceRepo) FindAll(salonID uuid.UUID, activeOnly bool) ([]model.Service, error) {
	var services []model.Service
	q := r.db.Where("salon_id = ?", salonID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Order("name ASC").Find(&services).Error
	return services, err
}

func (r *serviceRepo) FindByID(salonID, id uuid.UUID) (*model.Service, error) {
	var svc model.Service
	err := r.db.First(&svc, "salon_id = ? AND id = ?", salonID, id).Error
	return &svc, err
}

func (r *serviceRepo) Update(svc *model.Service) error {
	return r.db.Save(svc).Error
}

func (r *serviceRepo) Delete(salonID, id uuid.UUID) error {
	return r.db.Delete(&model.Service{}, "salon_id = ? AND id = ?", salonID, id).Error
}

func (r *serviceRepo) CountAppointments(salonID, serviceID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Appointment{}).
		Where("salon_id = ? AND service_id = ?", salonID, serviceID).
		Count(&count).Error
	return count, err
}
