package service

import (
	"strings"

	"marcenaria-api/internal/apperr"
	"marcenaria-api/internal/model"
	"marcenaria-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PriceCents  int64  `json:"priceCents"`
	DurationMin int    `json:"durationMin"`
}

// CatalogService manages the bookable service catalog.
type CatalogService interface {
	Create(salonID uuid.UUID, req ServiceRequest) (*model.Service, error)
	List(salonID uuid.UUID, activeOnly bool) ([]model.Service, error)
	Get(salonID, id uuid.UUID) (*model.Service, error)
	Update(salonID, id uuid.UUID, req ServiceRequest) (*model.Service, error)
	Toggle(salonID, id uuid.UUID) (*model.Service, error)
	Delete(salonID, id uuid.UUID) error
}

type catalogService struct {
	serviceRepo repository.ServiceRepository
}

func NewCatalogService(serviceRepo repository.ServiceRepository) CatalogService {
	return &catalogService{serviceRepo: serviceRepo}
}

func validateServiceRequest(req *ServiceRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if len(req.Name) < 2 {
		return apperr.Invalid("name must have at least 2 characters")
	}
	if req.PriceCents < 0 {
		return apperr.Invalid("priceCents must be >= 0")
	}
	if req.DurationMin <= 0 {
		req.DurationMin = 60
	}
	return nil
}

func (s *catalogService) Create(salonID uuid.UUID, req ServiceRequest) (*model.Service, error) {
	if err := validateServiceRequest(&req); err != nil {
		return nil, err
	}
	svc := &model.Service{
		SalonID:     salonID,
		Name:        req.Name,
		Description: req.Description,
		Category:    strings.TrimSpace(req.Category),
		PriceCents:  req.PriceCents,
		DurationMin: req.DurationMin,
		Active:      true,
	}
	if err := s.serviceRepo.Create(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *catalogService) List(salonID uuid.UUID, activeOnly bool) ([]model.Service, error) {
	return s.serviceRepo.FindAll(salonID, activeOnly)
}

func (s *catalogService) Get(salonID, id uuid.UUID) (*model.Service, error) {
	svc, err := s.serviceRepo.FindByID(salonID, id)
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("service not found")
	}
	return svc, err
}

func (s *catalogService) Update(salonID, id uuid.UUID, req ServiceRequest) (*model.Service, error) {
	svc, err := s.Get(salonID, id)
	if err != nil {
		return nil, err
	}
	if err := validateServiceRequest(&req); err != nil {
		return nil, err
	}
	svc.Name = req.Name
	svc.Description = req.Description
	svc.Category = strings.TrimSpace(req.Category)
	svc.PriceCents = req.PriceCents
	svc.DurationMin = req.DurationMin
	if err := s.serviceRepo.Update(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// Toggle flips active. Inactive services stay on past appointments but
// cannot be booked.
func (s *catalogService) Toggle(salonID, id uuid.UUID) (*model.Service, error) {
	svc, err := s.Get(salonID, id)
	if err != nil {
		return nil, err
	}
	svc.Active = !svc.Active
	if err := s.serviceRepo.Update(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *catalogService) Delete(salonID, id uuid.UUID) error {
	if _, err := s.Get(salonID, id); err != nil {
		return err
	}
	count, err := s.serviceRepo.CountAppointments(salonID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("service has appointments and cannot be removed")
	}
	return s.serviceRepo.Delete(salonID, id)
}
