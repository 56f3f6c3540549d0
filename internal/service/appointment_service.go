package service

import (
	"fmt"
	"strings"
	"time"

	"marcenaria-api/internal/apperr"
	"marcenaria-api/internal/model"
	"marcenaria-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRequest struct {
	ClientID  uuid.UUID `json:"clientId"`
	ServiceID uuid.UUID `json:"serviceId"`
	StartAt   time.Time `json:"startAt"`
	Notes     string    `json:"notes"`
}

type AppointmentService interface {
	Create(salonID uuid.UUID, req AppointmentRequest) (*model.Appointment, error)
	List(salonID uuid.UUID, f repository.AppointmentFilter) ([]model.Appointment, error)
	Get(salonID, id uuid.UUID) (*model.Appointment, error)
	Reschedule(salonID, id uuid.UUID, startAt time.Time) (*model.Appointment, error)
	SetStatus(salonID, id uuid.UUID, status string) (*model.Appointment, error)
	Delete(salonID, id uuid.UUID) error
}

type appointmentService struct {
	apptRepo    repository.AppointmentRepository
	clientRepo  repository.ClientRepository
	serviceRepo repository.ServiceRepository
	salonRepo   repository.SalonRepository
}

func NewAppointmentService(
	apptRepo repository.AppointmentRepository,
	clientRepo repository.ClientRepository,
	serviceRepo repository.ServiceRepository,
	salonRepo repository.SalonRepository,
) AppointmentService {
	return &appointmentService{
		apptRepo:    apptRepo,
		clientRepo:  clientRepo,
		serviceRepo: serviceRepo,
		salonRepo:   salonRepo,
	}
}

func (s *appointmentService) Create(salonID uuid.UUID, req AppointmentRequest) (*model.Appointment, error) {
	if req.StartAt.IsZero() {
		return nil, apperr.Invalid("startAt is required")
	}

	if _, err := s.clientRepo.FindByID(salonID, req.ClientID); err != nil {
		return nil, apperr.NotFound("client not found")
	}

	svc, err := s.serviceRepo.FindByID(salonID, req.ServiceID)
	if err != nil {
		return nil, apperr.NotFound("service not found")
	}
	if !svc.Active {
		return nil, apperr.Invalid("service is inactive")
	}

	if err := s.checkWorkingHours(salonID, req.StartAt); err != nil {
		return nil, err
	}

	appt := &model.Appointment{
		SalonID:   salonID,
		ClientID:  req.ClientID,
		ServiceID: req.ServiceID,
		StartAt:   req.StartAt,
		EndAt:     req.StartAt.Add(time.Duration(svc.DurationMin) * time.Minute),
		Status:    model.AppointmentAgendado,
		Notes:     req.Notes,
	}
	if err := s.apptRepo.Create(appt); err != nil {
		return nil, err
	}
	return s.apptRepo.FindByID(salonID, appt.ID)
}

// checkWorkingHours rejects bookings outside the salon's agenda when
// blockOutsideHours is enabled in settings.
func (s *appointmentService) checkWorkingHours(salonID uuid.UUID, startAt time.Time) error {
	salon, err := s.salonRepo.FindByID(salonID)
	if err != nil || !salon.BlockOutsideHours {
		return nil
	}

	weekday := fmt.Sprintf("%d", int(startAt.Weekday()))
	if !strings.Contains(","+salon.WorkingDays+",", ","+weekday+",") {
		return apperr.Invalid("outside working days")
	}

	hhmm := startAt.Format("15:04")
	if (salon.OpenTime != "" && hhmm < salon.OpenTime) || (salon.CloseTime != "" && hhmm >= salon.CloseTime) {
		return apperr.Invalid("outside working hours")
	}
	return nil
}

func (s *appointmentService) List(salonID uuid.UUID, f repository.AppointmentFilter) ([]model.Appointment, error) {
	return s.apptRepo.FindAll(salonID, f)
}

func (s *appointmentService) Get(salonID, id uuid.UUID) (*model.Appointment, error) {
	appt, err := s.apptRepo.FindByID(salonID, id)
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("appointment not found")
	}
	return appt, err
}

func (s *appointmentService) Reschedule(salonID, id uuid.UUID, startAt time.Time) (*model.Appointment, error) {
	appt, err := s.Get(salonID, id)
	if err != nil {
		return nil, err
	}
	if startAt.IsZero() {
		return nil, apperr.Invalid("startAt is required")
	}
	if appt.Status == model.AppointmentFinalizado || appt.Status == model.AppointmentCancelado {
		return nil, apperr.Conflict("appointment is closed")
	}
	if err := s.checkWorkingHours(salonID, startAt); err != nil {
		return nil, err
	}

	duration := appt.EndAt.Sub(appt.StartAt)
	appt.StartAt = startAt
	appt.EndAt = startAt.Add(duration)
	if err := s.apptRepo.Update(appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *appointmentService) SetStatus(salonID, id uuid.UUID, status string) (*model.Appointment, error) {
	appt, err := s.Get(salonID, id)
	if err != nil {
		return nil, err
	}

	next := model.AppointmentStatus(strings.ToUpper(strings.TrimSpace(status)))
	switch next {
	case model.AppointmentAgendado, model.AppointmentConfirmado, model.AppointmentFinalizado, model.AppointmentCancelado:
	default:
		return nil, apperr.Invalid("invalid status")
	}

	appt.Status = next
	if err := s.apptRepo.Update(appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *appointmentService) Delete(salonID, id uuid.UUID) error {
	if _, err := s.Get(salonID, id); err != nil {
		return err
	}
	return s.apptRepo.Delete(salonID, id)
}
