package service

import (
	"regexp"
	"strings"

	"marcenaria-api/internal/apperr"
	"marcenaria-api/internal/model"
	"marcenaria-api/internal/repository"

	"github.com/google/uuid"
)

var hhmmRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type SettingsPatchRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	LogoURL           *string `json:"logoUrl"`
	OpenTime          *string `json:"openTime"`
	CloseTime         *string `json:"closeTime"`
	WorkingDays       *string `json:"workingDays"`
	BlockOutsideHours *bool   `json:"blockOutsideHours"`
}

type SettingsService interface {
	Get(salonID uuid.UUID) (*model.Salon, error)
	Patch(salonID uuid.UUID, req SettingsPatchRequest) (*model.Salon, error)
}

type settingsService struct {
	salonRepo repository.SalonRepository
}

func NewSettingsService(salonRepo repository.SalonRepository) SettingsService {
	return &settingsService{salonRepo: salonRepo}
}

func (s *settingsService) Get(salonID uuid.UUID) (*model.Salon, error) {
	salon, err := s.salonRepo.FindByID(salonID)
	if err != nil {
		return nil, apperr.NotFound("salon not found")
	}
	return salon, nil
}

func (s *settingsService) Patch(salonID uuid.UUID, req SettingsPatchRequest) (*model.Salon, error) {
	salon, err := s.Get(salonID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperr.Invalid("name must not be empty")
		}
		salon.Name = name
	}
	if req.Phone != nil {
		salon.Phone = NormalizePhone(*req.Phone)
	}
	if req.Address != nil {
		salon.Address = strings.TrimSpace(*req.Address)
	}
	if req.LogoURL != nil {
		salon.LogoURL = strings.TrimSpace(*req.LogoURL)
	}
	if req.OpenTime != nil {
		if !hhmmRe.MatchString(*req.OpenTime) {
			return nil, apperr.Invalid("openTime must be HH:MM")
		}
		salon.OpenTime = *req.OpenTime
	}
	if req.CloseTime != nil {
		if !hhmmRe.MatchString(*req.CloseTime) {
			return nil, apperr.Invalid("closeTime must be HH:MM")
		}
		salon.CloseTime = *req.CloseTime
	}
	if req.WorkingDays != nil {
		days := strings.TrimSpace(*req.WorkingDays)
		for _, d := range strings.Split(days, ",") {
			if d == "" || len(d) != 1 || d < "0" || d > "6" {
				return nil, apperr.Invalid("workingDays must be weekday numbers 0-6, comma separated")
			}
		}
		salon.WorkingDays = days
	}
	if req.BlockOutsideHours != nil {
		salon.BlockOutsideHours = *req.BlockOutsideHours
	}
	if salon.OpenTime >= salon.CloseTime {
		return nil, apperr.Invalid("openTime must be before closeTime")
	}

	if err := s.salonRepo.Update(salon); err != nil {
		return nil, err
	}
	return salon, nil
}
