package service

import (
	"regexp"
	"strings"

	"marcenaria-api/internal/apperr"
	"marcenaria-api/internal/model"
	"marcenaria-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhone strips everything but digits.
func NormalizePhone(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}

type ClientRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Instagram string `json:"instagram"`
	Cpf       string `json:"cpf"`
	Address   string `json:"address"`
	Type      string `json:"type"`
	Notes     string `json:"notes"`
}

type ClientService interface {
	Create(salonID uuid.UUID, req ClientRequest) (*model.Client, error)
	List(salonID uuid.UUID, search, clientType string) ([]model.Client, error)
	Get(salonID, id uuid.UUID) (*model.Client, error)
	Update(salonID, id uuid.UUID, req ClientRequest) (*model.Client, error)
	Delete(salonID, id uuid.UUID) error
	Metrics(salonID, id uuid.UUID) (*repository.ClientMetrics, error)
	Orders(salonID, id uuid.UUID) ([]model.Order, error)
}

type clientService struct {
	clientRepo repository.ClientRepository
	orderRepo  repository.OrderRepository
}

func NewClientService(clientRepo repository.ClientRepository, orderRepo repository.OrderRepository) ClientService {
	return &clientService{clientRepo: clientRepo, orderRepo: orderRepo}
}

func (s *clientService) validate(req *ClientRequest) (model.ClientType, error) {
	req.Name = strings.TrimSpace(req.Name)
	if len(req.Name) < 2 {
		return "", apperr.Invalid("name must have at least 2 characters")
	}

	req.Phone = NormalizePhone(req.Phone)
	if len(req.Phone) < 8 {
		return "", apperr.Invalid("phone must have at least 8 digits")
	}

	clientType := model.ClientType(strings.ToUpper(strings.TrimSpace(req.Type)))
	if clientType == "" {
		clientType = model.ClientCliente
	}
	switch clientType {
	case model.ClientCliente, model.ClientFornecedor, model.ClientBoth:
	default:
		return "", apperr.Invalid("type must be CLIENTE, FORNECEDOR or BOTH")
	}
	return clientType, nil
}

func (s *clientService) Create(salonID uuid.UUID, req ClientRequest) (*model.Client, error) {
	clientType, err := s.validate(&req)
	if err != nil {
		return nil, err
	}

	if existing, err := s.clientRepo.FindByPhone(salonID, req.Phone); err == nil && existing.ID != uuid.Nil {
		return nil, apperr.Conflict("a contact with this phone already exists")
	}

	client := &model.Client{
		SalonID:   salonID,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     strings.TrimSpace(req.Email),
		Instagram: strings.TrimSpace(req.Instagram),
		Cpf:       strings.TrimSpace(req.Cpf),
		Address:   strings.TrimSpace(req.Address),
		Type:      clientType,
		Notes:     req.Notes,
	}
	if err := s.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) List(salonID uuid.UUID, search, clientType string) ([]model.Client, error) {
	f := repository.ClientFilter{
		Search: strings.TrimSpace(search),
		Type:   model.ClientType(strings.ToUpper(strings.TrimSpace(clientType))),
	}
	return s.clientRepo.FindAll(salonID, f)
}

func (s *clientService) Get(salonID, id uuid.UUID) (*model.Client, error) {
	client, err := s.clientRepo.FindByID(salonID, id)
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("client not found")
	}
	return client, err
}

func (s *clientService) Update(salonID, id uuid.UUID, req ClientRequest) (*model.Client, error) {
	client, err := s.Get(salonID, id)
	if err != nil {
		return nil, err
	}

	clientType, err := s.validate(&req)
	if err != nil {
		return nil, err
	}

	if req.Phone != client.Phone {
		if existing, err := s.clientRepo.FindByPhone(salonID, req.Phone); err == nil && existing.ID != client.ID {
			return nil, apperr.Conflict("a contact with this phone already exists")
		}
	}

	client.Name = req.Name
	client.Phone = req.Phone
	client.Email = strings.TrimSpace(req.Email)
	client.Instagram = strings.TrimSpace(req.Instagram)
	client.Cpf = strings.TrimSpace(req.Cpf)
	client.Address = strings.TrimSpace(req.Address)
	client.Type = clientType
	client.Notes = req.Notes

	if err := s.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Delete(salonID, id uuid.UUID) error {
	if _, err := s.Get(salonID, id); err != nil {
		return err
	}

	count, err := s.clientRepo.CountAppointments(salonID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("client has appointments and cannot be removed")
	}
	return s.clientRepo.Delete(salonID, id)
}

func (s *clientService) Metrics(salonID, id uuid.UUID) (*repository.ClientMetrics, error) {
	if _, err := s.Get(salonID, id); err != nil {
		return nil, err
	}
	return s.clientRepo.Metrics(salonID, id)
}

func (s *clientService) Orders(salonID, id uuid.UUID) ([]model.Order, error) {
	if _, err := s.Get(salonID, id); err != nil {
		return nil, err
	}
	return s.orderRepo.FindByClient(salonID, id)
}
