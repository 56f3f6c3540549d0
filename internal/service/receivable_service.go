package service

import (
	"strings"
	"time"

	"marcenaria-api/internal/apperr"
	"marcenaria-api/internal/billing"
	"marcenaria-api/internal/model"
	"marcenaria-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InstallmentRequest struct {
	DueDate     time.Time `json:"dueDate"`
	AmountCents int64     `json:"amountCents"`
	Method      string    `json:"method"`
}

type ReceivableCreateRequest struct {
	ClientID      *uuid.UUID           `json:"clientId"`
	Description   string               `json:"description"`
	PaymentMethod string               `json:"paymentMethod"`
	Notes         string               `json:"notes"`
	Installments  []InstallmentRequest `json:"installments"`
}

type ReceivablePatchRequest struct {
	ClientID      *uuid.UUID `json:"clientId"`
	Description   *string    `json:"description"`
	PaymentMethod *string    `json:"paymentMethod"`
	Notes         *string    `json:"notes"`
}

type InstallmentPatchRequest struct {
	Status *string    `json:"status"`
	PaidAt *time.Time `json:"paidAt"`
	Method *string    `json:"method"`
	Notes  *string    `json:"notes"`
}

type ReceivableService interface {
	Create(salonID uuid.UUID, req ReceivableCreateRequest) (*model.Receivable, error)
	List(salonID uuid.UUID) ([]model.Receivable, error)
	Get(salonID, id uuid.UUID) (*model.Receivable, error)
	Patch(salonID, id uuid.UUID, req ReceivablePatchRequest) (*model.Receivable, error)
	PatchInstallment(salonID, receivableID, installmentID uuid.UUID, req InstallmentPatchRequest) (*model.ReceivableInstallment, error)
	Delete(salonID, id uuid.UUID) error
}

type receivableService struct {
	receivableRepo repository.ReceivableRepository
	clientRepo     repository.ClientRepository
	db             *gorm.DB
}

func NewReceivableService(receivableRepo repository.ReceivableRepository, clientRepo repository.ClientRepository, db *gorm.DB) ReceivableService {
	return &receivableService{receivableRepo: receivableRepo, clientRepo: clientRepo, db: db}
}

// Create records a manual receivable. The total is always the sum of
// the given installments; each installment without a method inherits
// the parent's.
func (s *receivableService) Create(salonID uuid.UUID, req ReceivableCreateRequest) (*model.Receivable, error) {
	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		return nil, apperr.Invalid("description is required")
	}
	if len(req.Installments) == 0 {
		return nil, apperr.Invalid("at least one installment is required")
	}

	method, ok := billing.NormalizeMethod(req.PaymentMethod)
	if !ok {
		return nil, apperr.Invalid("invalid paymentMethod")
	}

	if req.ClientID != nil {
		if _, err := s.clientRepo.FindByID(salonID, *req.ClientID); err != nil {
			return nil, apperr.NotFound("client not found")
		}
	}

	receivable := &model.Receivable{
		SalonID:       salonID,
		ClientID:      req.ClientID,
		Description:   req.Description,
		PaymentMethod: method,
		Notes:         req.Notes,
	}

	var total int64
	for i, p := range req.Installments {
		if p.DueDate.IsZero() {
			return nil, apperr.Invalid("installments must have a dueDate")
		}
		if p.AmountCents <= 0 {
			return nil, apperr.Invalid("installment amounts must be > 0")
		}
		instMethod, ok := billing.NormalizeMethod(p.Method)
		if !ok {
			return nil, apperr.Invalid("invalid installment method")
		}
		if instMethod == "" {
			instMethod = method
		}
		total += p.AmountCents
		receivable.Installments = append(receivable.Installments, model.ReceivableInstallment{
			Number:      i + 1,
			DueDate:     p.DueDate,
			AmountCents: p.AmountCents,
			Status:      billing.InstallmentPendente,
			Method:      instMethod,
		})
	}
	receivable.TotalCents = total

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.receivableRepo.Create(tx, receivable)
	})
	if err != nil {
		return nil, err
	}
	return s.receivableRepo.FindByID(salonID, receivable.ID)
}

func (s *receivableService) List(salonID uuid.UUID) ([]model.Receivable, error) {
	return s.receivableRepo.FindAll(salonID)
}

func (s *receivableService) Get(salonID, id uuid.UUID) (*model.Receivable, error) {
	receivable, err := s.receivableRepo.FindByID(salonID, id)
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("receivable not found")
	}
	return receivable, err
}

// Patch edits the receivable header. Amounts live on the
// installments and are not editable here.
func (s *receivableService) Patch(salonID, id uuid.UUID, req ReceivablePatchRequest) (*model.Receivable, error) {
	receivable, err := s.Get(salonID, id)
	if err != nil {
		return nil, err
	}

	if req.ClientID != nil {
		if _, err := s.clientRepo.FindByID(salonID, *req.ClientID); err != nil {
			return nil, apperr.NotFound("client not found")
		}
		receivable.ClientID = req.ClientID
	}
	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		if desc == "" {
			return nil, apperr.Invalid("description is required")
		}
		receivable.Description = desc
	}
	if req.PaymentMethod != nil {
		method, ok := billing.NormalizeMethod(*req.PaymentMethod)
		if !ok {
			return nil, apperr.Invalid("invalid paymentMethod")
		}
		receivable.PaymentMethod = method
	}
	if req.Notes != nil {
		receivable.Notes = *req.Notes
	}

	if err := s.receivableRepo.Save(s.db, receivable); err != nil {
		return nil, err
	}
	return receivable, nil
}

// PatchInstallment settles or reopens one installment. Moving to PAGO
// stamps paidAt (the given timestamp or now); any other status clears
// it.
func (s *receivableService) PatchInstallment(salonID, receivableID, installmentID uuid.UUID, req InstallmentPatchRequest) (*model.ReceivableInstallment, error) {
	inst, err := s.receivableRepo.FindInstallment(salonID, receivableID, installmentID)
	if err != nil {
		return nil, apperr.NotFound("installment not found")
	}

	if req.Status != nil {
		status, ok := billing.NormalizeInstallmentStatus(*req.Status)
		if !ok {
			return nil, apperr.Invalid("invalid status")
		}
		inst.Status = status
		if status == billing.InstallmentPago {
			paidAt := time.Now().UTC()
			if req.PaidAt != nil && !req.PaidAt.IsZero() {
				paidAt = *req.PaidAt
			}
			inst.PaidAt = &paidAt
		} else {
			inst.PaidAt = nil
		}
	}
	if req.Method != nil {
		method, ok := billing.NormalizeMethod(*req.Method)
		if !ok {
			return nil, apperr.Invalid("invalid method")
		}
		inst.Method = method
	}
	if req.Notes != nil {
		inst.Notes = *req.Notes
	}

	if err := s.receivableRepo.SaveInstallment(s.db, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

func (s *receivableService) Delete(salonID, id uuid.UUID) error {
	if _, err := s.Get(salonID, id); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.receivableRepo.DeleteCascade(tx, salonID, id)
	})
}
