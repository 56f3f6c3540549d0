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

type PayableCreateRequest struct {
	SupplierID    *uuid.UUID           `json:"supplierId"`
	Description   string               `json:"description"`
	Category      string               `json:"category"`
	PaymentMethod string               `json:"paymentMethod"`
	Notes         string               `json:"notes"`
	Installments  []InstallmentRequest `json:"installments"`
}

type PayablePatchRequest struct {
	SupplierID    *uuid.UUID `json:"supplierId"`
	Description   *string    `json:"description"`
	Category      *string    `json:"category"`
	PaymentMethod *string    `json:"paymentMethod"`
	Notes         *string    `json:"notes"`
}

type PayableInstallmentPatchRequest struct {
	Status      *string    `json:"status"`
	PaidAt      *time.Time `json:"paidAt"`
	AmountCents *int64     `json:"amountCents"`
	DueDate     *time.Time `json:"dueDate"`
	Method      *string    `json:"method"`
	Notes       *string    `json:"notes"`
}

type PayableService interface {
	Create(salonID uuid.UUID, req PayableCreateRequest) (*model.Payable, error)
	List(salonID uuid.UUID) ([]model.Payable, error)
	Get(salonID, id uuid.UUID) (*model.Payable, error)
	Patch(salonID, id uuid.UUID, req PayablePatchRequest) (*model.Payable, error)
	PatchInstallment(salonID, payableID, installmentID uuid.UUID, req PayableInstallmentPatchRequest) (*model.Payable, error)
	Delete(salonID, id uuid.UUID) error
}

type payableService struct {
	payableRepo repository.PayableRepository
	clientRepo  repository.ClientRepository
	db          *gorm.DB
}

func NewPayableService(payableRepo repository.PayableRepository, clientRepo repository.ClientRepository, db *gorm.DB) PayableService {
	return &payableService{payableRepo: payableRepo, clientRepo: clientRepo, db: db}
}

func (s *payableService) Create(salonID uuid.UUID, req PayableCreateRequest) (*model.Payable, error) {
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

	// Payables only reference contacts registered as suppliers.
	if req.SupplierID != nil {
		supplier, err := s.clientRepo.FindByID(salonID, *req.SupplierID)
		if err != nil {
			return nil, apperr.NotFound("supplier not found")
		}
		if !supplier.Type.IsSupplier() {
			return nil, apperr.Invalid("contact is not registered as a supplier")
		}
	}

	payable := &model.Payable{
		SalonID:       salonID,
		SupplierID:    req.SupplierID,
		Description:   req.Description,
		Category:      strings.TrimSpace(req.Category),
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
		payable.Installments = append(payable.Installments, model.PayableInstallment{
			Number:      i + 1,
			DueDate:     p.DueDate,
			AmountCents: p.AmountCents,
			Status:      billing.InstallmentPendente,
			Method:      instMethod,
		})
	}
	payable.TotalCents = total

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.payableRepo.Create(tx, payable)
	})
	if err != nil {
		return nil, err
	}
	return s.payableRepo.FindByID(salonID, payable.ID)
}

func (s *payableService) List(salonID uuid.UUID) ([]model.Payable, error) {
	return s.payableRepo.FindAll(salonID)
}

func (s *payableService) Get(salonID, id uuid.UUID) (*model.Payable, error) {
	payable, err := s.payableRepo.FindByID(salonID, id)
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("payable not found")
	}
	return payable, err
}

// Patch edits the payable header. Amounts live on the installments
// and are not editable here.
func (s *payableService) Patch(salonID, id uuid.UUID, req PayablePatchRequest) (*model.Payable, error) {
	payable, err := s.Get(salonID, id)
	if err != nil {
		return nil, err
	}

	if req.SupplierID != nil {
		supplier, err := s.clientRepo.FindByID(salonID, *req.SupplierID)
		if err != nil {
			return nil, apperr.NotFound("supplier not found")
		}
		if !supplier.Type.IsSupplier() {
			return nil, apperr.Invalid("contact is not registered as a supplier")
		}
		payable.SupplierID = req.SupplierID
	}
	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		if desc == "" {
			return nil, apperr.Invalid("description is required")
		}
		payable.Description = desc
	}
	if req.Category != nil {
		payable.Category = strings.TrimSpace(*req.Category)
	}
	if req.PaymentMethod != nil {
		method, ok := billing.NormalizeMethod(*req.PaymentMethod)
		if !ok {
			return nil, apperr.Invalid("invalid paymentMethod")
		}
		payable.PaymentMethod = method
	}
	if req.Notes != nil {
		payable.Notes = *req.Notes
	}

	if err := s.payableRepo.Save(s.db, payable); err != nil {
		return nil, err
	}
	return payable, nil
}

// PatchInstallment edits one installment and resyncs the parent total
// with the sum of its installments, in one transaction.
func (s *payableService) PatchInstallment(salonID, payableID, installmentID uuid.UUID, req PayableInstallmentPatchRequest) (*model.Payable, error) {
	inst, err := s.payableRepo.FindInstallment(salonID, payableID, installmentID)
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
	if req.AmountCents != nil {
		if *req.AmountCents <= 0 {
			return nil, apperr.Invalid("amountCents must be > 0")
		}
		inst.AmountCents = *req.AmountCents
	}
	if req.DueDate != nil && !req.DueDate.IsZero() {
		inst.DueDate = *req.DueDate
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

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.payableRepo.SaveInstallment(tx, inst); err != nil {
			return err
		}
		return s.payableRepo.RecomputeTotal(tx, payableID)
	})
	if err != nil {
		return nil, err
	}
	return s.payableRepo.FindByID(salonID, payableID)
}

func (s *payableService) Delete(salonID, id uuid.UUID) error {
	if _, err := s.Get(salonID, id); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.payableRepo.DeleteCascade(tx, salonID, id)
	})
}
