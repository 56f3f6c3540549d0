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

type BudgetInstallmentRequest struct {
	DueDate     time.Time `json:"dueDate"`
	AmountCents int64     `json:"amountCents"`
}

type BudgetCreateRequest struct {
	ClientID           uuid.UUID                  `json:"clientId"`
	Items              []ItemRequest              `json:"items"`
	DiscountCents      int64                      `json:"discountCents"`
	PaymentMode        string                     `json:"paymentMode"`
	PaymentMethod      string                     `json:"paymentMethod"`
	InstallmentsCount  int                        `json:"installmentsCount"`
	FirstDueDate       *time.Time                 `json:"firstDueDate"`
	CustomInstallments []BudgetInstallmentRequest `json:"customInstallments"`
	ValidUntil         *time.Time                 `json:"validUntil"`
	Notes              string                     `json:"notes"`
}

type BudgetPatchRequest struct {
	Items              []ItemRequest              `json:"items"`
	DiscountCents      *int64                     `json:"discountCents"`
	PaymentMode        *string                    `json:"paymentMode"`
	PaymentMethod      *string                    `json:"paymentMethod"`
	InstallmentsCount  *int                       `json:"installmentsCount"`
	FirstDueDate       *time.Time                 `json:"firstDueDate"`
	CustomInstallments []BudgetInstallmentRequest `json:"customInstallments"`
	ValidUntil         *time.Time                 `json:"validUntil"`
	Notes              *string                    `json:"notes"`
	Status             *string                    `json:"status"`
}

// ApproveResult carries the frozen budget plus the order it spawned.
type ApproveResult struct {
	Budget *model.Budget `json:"budget"`
	Order  *model.Order  `json:"order"`
}

type BudgetService interface {
	Create(salonID uuid.UUID, req BudgetCreateRequest) (*model.Budget, error)
	List(salonID uuid.UUID, f repository.BudgetFilter) ([]model.Budget, error)
	Get(salonID, id uuid.UUID) (*model.Budget, error)
	GetFull(salonID, id uuid.UUID) (*model.Budget, error)
	Patch(salonID, id uuid.UUID, req BudgetPatchRequest) (*model.Budget, error)
	Send(salonID, id uuid.UUID) (*model.Budget, error)
	Approve(salonID, id uuid.UUID) (*ApproveResult, error)
	Cancel(salonID, id uuid.UUID) (*model.Budget, error)
	Delete(salonID, id uuid.UUID) error
}

type budgetService struct {
	budgetRepo     repository.BudgetRepository
	orderRepo      repository.OrderRepository
	clientRepo     repository.ClientRepository
	receivableRepo repository.ReceivableRepository
	db             *gorm.DB
}

func NewBudgetService(
	budgetRepo repository.BudgetRepository,
	orderRepo repository.OrderRepository,
	clientRepo repository.ClientRepository,
	receivableRepo repository.ReceivableRepository,
	db *gorm.DB,
) BudgetService {
	return &budgetService{
		budgetRepo:     budgetRepo,
		orderRepo:      orderRepo,
		clientRepo:     clientRepo,
		receivableRepo: receivableRepo,
		db:             db,
	}
}

// budgetPlan resolves payment terms for a budget. PARCELADO without an
// explicit count defaults to 2 parts.
func budgetPlan(mode, method string, count int, firstDue *time.Time, now time.Time) (*paymentPlan, error) {
	m, ok := billing.NormalizeMode(mode)
	if !ok {
		return nil, apperr.Invalid("paymentMode must be AVISTA or PARCELADO")
	}
	if m == billing.ModeParcelado && count == 0 {
		count = billing.MinInstallments
	}
	return resolvePaymentPlan(mode, method, count, firstDue, nil, now)
}

func buildCustomEntries(reqs []BudgetInstallmentRequest, totalCents int64, count int) ([]billing.ScheduleEntry, error) {
	custom := make([]billing.CustomInstallment, len(reqs))
	for i, p := range reqs {
		custom[i] = billing.CustomInstallment{DueDate: p.DueDate, AmountCents: p.AmountCents}
	}
	if len(custom) != count {
		return nil, apperr.Invalid("customInstallments length must match installmentsCount")
	}
	entries, err := billing.ValidateCustomInstallments(custom, totalCents)
	if err != nil {
		return nil, apperr.Invalid(err.Error())
	}
	return entries, nil
}

func (s *budgetService) Create(salonID uuid.UUID, req BudgetCreateRequest) (*model.Budget, error) {
	client, err := s.clientRepo.FindByID(salonID, req.ClientID)
	if err != nil {
		return nil, apperr.NotFound("client not found")
	}

	items, err := NormalizeItems(req.Items)
	if err != nil {
		return nil, err
	}
	if req.DiscountCents < 0 {
		return nil, apperr.Invalid("discountCents must be >= 0")
	}
	subtotal, total := billing.CalcTotals(items, req.DiscountCents)

	now := time.Now().UTC()
	plan, err := budgetPlan(req.PaymentMode, req.PaymentMethod, req.InstallmentsCount, req.FirstDueDate, now)
	if err != nil {
		return nil, err
	}

	budget := &model.Budget{
		SalonID:           salonID,
		ClientID:          client.ID,
		Status:            model.BudgetRascunho,
		SubtotalCents:     subtotal,
		DiscountCents:     req.DiscountCents,
		TotalCents:        total,
		PaymentMode:       plan.Mode,
		PaymentMethod:     plan.Method,
		InstallmentsCount: plan.Count,
		FirstDueDate:      &plan.FirstDueDate,
		ValidUntil:        req.ValidUntil,
		Notes:             req.Notes,
	}
	for _, it := range items {
		budget.Items = append(budget.Items, model.BudgetItem{
			Name:           it.Name,
			Description:    it.Description,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			TotalCents:     it.TotalCents,
		})
	}

	if len(req.CustomInstallments) > 0 {
		entries, err := buildCustomEntries(req.CustomInstallments, total, plan.Count)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			budget.Installments = append(budget.Installments, model.BudgetInstallment{
				Number:      e.Number,
				DueDate:     e.DueDate,
				AmountCents: e.AmountCents,
			})
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.budgetRepo.Create(tx, budget)
	})
	if err != nil {
		return nil, err
	}
	return s.budgetRepo.FindFull(salonID, budget.ID)
}

func (s *budgetService) List(salonID uuid.UUID, f repository.BudgetFilter) ([]model.Budget, error) {
	return s.budgetRepo.FindAll(salonID, f)
}

func (s *budgetService) Get(salonID, id uuid.UUID) (*model.Budget, error) {
	budget, err := s.budgetRepo.FindByID(salonID, id)
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("budget not found")
	}
	return budget, err
}

func (s *budgetService) GetFull(salonID, id uuid.UUID) (*model.Budget, error) {
	budget, err := s.budgetRepo.FindFull(salonID, id)
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("budget not found")
	}
	return budget, err
}

// Patch rewrites the editable parts of a budget. Frozen budgets
// (APROVADO or CANCELADO) reject every edit.
func (s *budgetService) Patch(salonID, id uuid.UUID, req BudgetPatchRequest) (*model.Budget, error) {
	budget, err := s.GetFull(salonID, id)
	if err != nil {
		return nil, err
	}
	if budget.Status.Terminal() {
		return nil, apperr.Conflict("budget is " + string(budget.Status) + " and cannot be edited")
	}

	if req.Status != nil {
		next := model.BudgetStatus(strings.ToUpper(strings.TrimSpace(*req.Status)))
		switch next {
		case model.BudgetRascunho, model.BudgetEnviado, model.BudgetRejeitado:
			budget.Status = next
		default:
			return nil, apperr.Invalid("status must be RASCUNHO, ENVIADO or REJEITADO; use the dedicated operations for approval and cancellation")
		}
	}

	var items []billing.LineItem
	if req.Items != nil {
		items, err = NormalizeItems(req.Items)
		if err != nil {
			return nil, err
		}
	} else {
		for _, it := range budget.Items {
			items = append(items, billing.LineItem{
				Name:           it.Name,
				Description:    it.Description,
				Quantity:       it.Quantity,
				UnitPriceCents: it.UnitPriceCents,
				TotalCents:     it.TotalCents,
			})
		}
	}

	if req.DiscountCents != nil {
		if *req.DiscountCents < 0 {
			return nil, apperr.Invalid("discountCents must be >= 0")
		}
		budget.DiscountCents = *req.DiscountCents
	}
	budget.SubtotalCents, budget.TotalCents = billing.CalcTotals(items, budget.DiscountCents)

	mode := string(budget.PaymentMode)
	if req.PaymentMode != nil {
		mode = *req.PaymentMode
	}
	method := string(budget.PaymentMethod)
	if req.PaymentMethod != nil {
		method = *req.PaymentMethod
	}
	count := budget.InstallmentsCount
	if req.InstallmentsCount != nil {
		count = *req.InstallmentsCount
	}
	firstDue := budget.FirstDueDate
	if req.FirstDueDate != nil {
		firstDue = req.FirstDueDate
	}

	plan, err := budgetPlan(mode, method, count, firstDue, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	budget.PaymentMode = plan.Mode
	budget.PaymentMethod = plan.Method
	budget.InstallmentsCount = plan.Count
	budget.FirstDueDate = &plan.FirstDueDate

	if req.ValidUntil != nil {
		budget.ValidUntil = req.ValidUntil
	}
	if req.Notes != nil {
		budget.Notes = *req.Notes
	}

	var newInstallments []model.BudgetInstallment
	if req.CustomInstallments != nil {
		entries, err := buildCustomEntries(req.CustomInstallments, budget.TotalCents, budget.InstallmentsCount)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			newInstallments = append(newInstallments, model.BudgetInstallment{
				BudgetID:    budget.ID,
				Number:      e.Number,
				DueDate:     e.DueDate,
				AmountCents: e.AmountCents,
			})
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if req.Items != nil {
			newItems := make([]model.BudgetItem, 0, len(items))
			for _, it := range items {
				newItems = append(newItems, model.BudgetItem{
					BudgetID:       budget.ID,
					Name:           it.Name,
					Description:    it.Description,
					Quantity:       it.Quantity,
					UnitPriceCents: it.UnitPriceCents,
					TotalCents:     it.TotalCents,
				})
			}
			if err := s.budgetRepo.ReplaceItems(tx, budget.ID, newItems); err != nil {
				return err
			}
		}
		if req.CustomInstallments != nil {
			if err := s.budgetRepo.ReplaceInstallments(tx, budget.ID, newInstallments); err != nil {
				return err
			}
		}
		budget.Items = nil
		budget.Installments = nil
		return s.budgetRepo.Save(tx, budget)
	})
	if err != nil {
		return nil, err
	}
	return s.budgetRepo.FindFull(salonID, budget.ID)
}

func (s *budgetService) Send(salonID, id uuid.UUID) (*model.Budget, error) {
	budget, err := s.Get(salonID, id)
	if err != nil {
		return nil, err
	}
	if budget.Status.Terminal() {
		return nil, apperr.Conflict("budget is " + string(budget.Status) + " and cannot be sent")
	}

	now := time.Now().UTC()
	budget.Status = model.BudgetEnviado
	budget.SentAt = &now
	budget.Items = nil
	if err := s.budgetRepo.Save(s.db, budget); err != nil {
		return nil, err
	}
	return s.budgetRepo.FindByID(salonID, id)
}

// Approve freezes the budget and spawns the order plus its receivable
// schedule in one transaction. The status flip is a conditional update;
// losing a concurrent approval race surfaces as a conflict, so at most
// one order is ever created per budget.
func (s *budgetService) Approve(salonID, id uuid.UUID) (*ApproveResult, error) {
	budget, err := s.GetFull(salonID, id)
	if err != nil {
		return nil, err
	}
	if budget.Status.Terminal() {
		return nil, apperr.Conflict("budget is " + string(budget.Status) + " and cannot be approved")
	}

	client, err := s.clientRepo.FindByID(salonID, budget.ClientID)
	if err != nil {
		return nil, apperr.NotFound("client not found")
	}

	now := time.Now().UTC()
	firstDue := now
	if budget.FirstDueDate != nil && !budget.FirstDueDate.IsZero() {
		firstDue = *budget.FirstDueDate
	}

	// Explicit plan is copied verbatim; otherwise the total is split.
	var schedule []billing.ScheduleEntry
	if len(budget.Installments) > 0 {
		for _, p := range budget.Installments {
			schedule = append(schedule, billing.ScheduleEntry{
				Number:      p.Number,
				DueDate:     p.DueDate,
				AmountCents: p.AmountCents,
				Status:      billing.InstallmentPendente,
			})
		}
	} else {
		schedule = billing.BuildSchedule(budget.TotalCents, budget.InstallmentsCount, firstDue, budget.PaymentMethod, false, now)
	}

	order := &model.Order{
		SalonID:           salonID,
		ClientID:          budget.ClientID,
		Status:            model.OrderPedido,
		SubtotalCents:     budget.SubtotalCents,
		DiscountCents:     budget.DiscountCents,
		TotalCents:        budget.TotalCents,
		PaymentMode:       budget.PaymentMode,
		PaymentMethod:     budget.PaymentMethod,
		InstallmentsCount: budget.InstallmentsCount,
		FirstDueDate:      &firstDue,
		Notes:             budget.Notes,
	}
	for _, it := range budget.Items {
		order.Items = append(order.Items, model.OrderItem{
			Name:           it.Name,
			Description:    it.Description,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			TotalCents:     it.TotalCents,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(tx, order); err != nil {
			return err
		}
		receivable := buildReceivable(salonID, order.ID, client, budget.TotalCents, budget.PaymentMethod, schedule)
		if err := s.receivableRepo.Create(tx, receivable); err != nil {
			return err
		}

		affected, err := s.budgetRepo.Approve(tx, salonID, id, map[string]interface{}{
			"status":            model.BudgetAprovado,
			"approved_at":       now,
			"approved_order_id": order.ID,
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperr.Conflict("budget was already approved or canceled")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	budget, err = s.budgetRepo.FindFull(salonID, id)
	if err != nil {
		return nil, err
	}
	fullOrder, err := s.orderRepo.FindByID(salonID, order.ID)
	if err != nil {
		return nil, err
	}
	return &ApproveResult{Budget: budget, Order: fullOrder}, nil
}

func (s *budgetService) Cancel(salonID, id uuid.UUID) (*model.Budget, error) {
	budget, err := s.Get(salonID, id)
	if err != nil {
		return nil, err
	}
	if budget.Status.Terminal() {
		return nil, apperr.Conflict("budget is " + string(budget.Status) + " and cannot be canceled")
	}

	budget.Status = model.BudgetCancelado
	budget.Items = nil
	if err := s.budgetRepo.Save(s.db, budget); err != nil {
		return nil, err
	}
	return s.budgetRepo.FindByID(salonID, id)
}

func (s *budgetService) Delete(salonID, id uuid.UUID) error {
	budget, err := s.Get(salonID, id)
	if err != nil {
		return err
	}
	if budget.Status == model.BudgetAprovado {
		return apperr.Conflict("approved budgets cannot be removed")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.budgetRepo.DeleteCascade(tx, salonID, id)
	})
}
