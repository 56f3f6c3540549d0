package service

import (
	"fmt"
	"strings"
	"time"

	"marcenaria-api/internal/apperr"
	"marcenaria-api/internal/billing"
	"marcenaria-api/internal/model"
	"marcenaria-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// NormalizeItems validates and extends the raw item lines. Quantity
// defaults to 1; errors carry the 1-based item position.
func NormalizeItems(items []ItemRequest) ([]billing.LineItem, error) {
	if len(items) == 0 {
		return nil, apperr.Invalid("at least one item is required")
	}
	out := make([]billing.LineItem, 0, len(items))
	for i, it := range items {
		name := strings.TrimSpace(it.Name)
		if len(name) < 2 {
			return nil, apperr.Invalid(fmt.Sprintf("Item %d: name must have at least 2 characters", i+1))
		}
		qty := it.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 0 {
			return nil, apperr.Invalid(fmt.Sprintf("Item %d: quantity must be > 0", i+1))
		}
		if it.UnitPriceCents < 0 {
			return nil, apperr.Invalid(fmt.Sprintf("Item %d: unitPriceCents must be >= 0", i+1))
		}
		out = append(out, billing.LineItem{
			Name:           name,
			Description:    strings.TrimSpace(it.Description),
			Quantity:       qty,
			UnitPriceCents: it.UnitPriceCents,
			TotalCents:     int64(qty) * it.UnitPriceCents,
		})
	}
	return out, nil
}

// paymentPlan is the resolved payment terms shared by orders and
// approved budgets.
type paymentPlan struct {
	Mode         billing.PaymentMode
	Method       billing.PaymentMethod
	Count        int
	FirstDueDate time.Time
}

// resolvePaymentPlan applies the defaults: AVISTA means one
// installment; PARCELADO needs a count between the bounds. The first
// due date falls back from the explicit date to the expected delivery
// to now.
func resolvePaymentPlan(mode, method string, count int, firstDue, expectedDelivery *time.Time, now time.Time) (*paymentPlan, error) {
	m, ok := billing.NormalizeMode(mode)
	if !ok {
		return nil, apperr.Invalid("paymentMode must be AVISTA or PARCELADO")
	}
	if m == "" {
		m = billing.ModeAvista
	}

	pm, ok := billing.NormalizeMethod(method)
	if !ok {
		return nil, apperr.Invalid("invalid paymentMethod")
	}

	plan := &paymentPlan{Mode: m, Method: pm, Count: 1}
	if m == billing.ModeParcelado {
		if count < billing.MinInstallments || count > billing.MaxInstallments {
			return nil, apperr.Invalid(fmt.Sprintf("installmentsCount must be between %d and %d",
				billing.MinInstallments, billing.MaxInstallments))
		}
		plan.Count = count
	}

	switch {
	case firstDue != nil && !firstDue.IsZero():
		plan.FirstDueDate = *firstDue
	case expectedDelivery != nil && !expectedDelivery.IsZero():
		plan.FirstDueDate = *expectedDelivery
	default:
		plan.FirstDueDate = now
	}
	return plan, nil
}

type OrderCreateRequest struct {
	ClientID           uuid.UUID     `json:"clientId"`
	Items              []ItemRequest `json:"items"`
	DiscountCents      int64         `json:"discountCents"`
	PaymentMode        string        `json:"paymentMode"`
	PaymentMethod      string        `json:"paymentMethod"`
	InstallmentsCount  int           `json:"installmentsCount"`
	FirstDueDate       *time.Time    `json:"firstDueDate"`
	ExpectedDeliveryAt *time.Time    `json:"expectedDeliveryAt"`
	PaidNow            bool          `json:"paidNow"`
	Notes              string        `json:"notes"`
}

type OrderPatchRequest struct {
	Status             *string       `json:"status"`
	Items              []ItemRequest `json:"items"`
	DiscountCents      *int64        `json:"discountCents"`
	ExpectedDeliveryAt *time.Time    `json:"expectedDeliveryAt"`
	Notes              *string       `json:"notes"`
}

type OrderService interface {
	Create(salonID uuid.UUID, req OrderCreateRequest) (*model.Order, error)
	List(salonID uuid.UUID, f repository.OrderFilter) ([]model.Order, error)
	Get(salonID, id uuid.UUID) (*model.Order, error)
	Patch(salonID, id uuid.UUID, req OrderPatchRequest) (*model.Order, error)
	Cancel(salonID, id uuid.UUID) (*model.Order, error)
	Delete(salonID, id uuid.UUID) error
}

type orderService struct {
	orderRepo      repository.OrderRepository
	clientRepo     repository.ClientRepository
	receivableRepo repository.ReceivableRepository
	db             *gorm.DB
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	clientRepo repository.ClientRepository,
	receivableRepo repository.ReceivableRepository,
	db *gorm.DB,
) OrderService {
	return &orderService{
		orderRepo:      orderRepo,
		clientRepo:     clientRepo,
		receivableRepo: receivableRepo,
		db:             db,
	}
}

// Create persists the order together with its receivable and the
// installment schedule in one transaction. paidNow only settles the
// single AVISTA installment.
func (s *orderService) Create(salonID uuid.UUID, req OrderCreateRequest) (*model.Order, error) {
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
	plan, err := resolvePaymentPlan(req.PaymentMode, req.PaymentMethod, req.InstallmentsCount,
		req.FirstDueDate, req.ExpectedDeliveryAt, now)
	if err != nil {
		return nil, err
	}

	paidNow := req.PaidNow && plan.Mode == billing.ModeAvista
	schedule := billing.BuildSchedule(total, plan.Count, plan.FirstDueDate, plan.Method, paidNow, now)

	order := &model.Order{
		SalonID:            salonID,
		ClientID:           client.ID,
		Status:             model.OrderPedido,
		SubtotalCents:      subtotal,
		DiscountCents:      req.DiscountCents,
		TotalCents:         total,
		PaymentMode:        plan.Mode,
		PaymentMethod:      plan.Method,
		InstallmentsCount:  plan.Count,
		FirstDueDate:       &plan.FirstDueDate,
		ExpectedDeliveryAt: req.ExpectedDeliveryAt,
		Notes:              req.Notes,
	}
	for _, it := range items {
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
		receivable := buildReceivable(salonID, order.ID, client, total, plan.Method, schedule)
		return s.receivableRepo.Create(tx, receivable)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.FindByID(salonID, order.ID)
}

func buildReceivable(salonID, orderID uuid.UUID, client *model.Client, total int64, method billing.PaymentMethod, schedule []billing.ScheduleEntry) *model.Receivable {
	receivable := &model.Receivable{
		SalonID:       salonID,
		OrderID:       &orderID,
		ClientID:      &client.ID,
		Description:   "Pedido - " + client.Name,
		TotalCents:    total,
		PaymentMethod: method,
	}
	for _, e := range schedule {
		method := e.Method
		if method == "" {
			method = receivable.PaymentMethod
		}
		receivable.Installments = append(receivable.Installments, model.ReceivableInstallment{
			Number:      e.Number,
			DueDate:     e.DueDate,
			AmountCents: e.AmountCents,
			Status:      e.Status,
			PaidAt:      e.PaidAt,
			Method:      method,
		})
	}
	return receivable
}

func (s *orderService) List(salonID uuid.UUID, f repository.OrderFilter) ([]model.Order, error) {
	return s.orderRepo.FindAll(salonID, f)
}

func (s *orderService) Get(salonID, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(salonID, id)
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("order not found")
	}
	return order, err
}

// Patch updates status, expected delivery and notes. Moving to
// ENTREGUE stamps deliveredAt once. Sending items replaces the lines
// and recomputes the totals.
func (s *orderService) Patch(salonID, id uuid.UUID, req OrderPatchRequest) (*model.Order, error) {
	order, err := s.Get(salonID, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		next := model.OrderStatus(strings.ToUpper(strings.TrimSpace(*req.Status)))
		if !model.ValidOrderStatus(next) {
			return nil, apperr.Invalid("invalid status")
		}
		order.Status = next
		if next == model.OrderEntregue && order.DeliveredAt == nil {
			now := time.Now().UTC()
			order.DeliveredAt = &now
		}
	}
	if req.ExpectedDeliveryAt != nil {
		order.ExpectedDeliveryAt = req.ExpectedDeliveryAt
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}
	if req.DiscountCents != nil {
		if *req.DiscountCents < 0 {
			return nil, apperr.Invalid("discountCents must be >= 0")
		}
		order.DiscountCents = *req.DiscountCents
	}

	var newItems []model.OrderItem
	if req.Items != nil {
		items, err := NormalizeItems(req.Items)
		if err != nil {
			return nil, err
		}
		order.SubtotalCents, order.TotalCents = billing.CalcTotals(items, order.DiscountCents)
		for _, it := range items {
			newItems = append(newItems, model.OrderItem{
				Name:           it.Name,
				Description:    it.Description,
				Quantity:       it.Quantity,
				UnitPriceCents: it.UnitPriceCents,
				TotalCents:     it.TotalCents,
			})
		}
	} else if req.DiscountCents != nil {
		order.TotalCents = order.SubtotalCents - order.DiscountCents
		if order.TotalCents < 0 {
			order.TotalCents = 0
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if req.Items != nil {
			if err := s.orderRepo.ReplaceItems(tx, order.ID, newItems); err != nil {
				return err
			}
			order.Items = nil
		}
		return s.orderRepo.Save(tx, order)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.FindByID(salonID, order.ID)
}

func (s *orderService) Cancel(salonID, id uuid.UUID) (*model.Order, error) {
	order, err := s.Get(salonID, id)
	if err != nil {
		return nil, err
	}
	if order.Status == model.OrderCancelado {
		return nil, apperr.Conflict("order is already canceled")
	}
	order.Status = model.OrderCancelado
	if err := s.orderRepo.Save(s.db, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Delete removes the order and everything born from it. Installments
// go first so no orphan rows survive a partial failure.
func (s *orderService) Delete(salonID, id uuid.UUID) error {
	if _, err := s.Get(salonID, id); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.DeleteCascade(tx, salonID, id)
	})
}
