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

type CostCreateRequest struct {
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Category    string     `json:"category"`
	AmountCents int64      `json:"amountCents"`
	OccurredAt  *time.Time `json:"occurredAt"`
	SupplierID  *uuid.UUID `json:"supplierId"`
	Recurring   bool       `json:"recurring"`
	Notes       string     `json:"notes"`
}

type CostPatchRequest struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	AmountCents *int64  `json:"amountCents"`
	Active      *bool   `json:"active"`
	Notes       *string `json:"notes"`
}

// CostSummary is the month overview with the per-working-day burden.
type CostSummary struct {
	YearMonth     string `json:"yearMonth"`
	TotalCents    int64  `json:"totalCents"`
	FixedCents    int64  `json:"fixedCents"`
	VariableCents int64  `json:"variableCents"`
	WorkDays      int    `json:"workDays"`
	DailyCents    int64  `json:"dailyCents"`
}

type CostService interface {
	Create(salonID uuid.UUID, req CostCreateRequest) (*model.Cost, error)
	ListMonth(salonID uuid.UUID, yearMonth string, f repository.CostFilter) ([]model.Cost, error)
	Get(salonID, id uuid.UUID) (*model.Cost, error)
	Patch(salonID, id uuid.UUID, req CostPatchRequest) (*model.Cost, error)
	Delete(salonID, id uuid.UUID) error
	Summary(salonID uuid.UUID, yearMonth string, workDays *int) (*CostSummary, error)
}

type costService struct {
	costRepo   repository.CostRepository
	clientRepo repository.ClientRepository
	db         *gorm.DB
}

func NewCostService(costRepo repository.CostRepository, clientRepo repository.ClientRepository, db *gorm.DB) CostService {
	return &costService{costRepo: costRepo, clientRepo: clientRepo, db: db}
}

func (s *costService) Create(salonID uuid.UUID, req CostCreateRequest) (*model.Cost, error) {
	req.Name = strings.TrimSpace(req.Name)
	if len(req.Name) < 2 {
		return nil, apperr.Invalid("name must have at least 2 characters")
	}
	if req.AmountCents < 0 {
		return nil, apperr.Invalid("amountCents must be >= 0")
	}

	costType := model.CostType(strings.ToUpper(strings.TrimSpace(req.Type)))
	if costType == "" {
		costType = model.CostFixo
	}
	if costType != model.CostFixo && costType != model.CostVariavel {
		return nil, apperr.Invalid("type must be FIXO or VARIAVEL")
	}

	occurredAt := time.Now().UTC()
	if req.OccurredAt != nil && !req.OccurredAt.IsZero() {
		occurredAt = req.OccurredAt.UTC()
	}

	if req.SupplierID != nil {
		supplier, err := s.clientRepo.FindByID(salonID, *req.SupplierID)
		if err != nil {
			return nil, apperr.NotFound("supplier not found")
		}
		if !supplier.Type.IsSupplier() {
			return nil, apperr.Invalid("contact is not registered as a supplier")
		}
	}

	cost := &model.Cost{
		SalonID:     salonID,
		Name:        req.Name,
		Type:        costType,
		Category:    strings.TrimSpace(req.Category),
		AmountCents: req.AmountCents,
		YearMonth:   billing.MonthKey(occurredAt),
		OccurredAt:  occurredAt,
		SupplierID:  req.SupplierID,
		Active:      true,
		Notes:       req.Notes,
	}
	if req.Recurring {
		cost.RecurringGroupID = uuid.New().String()
	}

	if err := s.costRepo.Create(s.db, cost); err != nil {
		return nil, err
	}
	return cost, nil
}

// ListMonth materializes the missing recurring occurrences up to the
// requested month and then returns everything in it. The backfill is
// idempotent, so concurrent listings at worst race on identical rows.
func (s *costService) ListMonth(salonID uuid.UUID, yearMonth string, f repository.CostFilter) ([]model.Cost, error) {
	if _, _, err := billing.MonthRange(yearMonth); err != nil {
		return nil, apperr.Invalid(err.Error())
	}

	if err := s.backfill(salonID, yearMonth); err != nil {
		return nil, err
	}
	return s.costRepo.FindByMonth(salonID, yearMonth, f)
}

func (s *costService) backfill(salonID uuid.UUID, targetMonth string) error {
	history, err := s.costRepo.FindRecurringHistory(salonID)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		return nil
	}

	occurrences := make([]billing.RecurringCost, 0, len(history))
	for _, c := range history {
		// Stock purchase costs are tagged with a group for dedup only;
		// they never repeat month over month.
		if strings.HasPrefix(c.RecurringGroupID, stockCostGroupPrefix) {
			continue
		}
		occ := billing.RecurringCost{
			GroupID:     c.RecurringGroupID,
			Name:        c.Name,
			Type:        string(c.Type),
			Category:    c.Category,
			AmountCents: c.AmountCents,
			YearMonth:   c.YearMonth,
			Active:      c.Active,
		}
		if c.SupplierID != nil {
			occ.SupplierID = c.SupplierID.String()
		}
		occurrences = append(occurrences, occ)
	}

	missing := billing.RecurringBackfill(occurrences, targetMonth)
	if len(missing) == 0 {
		return nil
	}

	rows := make([]model.Cost, 0, len(missing))
	for _, m := range missing {
		from, _, err := billing.MonthRange(m.YearMonth)
		if err != nil {
			continue
		}
		row := model.Cost{
			SalonID:          salonID,
			Name:             m.Name,
			Type:             model.CostType(m.Type),
			Category:         m.Category,
			AmountCents:      m.AmountCents,
			YearMonth:        m.YearMonth,
			OccurredAt:       from,
			RecurringGroupID: m.GroupID,
			Active:           true,
		}
		if id, err := uuid.Parse(m.SupplierID); err == nil && id != uuid.Nil {
			row.SupplierID = &id
		}
		rows = append(rows, row)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.costRepo.CreateBatch(tx, rows)
	})
}

func (s *costService) Get(salonID, id uuid.UUID) (*model.Cost, error) {
	cost, err := s.costRepo.FindByID(salonID, id)
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("cost not found")
	}
	return cost, err
}

func (s *costService) Patch(salonID, id uuid.UUID, req CostPatchRequest) (*model.Cost, error) {
	cost, err := s.Get(salonID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len(name) < 2 {
			return nil, apperr.Invalid("name must have at least 2 characters")
		}
		cost.Name = name
	}
	if req.Category != nil {
		cost.Category = strings.TrimSpace(*req.Category)
	}
	if req.AmountCents != nil {
		if *req.AmountCents < 0 {
			return nil, apperr.Invalid("amountCents must be >= 0")
		}
		cost.AmountCents = *req.AmountCents
	}
	if req.Active != nil {
		cost.Active = *req.Active
	}
	if req.Notes != nil {
		cost.Notes = *req.Notes
	}

	if err := s.costRepo.Save(cost); err != nil {
		return nil, err
	}
	return cost, nil
}

func (s *costService) Delete(salonID, id uuid.UUID) error {
	if _, err := s.costRepo.FindByID(salonID, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.NotFound("cost not found")
		}
		return err
	}
	return s.costRepo.Delete(salonID, id)
}

// Summary totals the month and spreads it over the working days.
// workDays defaults to 22 when absent; an explicit non-positive value
// is rejected. The daily figure is rounded to the cent.
func (s *costService) Summary(salonID uuid.UUID, yearMonth string, workDays *int) (*CostSummary, error) {
	if _, _, err := billing.MonthRange(yearMonth); err != nil {
		return nil, apperr.Invalid(err.Error())
	}
	days := 22
	if workDays != nil {
		if *workDays <= 0 {
			return nil, apperr.Invalid("workDays must be > 0")
		}
		days = *workDays
	}

	if err := s.backfill(salonID, yearMonth); err != nil {
		return nil, err
	}

	costs, err := s.costRepo.FindByMonth(salonID, yearMonth, repository.CostFilter{})
	if err != nil {
		return nil, err
	}

	summary := &CostSummary{YearMonth: yearMonth, WorkDays: days}
	for _, c := range costs {
		summary.TotalCents += c.AmountCents
		if c.Type == model.CostVariavel {
			summary.VariableCents += c.AmountCents
		} else {
			summary.FixedCents += c.AmountCents
		}
	}
	summary.DailyCents = (summary.TotalCents + int64(days)/2) / int64(days)
	return summary, nil
}
