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

// MonthSummary is the month financial overview.
type MonthSummary struct {
	YearMonth            string `json:"yearMonth"`
	ReceivableExpected   int64  `json:"receivableExpectedCents"`
	ReceivableReceived   int64  `json:"receivableReceivedCents"`
	ReceivableOpen       int64  `json:"receivableOpenCents"`
	PayableExpected      int64  `json:"payableExpectedCents"`
	PayablePaid          int64  `json:"payablePaidCents"`
	PayableOpen          int64  `json:"payableOpenCents"`
	CostsCents           int64  `json:"costsCents"`
	NetCents             int64  `json:"netCents"`
}

// MonthInstallments is the due-in-month drilldown for one side of the
// ledger.
type MonthInstallments struct {
	YearMonth     string      `json:"yearMonth"`
	ExpectedCents int64       `json:"expectedCents"`
	SettledCents  int64       `json:"settledCents"`
	OpenCents     int64       `json:"openCents"`
	Installments  interface{} `json:"installments"`
}

// CashflowReport carries the period flow plus the running balance.
type CashflowReport struct {
	From                 time.Time    `json:"from"`
	To                   time.Time    `json:"to"`
	Period               billing.Flow `json:"period"`
	PreviousBalanceCents int64        `json:"previousBalanceCents"`
	CurrentBalanceCents  int64        `json:"currentBalanceCents"`
}

type CashTransactionRequest struct {
	Type        string     `json:"type"`
	AmountCents int64      `json:"amountCents"`
	OccurredAt  *time.Time `json:"occurredAt"`
	Description string     `json:"description"`
	CategoryID  *uuid.UUID `json:"categoryId"`
}

type CashCategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type FinanceService interface {
	Summary(salonID uuid.UUID, yearMonth string) (*MonthSummary, error)
	Flow(salonID uuid.UUID, from, to time.Time) (billing.Flow, error)
	Cashflow(salonID uuid.UUID, from, to time.Time) (*CashflowReport, error)
	ReceivablesMonth(salonID uuid.UUID, yearMonth string) (*MonthInstallments, error)
	PayablesMonth(salonID uuid.UUID, yearMonth string) (*MonthInstallments, error)

	CreateTransaction(salonID uuid.UUID, req CashTransactionRequest) (*model.CashTransaction, error)
	ListTransactions(salonID uuid.UUID, from, to time.Time) ([]model.CashTransaction, error)
	DeleteTransaction(salonID, id uuid.UUID) error

	CreateCategory(salonID uuid.UUID, req CashCategoryRequest) (*model.CashCategory, error)
	ListCategories(salonID uuid.UUID) ([]model.CashCategory, error)
	DeleteCategory(salonID, id uuid.UUID) error

	CostCategories(salonID uuid.UUID, yearMonth string) ([]repository.CostCategorySum, error)
}

type financeService struct {
	receivableRepo repository.ReceivableRepository
	payableRepo    repository.PayableRepository
	costRepo       repository.CostRepository
	cashRepo       repository.CashRepository
	apptRepo       repository.AppointmentRepository
}

func NewFinanceService(
	receivableRepo repository.ReceivableRepository,
	payableRepo repository.PayableRepository,
	costRepo repository.CostRepository,
	cashRepo repository.CashRepository,
	apptRepo repository.AppointmentRepository,
) FinanceService {
	return &financeService{
		receivableRepo: receivableRepo,
		payableRepo:    payableRepo,
		costRepo:       costRepo,
		cashRepo:       cashRepo,
		apptRepo:       apptRepo,
	}
}

func (s *financeService) Summary(salonID uuid.UUID, yearMonth string) (*MonthSummary, error) {
	from, to, err := billing.MonthRange(yearMonth)
	if err != nil {
		return nil, apperr.Invalid(err.Error())
	}

	recv, err := s.receivableRepo.MonthTotals(salonID, from, to)
	if err != nil {
		return nil, err
	}
	pay, err := s.payableRepo.MonthTotals(salonID, from, to)
	if err != nil {
		return nil, err
	}
	costs, err := s.costRepo.SumMonth(salonID, yearMonth)
	if err != nil {
		return nil, err
	}

	summary := &MonthSummary{
		YearMonth:          yearMonth,
		ReceivableExpected: recv.ExpectedCents,
		ReceivableReceived: recv.SettledCents,
		ReceivableOpen:     billing.OpenCents(recv.ExpectedCents, recv.SettledCents),
		PayableExpected:    pay.ExpectedCents,
		PayablePaid:        pay.SettledCents,
		PayableOpen:        billing.OpenCents(pay.ExpectedCents, pay.SettledCents),
		CostsCents:         costs,
	}
	summary.NetCents = summary.ReceivableReceived - summary.PayablePaid - summary.CostsCents
	return summary, nil
}

// Flow sums every income and expense leg over [from, to). Income is
// finished appointments, settled receivable installments and manual
// cash in; expense is settled payable installments, costs and manual
// cash out.
func (s *financeService) Flow(salonID uuid.UUID, from, to time.Time) (billing.Flow, error) {
	var in, out int64

	apptIn, err := s.apptRepo.SumFinishedBetween(salonID, from, to)
	if err != nil {
		return billing.Flow{}, err
	}
	recvIn, err := s.receivableRepo.SumPaidBetween(salonID, from, to)
	if err != nil {
		return billing.Flow{}, err
	}
	cashIn, err := s.cashRepo.SumBetween(salonID, model.CashIn, from, to)
	if err != nil {
		return billing.Flow{}, err
	}
	in = apptIn + recvIn + cashIn

	payOut, err := s.payableRepo.SumPaidBetween(salonID, from, to)
	if err != nil {
		return billing.Flow{}, err
	}
	costOut, err := s.costRepo.SumBetween(salonID, from, to)
	if err != nil {
		return billing.Flow{}, err
	}
	cashOut, err := s.cashRepo.SumBetween(salonID, model.CashOut, from, to)
	if err != nil {
		return billing.Flow{}, err
	}
	out = payOut + costOut + cashOut

	return billing.NewFlow(in, out), nil
}

// Cashflow adds the running balance: everything before the window is
// the opening balance, the window's flow moves it.
func (s *financeService) Cashflow(salonID uuid.UUID, from, to time.Time) (*CashflowReport, error) {
	if from.IsZero() || to.IsZero() || !from.Before(to) {
		return nil, apperr.Invalid("from and to must form a valid interval")
	}

	previous, err := s.Flow(salonID, time.Time{}, from)
	if err != nil {
		return nil, err
	}
	period, err := s.Flow(salonID, from, to)
	if err != nil {
		return nil, err
	}

	return &CashflowReport{
		From:                 from,
		To:                   to,
		Period:               period,
		PreviousBalanceCents: previous.BalanceCents,
		CurrentBalanceCents:  previous.BalanceCents + period.BalanceCents,
	}, nil
}

func (s *financeService) ReceivablesMonth(salonID uuid.UUID, yearMonth string) (*MonthInstallments, error) {
	from, to, err := billing.MonthRange(yearMonth)
	if err != nil {
		return nil, apperr.Invalid(err.Error())
	}
	insts, err := s.receivableRepo.ListInstallmentsDue(salonID, from, to)
	if err != nil {
		return nil, err
	}
	totals, err := s.receivableRepo.MonthTotals(salonID, from, to)
	if err != nil {
		return nil, err
	}
	return &MonthInstallments{
		YearMonth:     yearMonth,
		ExpectedCents: totals.ExpectedCents,
		SettledCents:  totals.SettledCents,
		OpenCents:     billing.OpenCents(totals.ExpectedCents, totals.SettledCents),
		Installments:  insts,
	}, nil
}

func (s *financeService) PayablesMonth(salonID uuid.UUID, yearMonth string) (*MonthInstallments, error) {
	from, to, err := billing.MonthRange(yearMonth)
	if err != nil {
		return nil, apperr.Invalid(err.Error())
	}
	insts, err := s.payableRepo.ListInstallmentsDue(salonID, from, to)
	if err != nil {
		return nil, err
	}
	totals, err := s.payableRepo.MonthTotals(salonID, from, to)
	if err != nil {
		return nil, err
	}
	return &MonthInstallments{
		YearMonth:     yearMonth,
		ExpectedCents: totals.ExpectedCents,
		SettledCents:  totals.SettledCents,
		OpenCents:     billing.OpenCents(totals.ExpectedCents, totals.SettledCents),
		Installments:  insts,
	}, nil
}

func (s *financeService) CreateTransaction(salonID uuid.UUID, req CashTransactionRequest) (*model.CashTransaction, error) {
	direction := model.CashDirection(strings.ToUpper(strings.TrimSpace(req.Type)))
	if direction != model.CashIn && direction != model.CashOut {
		return nil, apperr.Invalid("type must be IN or OUT")
	}
	if req.AmountCents <= 0 {
		return nil, apperr.Invalid("amountCents must be > 0")
	}

	occurredAt := time.Now().UTC()
	if req.OccurredAt != nil && !req.OccurredAt.IsZero() {
		occurredAt = req.OccurredAt.UTC()
	}

	if req.CategoryID != nil {
		cat, err := s.cashRepo.FindCategoryByID(salonID, *req.CategoryID)
		if err != nil {
			return nil, apperr.NotFound("category not found")
		}
		if cat.Type != direction {
			return nil, apperr.Invalid("category direction does not match transaction type")
		}
	}

	txn := &model.CashTransaction{
		SalonID:     salonID,
		Type:        direction,
		Source:      model.CashSourceManual,
		AmountCents: req.AmountCents,
		OccurredAt:  occurredAt,
		Description: strings.TrimSpace(req.Description),
		CategoryID:  req.CategoryID,
	}
	if err := s.cashRepo.CreateTransaction(txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *financeService) ListTransactions(salonID uuid.UUID, from, to time.Time) ([]model.CashTransaction, error) {
	return s.cashRepo.FindTransactions(salonID, from, to)
}

func (s *financeService) DeleteTransaction(salonID, id uuid.UUID) error {
	return s.cashRepo.DeleteTransaction(salonID, id)
}

func (s *financeService) CreateCategory(salonID uuid.UUID, req CashCategoryRequest) (*model.CashCategory, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Invalid("name is required")
	}
	direction := model.CashDirection(strings.ToUpper(strings.TrimSpace(req.Type)))
	if direction != model.CashIn && direction != model.CashOut {
		return nil, apperr.Invalid("type must be IN or OUT")
	}

	cat := &model.CashCategory{SalonID: salonID, Name: name, Type: direction}
	if err := s.cashRepo.CreateCategory(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *financeService) ListCategories(salonID uuid.UUID) ([]model.CashCategory, error) {
	return s.cashRepo.FindCategories(salonID)
}

func (s *financeService) DeleteCategory(salonID, id uuid.UUID) error {
	if _, err := s.cashRepo.FindCategoryByID(salonID, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.NotFound("category not found")
		}
		return err
	}
	return s.cashRepo.DeleteCategory(salonID, id)
}

func (s *financeService) CostCategories(salonID uuid.UUID, yearMonth string) ([]repository.CostCategorySum, error) {
	from, to, err := billing.MonthRange(yearMonth)
	if err != nil {
		return nil, apperr.Invalid(err.Error())
	}
	return s.costRepo.SumByCategoryBetween(salonID, from, to)
}
