package service

import (
	"time"

	"marcenaria-api/internal/billing"
	"marcenaria-api/internal/model"
	"marcenaria-api/internal/repository"

	"github.com/google/uuid"
)

// DuePoint is one day of the seven-day installment outlook.
type DuePoint struct {
	Date            string `json:"date"`
	ReceivableCents int64  `json:"receivableCents"`
	PayableCents    int64  `json:"payableCents"`
}

// DashboardOverview is the landing page aggregate.
type DashboardOverview struct {
	ClientsCount       int64                       `json:"clientsCount"`
	MonthOrders        *repository.OrderMonthStats `json:"monthOrders"`
	UpcomingDeliveries []model.Order               `json:"upcomingDeliveries"`
	WeekDue            []DuePoint                  `json:"weekDue"`
}

type DashboardService interface {
	Overview(salonID uuid.UUID, now time.Time) (*DashboardOverview, error)
}

type dashboardService struct {
	clientRepo     repository.ClientRepository
	orderRepo      repository.OrderRepository
	receivableRepo repository.ReceivableRepository
	payableRepo    repository.PayableRepository
}

func NewDashboardService(
	clientRepo repository.ClientRepository,
	orderRepo repository.OrderRepository,
	receivableRepo repository.ReceivableRepository,
	payableRepo repository.PayableRepository,
) DashboardService {
	return &dashboardService{
		clientRepo:     clientRepo,
		orderRepo:      orderRepo,
		receivableRepo: receivableRepo,
		payableRepo:    payableRepo,
	}
}

func (s *dashboardService) Overview(salonID uuid.UUID, now time.Time) (*DashboardOverview, error) {
	now = now.UTC()
	monthFrom, monthTo, err := billing.MonthRange(billing.MonthKey(now))
	if err != nil {
		return nil, err
	}

	clients, err := s.clientRepo.CountBySalon(salonID)
	if err != nil {
		return nil, err
	}
	monthOrders, err := s.orderRepo.MonthStats(salonID, monthFrom, monthTo)
	if err != nil {
		return nil, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	deliveries, err := s.orderRepo.UpcomingDeliveries(salonID, today, 10)
	if err != nil {
		return nil, err
	}

	weekDue, err := s.weekDue(salonID, today)
	if err != nil {
		return nil, err
	}

	return &DashboardOverview{
		ClientsCount:       clients,
		MonthOrders:        monthOrders,
		UpcomingDeliveries: deliveries,
		WeekDue:            weekDue,
	}, nil
}

// weekDue buckets the next seven days of installment due dates.
func (s *dashboardService) weekDue(salonID uuid.UUID, today time.Time) ([]DuePoint, error) {
	weekEnd := today.AddDate(0, 0, 7)

	recv, err := s.receivableRepo.ListInstallmentsDue(salonID, today, weekEnd)
	if err != nil {
		return nil, err
	}
	pay, err := s.payableRepo.ListInstallmentsDue(salonID, today, weekEnd)
	if err != nil {
		return nil, err
	}

	points := make([]DuePoint, 7)
	index := make(map[string]int, 7)
	for i := range points {
		day := today.AddDate(0, 0, i).Format("2006-01-02")
		points[i] = DuePoint{Date: day}
		index[day] = i
	}
	for _, inst := range recv {
		if i, ok := index[inst.DueDate.UTC().Format("2006-01-02")]; ok {
			points[i].ReceivableCents += inst.AmountCents
		}
	}
	for _, inst := range pay {
		if i, ok := index[inst.DueDate.UTC().Format("2006-01-02")]; ok {
			points[i].PayableCents += inst.AmountCents
		}
	}
	return points, nil
}
