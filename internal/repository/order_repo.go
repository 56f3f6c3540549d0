package repository

import (
	"time"

	"marcenaria-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderFilter struct {
	Status   model.OrderStatus
	ClientID uuid.UUID
	Q        string
	From     time.Time
	To       time.Time
}

// OrderMonthStats aggregates active orders created in a period.
type OrderMonthStats struct {
	Count      int64 `json:"count"`
	TotalCents int64 `json:"totalCents"`
}

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.Order) error
	FindAll(salonID uuid.UUID, f OrderFilter) ([]model.Order, error)
	FindByID(salonID, id uuid.UUID) (*model.Order, error)
	FindByClient(salonID, clientID uuid.UUID) ([]model.Order, error)
	Save(tx *gorm.DB, order *model.Order) error
	ReplaceItems(tx *gorm.DB, orderID uuid.UUID, items []model.OrderItem) error
	DeleteCascade(tx *gorm.DB, salonID, id uuid.UUID) error
	MonthStats(salonID uuid.UUID, from, to time.Time) (*OrderMonthStats, error)
	UpcomingDeliveries(salonID uuid.UUID, from time.Time, limit int) ([]model.Order, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

// Statuses that count as real work, as opposed to quotes and cancels.
var activeOrderStatuses = []model.OrderStatus{
	model.OrderPedido, model.OrderEmProducao, model.OrderPronto, model.OrderEntregue,
}

func (r *orderRepo) Create(tx *gorm.DB, order *model.Order) error {
	return tx.Create(order).Error
}

func (r *orderRepo) FindAll(salonID uuid.UUID, f OrderFilter) ([]model.Order, error) {
	var orders []model.Order
	q := r.db.Preload("Client").Preload("Items").Where("orders.salon_id = ?", salonID)
	if f.Status != "" {
		q = q.Where("orders.status = ?", f.Status)
	}
	if f.ClientID != uuid.Nil {
		q = q.Where("orders.client_id = ?", f.ClientID)
	}
	if f.Q != "" {
		like := "%" + f.Q + "%"
		q = q.Joins("JOIN clients ON clients.id = orders.client_id").
			Where("LOWER(clients.name) LIKE LOWER(?) OR LOWER(orders.notes) LIKE LOWER(?)", like, like)
	}
	if !f.From.IsZero() {
		q = q.Where("orders.created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("orders.created_at < ?", f.To)
	}
	err := q.Order("orders.created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByID(salonID, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Client").Preload("Items").
		First(&order, "salon_id = ? AND id = ?", salonID, id).Error
	return &order, err
}

func (r *orderRepo) FindByClient(salonID, clientID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").
		Where("salon_id = ? AND client_id = ?", salonID, clientID).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) Save(tx *gorm.DB, order *model.Order) error {
	return tx.Save(order).Error
}

// ReplaceItems swaps the order's item lines wholesale. Runs inside the
// caller's tx.
func (r *orderRepo) ReplaceItems(tx *gorm.DB, orderID uuid.UUID, items []model.OrderItem) error {
	if err := tx.Delete(&model.OrderItem{}, "order_id = ?", orderID).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	return tx.Create(&items).Error
}

// DeleteCascade removes the order with its items and any receivables
// (plus their installments) born from it. Runs inside the caller's tx.
func (r *orderRepo) DeleteCascade(tx *gorm.DB, salonID, id uuid.UUID) error {
	var receivableIDs []uuid.UUID
	if err := tx.Model(&model.Receivable{}).
		Where("salon_id = ? AND order_id = ?", salonID, id).
		Pluck("id", &receivableIDs).Error; err != nil {
		return err
	}
	if len(receivableIDs) > 0 {
		if err := tx.Delete(&model.ReceivableInstallment{}, "receivable_id IN ?", receivableIDs).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Receivable{}, "id IN ?", receivableIDs).Error; err != nil {
			return err
		}
	}
	if err := tx.Delete(&model.OrderItem{}, "order_id = ?", id).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Order{}, "salon_id = ? AND id = ?", salonID, id).Error
}

func (r *orderRepo) MonthStats(salonID uuid.UUID, from, to time.Time) (*OrderMonthStats, error) {
	var stats OrderMonthStats
	q := r.db.Model(&model.Order{}).
		Where("salon_id = ? AND status IN ? AND created_at >= ? AND created_at < ?",
			salonID, activeOrderStatuses, from, to)
	if err := q.Session(&gorm.Session{}).Count(&stats.Count).Error; err != nil {
		return nil, err
	}
	if err := q.Session(&gorm.Session{}).Select("COALESCE(SUM(total_cents), 0)").Scan(&stats.TotalCents).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *orderRepo) UpcomingDeliveries(salonID uuid.UUID, from time.Time, limit int) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Client").
		Where("salon_id = ? AND status IN ? AND expected_delivery_at >= ?",
			salonID,
			[]model.OrderStatus{model.OrderPedido, model.OrderEmProducao, model.OrderPronto},
			from).
		Order("expected_delivery_at ASC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}
