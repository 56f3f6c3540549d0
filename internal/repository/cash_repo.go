package repository

import (
	"time"

	"marcenaria-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CashRepository interface {
	CreateTransaction(txn *model.CashTransaction) error
	FindTransactions(salonID uuid.UUID, from, to time.Time) ([]model.CashTransaction, error)
	DeleteTransaction(salonID, id uuid.UUID) error
	SumBetween(salonID uuid.UUID, direction model.CashDirection, from, to time.Time) (int64, error)

	CreateCategory(cat *model.CashCategory) error
	FindCategories(salonID uuid.UUID) ([]model.CashCategory, error)
	FindCategoryByID(salonID, id uuid.UUID) (*model.CashCategory, error)
	DeleteCategory(salonID, id uuid.UUID) error
}

type cashRepo struct {
	db *gorm.DB
}

func NewCashRepo(db *gorm.DB) CashRepository {
	return &cashRepo{db}
}

func (r *cashRepo) CreateTransaction(txn *model.CashTransaction) error {
	return r.db.Create(txn).Error
}

func (r *cashRepo) FindTransactions(salonID uuid.UUID, from, to time.Time) ([]model.CashTransaction, error) {
	var txns []model.CashTransaction
	q := r.db.Preload("Category").Where("salon_id = ?", salonID)
	if !from.IsZero() {
		q = q.Where("occurred_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("occurred_at < ?", to)
	}
	err := q.Order("occurred_at DESC").Find(&txns).Error
	return txns, err
}

func (r *cashRepo) DeleteTransaction(salonID, id uuid.UUID) error {
	return r.db.Delete(&model.CashTransaction{}, "salon_id = ? AND id = ?", salonID, id).Error
}

func (r *cashRepo) SumBetween(salonID uuid.UUID, direction model.CashDirection, from, to time.Time) (int64, error) {
	var sum int64
	err := r.db.Model(&model.CashTransaction{}).
		Where("salon_id = ? AND type = ? AND occurred_at >= ? AND occurred_at < ?",
			salonID, direction, from, to).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *cashRepo) CreateCategory(cat *model.CashCategory) error {
	return r.db.Create(cat).Error
}

func (r *cashRepo) FindCategories(salonID uuid.UUID) ([]model.CashCategory, error) {
	var cats []model.CashCategory
	err := r.db.Where("salon_id = ?", salonID).Order("name ASC").Find(&cats).Error
	return cats, err
}

func (r *cashRepo) FindCategoryByID(salonID, id uuid.UUID) (*model.CashCategory, error) {
	var cat model.CashCategory
	err := r.db.First(&cat, "salon_id = ? AND id = ?", salonID, id).Error
	return &cat, err
}

func (r *cashRepo) DeleteCategory(salonID, id uuid.UUID) error {
	return r.db.Delete(&model.CashCategory{}, "salon_id = ? AND id = ?", salonID, id).Error
}
