package repository

import (
	"time"

	"marcenaria-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CostCategorySum backs the per-category expense breakdown.
type CostCategorySum struct {
	Category   string `json:"category"`
	TotalCents int64  `json:"totalCents"`
}

type CostFilter struct {
	Type       model.CostType
	SupplierID uuid.UUID
}

type CostRepository interface {
	Create(tx *gorm.DB, cost *model.Cost) error
	CreateBatch(tx *gorm.DB, costs []model.Cost) error
	FindByMonth(salonID uuid.UUID, yearMonth string, f CostFilter) ([]model.Cost, error)
	FindByID(salonID, id uuid.UUID) (*model.Cost, error)
	FindRecurringHistory(salonID uuid.UUID) ([]model.Cost, error)
	Save(cost *model.Cost) error
	Delete(salonID, id uuid.UUID) error
	SumMonth(salonID uuid.UUID, yearMonth string) (int64, error)
	SumBetween(salonID uuid.UUID, from, to time.Time) (int64, error)
	SumByCategoryBetween(salonID uuid.UUID, from, to time.Time) ([]CostCategorySum, error)
}

type costRepo struct {
	db *gorm.DB
}

func NewCostRepo(db *gorm.DB) CostRepository {
	return &costRepo{db}
}

func (r *costRepo) Create(tx *gorm.DB, cost *model.Cost) error {
	return tx.Create(cost).Error
}

func (r *costRepo) CreateBatch(tx *gorm.DB, costs []model.Cost) error {
	if len(costs) == 0 {
		return nil
	}
	return tx.Create(&costs).Error
}

func (r *costRepo) FindByMonth(salonID uuid.UUID, yearMonth string, f CostFilter) ([]model.Cost, error) {
	query := r.db.Preload("Supplier").
		Where("salon_id = ? AND year_month = ?", salonID, yearMonth)
	if f.Type != "" {
		query = query.Where("type = ?", f.Type)
	}
	if f.SupplierID != uuid.Nil {
		query = query.Where("supplier_id = ?", f.SupplierID)
	}

	var costs []model.Cost
	err := query.Order("occurred_at ASC").Find(&costs).Error
	return costs, err
}

func (r *costRepo) FindByID(salonID, id uuid.UUID) (*model.Cost, error) {
	var cost model.Cost
	err := r.db.First(&cost, "salon_id = ? AND id = ?", salonID, id).Error
	return &cost, err
}

// FindRecurringHistory loads every occurrence that belongs to a
// recurring group, for the backfill pass.
func (r *costRepo) FindRecurringHistory(salonID uuid.UUID) ([]model.Cost, error) {
	var costs []model.Cost
	err := r.db.Where("salon_id = ? AND recurring_group_id <> ''", salonID).
		Find(&costs).Error
	return costs, err
}

func (r *costRepo) Save(cost *model.Cost) error {
	return r.db.Save(cost).Error
}

func (r *costRepo) Delete(salonID, id uuid.UUID) error {
	return r.db.Delete(&model.Cost{}, "salon_id = ? AND id = ?", salonID, id).Error
}

func (r *costRepo) SumMonth(salonID uuid.UUID, yearMonth string) (int64, error) {
	var sum int64
	err := r.db.Model(&model.Cost{}).
		Where("salon_id = ? AND year_month = ?", salonID, yearMonth).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *costRepo) SumBetween(salonID uuid.UUID, from, to time.Time) (int64, error) {
	var sum int64
	err := r.db.Model(&model.Cost{}).
		Where("salon_id = ? AND occurred_at >= ? AND occurred_at < ?", salonID, from, to).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *costRepo) SumByCategoryBetween(salonID uuid.UUID, from, to time.Time) ([]CostCategorySum, error) {
	var sums []CostCategorySum
	err := r.db.Model(&model.Cost{}).
		Where("salon_id = ? AND occurred_at >= ? AND occurred_at < ?", salonID, from, to).
		Select("category, COALESCE(SUM(amount_cents), 0) as total_cents").
		Group("category").
		Order("total_cents DESC").
		Scan(&sums).Error
	return sums, err
}
