package repository

import (
	"time"

	"marcenaria-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockBalance is the computed on-hand quantity for one material.
type StockBalance struct {
	MaterialID uuid.UUID `json:"materialId"`
	Quantity   float64   `json:"quantity"`
}

type MovementFilter struct {
	MaterialID uuid.UUID
	Type       model.MovementType
	From       time.Time
	To         time.Time
}

type MaterialFilter struct {
	Search     string
	ActiveOnly bool
	SupplierID uuid.UUID
}

type MaterialRepository interface {
	Create(tx *gorm.DB, material *model.Material) error
	FindAll(salonID uuid.UUID, f MaterialFilter) ([]model.Material, error)
	FindByID(salonID, id uuid.UUID) (*model.Material, error)
	CountByName(salonID uuid.UUID, name string, excludeID uuid.UUID) (int64, error)
	Update(material *model.Material) error

	CreateMovement(tx *gorm.DB, movement *model.MaterialMovement) error
	FindMovements(salonID uuid.UUID, f MovementFilter) ([]model.MaterialMovement, error)

	Balance(salonID, materialID uuid.UUID) (float64, error)
	Balances(salonID uuid.UUID) ([]StockBalance, error)

	UpsertSupplierPrice(tx *gorm.DB, price *model.MaterialSupplierPrice) error
	ReplaceSupplierPrices(tx *gorm.DB, salonID, materialID uuid.UUID, prices []model.MaterialSupplierPrice) error
	FindSupplierPrices(salonID, materialID uuid.UUID) ([]model.MaterialSupplierPrice, error)
	SumPurchasesBetween(salonID uuid.UUID, from, to time.Time) (int64, error)
}

type materialRepo struct {
	db *gorm.DB
}

func NewMaterialRepo(db *gorm.DB) MaterialRepository {
	return &materialRepo{db}
}

func (r *materialRepo) Create(tx *gorm.DB, material *model.Material) error {
	return tx.Create(material).Error
}

func (r *materialRepo) FindAll(salonID uuid.UUID, f MaterialFilter) ([]model.Material, error) {
	var materials []model.Material
	q := r.db.Where("materials.salon_id = ?", salonID)
	if f.Search != "" {
		q = q.Where("LOWER(materials.name) LIKE LOWER(?)", "%"+f.Search+"%")
	}
	if f.ActiveOnly {
		q = q.Where("materials.active = ?", true)
	}
	if f.SupplierID != uuid.Nil {
		q = q.Joins("JOIN material_supplier_prices msp ON msp.material_id = materials.id").
			Where("msp.supplier_id = ?", f.SupplierID)
	}
	err := q.Order("materials.name ASC").Find(&materials).Error
	return materials, err
}

func (r *materialRepo) FindByID(salonID, id uuid.UUID) (*model.Material, error) {
	var material model.Material
	err := r.db.First(&material, "salon_id = ? AND id = ?", salonID, id).Error
	return &material, err
}

func (r *materialRepo) CountByName(salonID uuid.UUID, name string, excludeID uuid.UUID) (int64, error) {
	var count int64
	q := r.db.Model(&model.Material{}).
		Where("salon_id = ? AND LOWER(name) = LOWER(?)", salonID, name)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *materialRepo) Update(material *model.Material) error {
	return r.db.Save(material).Error
}

func (r *materialRepo) CreateMovement(tx *gorm.DB, movement *model.MaterialMovement) error {
	return tx.Create(movement).Error
}

func (r *materialRepo) FindMovements(salonID uuid.UUID, f MovementFilter) ([]model.MaterialMovement, error) {
	var movements []model.MaterialMovement
	q := r.db.Preload("Material").Preload("Supplier").Where("salon_id = ?", salonID)
	if f.MaterialID != uuid.Nil {
		q = q.Where("material_id = ?", f.MaterialID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if !f.From.IsZero() {
		q = q.Where("occurred_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("occurred_at < ?", f.To)
	}
	err := q.Order("occurred_at DESC").Find(&movements).Error
	return movements, err
}

// Balance computes on-hand stock from the ledger: IN and ADJUST add,
// OUT subtracts.
func (r *materialRepo) Balance(salonID, materialID uuid.UUID) (float64, error) {
	var qty float64
	err := r.db.Model(&model.MaterialMovement{}).
		Where("salon_id = ? AND material_id = ?", salonID, materialID).
		Select("COALESCE(SUM(CASE WHEN type = 'OUT' THEN -quantity ELSE quantity END), 0)").
		Scan(&qty).Error
	return qty, err
}

func (r *materialRepo) Balances(salonID uuid.UUID) ([]StockBalance, error) {
	var balances []StockBalance
	err := r.db.Model(&model.MaterialMovement{}).
		Where("salon_id = ?", salonID).
		Select("material_id, COALESCE(SUM(CASE WHEN type = 'OUT' THEN -quantity ELSE quantity END), 0) as quantity").
		Group("material_id").
		Scan(&balances).Error
	return balances, err
}

func (r *materialRepo) UpsertSupplierPrice(tx *gorm.DB, price *model.MaterialSupplierPrice) error {
	var existing model.MaterialSupplierPrice
	err := tx.First(&existing,
		"salon_id = ? AND material_id = ? AND supplier_id = ?",
		price.SalonID, price.MaterialID, price.SupplierID).Error
	if err == gorm.ErrRecordNotFound {
		return tx.Create(price).Error
	}
	if err != nil {
		return err
	}
	existing.UnitCostCents = price.UnitCostCents
	existing.LastPurchaseAt = price.LastPurchaseAt
	return tx.Save(&existing).Error
}

// ReplaceSupplierPrices swaps the material's supplier list wholesale.
func (r *materialRepo) ReplaceSupplierPrices(tx *gorm.DB, salonID, materialID uuid.UUID, prices []model.MaterialSupplierPrice) error {
	if err := tx.Delete(&model.MaterialSupplierPrice{},
		"salon_id = ? AND material_id = ?", salonID, materialID).Error; err != nil {
		return err
	}
	if len(prices) == 0 {
		return nil
	}
	return tx.Create(&prices).Error
}

func (r *materialRepo) FindSupplierPrices(salonID, materialID uuid.UUID) ([]model.MaterialSupplierPrice, error) {
	var prices []model.MaterialSupplierPrice
	err := r.db.Preload("Supplier").
		Where("salon_id = ? AND material_id = ?", salonID, materialID).
		Order("last_purchase_at DESC").
		Find(&prices).Error
	return prices, err
}

// SumPurchasesBetween totals the cost of IN movements in the window.
func (r *materialRepo) SumPurchasesBetween(salonID uuid.UUID, from, to time.Time) (int64, error) {
	var sum int64
	err := r.db.Model(&model.MaterialMovement{}).
		Where("salon_id = ? AND type = ? AND occurred_at >= ? AND occurred_at < ?",
			salonID, model.MovementIn, from, to).
		Select("COALESCE(SUM(total_cost_cents), 0)").
		Scan(&sum).Error
	return sum, err
}
