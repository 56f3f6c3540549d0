package repository

import (
	"time"

	"marcenaria-api/internal/billing"
	"marcenaria-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InstallmentMonthTotals backs the receivables/payables month views.
type InstallmentMonthTotals struct {
	ExpectedCents int64 `json:"expectedCents"`
	SettledCents  int64 `json:"settledCents"`
}

type ReceivableRepository interface {
	Create(tx *gorm.DB, receivable *model.Receivable) error
	FindAll(salonID uuid.UUID) ([]model.Receivable, error)
	FindByID(salonID, id uuid.UUID) (*model.Receivable, error)
	FindInstallment(salonID, receivableID, installmentID uuid.UUID) (*model.ReceivableInstallment, error)
	Save(tx *gorm.DB, receivable *model.Receivable) error
	SaveInstallment(tx *gorm.DB, inst *model.ReceivableInstallment) error
	DeleteCascade(tx *gorm.DB, salonID, id uuid.UUID) error
	ListInstallmentsDue(salonID uuid.UUID, from, to time.Time) ([]model.ReceivableInstallment, error)
	MonthTotals(salonID uuid.UUID, from, to time.Time) (*InstallmentMonthTotals, error)
	SumPaidBetween(salonID uuid.UUID, from, to time.Time) (int64, error)
}

type receivableRepo struct {
	db *gorm.DB
}

func NewReceivableRepo(db *gorm.DB) ReceivableRepository {
	return &receivableRepo{db}
}

func (r *receivableRepo) Create(tx *gorm.DB, receivable *model.Receivable) error {
	return tx.Create(receivable).Error
}

func (r *receivableRepo) FindAll(salonID uuid.UUID) ([]model.Receivable, error) {
	var receivables []model.Receivable
	err := r.db.Preload("Client").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		Where("salon_id = ?", salonID).
		Order("created_at DESC").Find(&receivables).Error
	return receivables, err
}

func (r *receivableRepo) FindByID(salonID, id uuid.UUID) (*model.Receivable, error) {
	var receivable model.Receivable
	err := r.db.Preload("Client").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		First(&receivable, "salon_id = ? AND id = ?", salonID, id).Error
	return &receivable, err
}

// FindInstallment joins through the parent so the salon scope holds.
func (r *receivableRepo) FindInstallment(salonID, receivableID, installmentID uuid.UUID) (*model.ReceivableInstallment, error) {
	var inst model.ReceivableInstallment
	err := r.db.
		Joins("JOIN receivables ON receivables.id = receivable_installments.receivable_id").
		Where("receivables.salon_id = ? AND receivable_installments.receivable_id = ? AND receivable_installments.id = ?",
			salonID, receivableID, installmentID).
		First(&inst).Error
	return &inst, err
}

func (r *receivableRepo) Save(tx *gorm.DB, receivable *model.Receivable) error {
	return tx.Omit("Installments", "Client").Save(receivable).Error
}

func (r *receivableRepo) SaveInstallment(tx *gorm.DB, inst *model.ReceivableInstallment) error {
	return tx.Save(inst).Error
}

func (r *receivableRepo) DeleteCascade(tx *gorm.DB, salonID, id uuid.UUID) error {
	if err := tx.Delete(&model.ReceivableInstallment{}, "receivable_id = ?", id).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Receivable{}, "salon_id = ? AND id = ?", salonID, id).Error
}

func (r *receivableRepo) ListInstallmentsDue(salonID uuid.UUID, from, to time.Time) ([]model.ReceivableInstallment, error) {
	var insts []model.ReceivableInstallment
	err := r.db.
		Joins("JOIN receivables ON receivables.id = receivable_installments.receivable_id").
		Where("receivables.salon_id = ? AND receivable_installments.due_date >= ? AND receivable_installments.due_date < ?",
			salonID, from, to).
		Order("receivable_installments.due_date ASC").
		Find(&insts).Error
	return insts, err
}

// MonthTotals sums what is expected (due in the window) and what of it
// was actually settled.
func (r *receivableRepo) MonthTotals(salonID uuid.UUID, from, to time.Time) (*InstallmentMonthTotals, error) {
	var t InstallmentMonthTotals
	base := r.db.Model(&model.ReceivableInstallment{}).
		Joins("JOIN receivables ON receivables.id = receivable_installments.receivable_id").
		Where("receivables.salon_id = ? AND receivable_installments.due_date >= ? AND receivable_installments.due_date < ?",
			salonID, from, to)

	if err := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(receivable_installments.amount_cents), 0)").
		Scan(&t.ExpectedCents).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("receivable_installments.status = ?", billing.InstallmentPago).
		Select("COALESCE(SUM(receivable_installments.amount_cents), 0)").
		Scan(&t.SettledCents).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// SumPaidBetween totals installments settled in [from, to), by paid_at.
func (r *receivableRepo) SumPaidBetween(salonID uuid.UUID, from, to time.Time) (int64, error) {
	var sum int64
	err := r.db.Model(&model.ReceivableInstallment{}).
		Joins("JOIN receivables ON receivables.id = receivable_installments.receivable_id").
		Where("receivables.salon_id = ? AND receivable_installments.status = ? AND receivable_installments.paid_at >= ? AND receivable_installments.paid_at < ?",
			salonID, billing.InstallmentPago, from, to).
		Select("COALESCE(SUM(receivable_installments.amount_cents), 0)").
		Scan(&sum).Error
	return sum, err
}
