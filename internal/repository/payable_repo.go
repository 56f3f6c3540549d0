package repository

import (
	"time"

	"marcenaria-api/internal/billing"
	"marcenaria-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PayableRepository interface {
	Create(tx *gorm.DB, payable *model.Payable) error
	FindAll(salonID uuid.UUID) ([]model.Payable, error)
	FindByID(salonID, id uuid.UUID) (*model.Payable, error)
	FindInstallment(salonID, payableID, installmentID uuid.UUID) (*model.PayableInstallment, error)
	Save(tx *gorm.DB, payable *model.Payable) error
	SaveInstallment(tx *gorm.DB, inst *model.PayableInstallment) error
	RecomputeTotal(tx *gorm.DB, payableID uuid.UUID) error
	DeleteCascade(tx *gorm.DB, salonID, id uuid.UUID) error
	ListInstallmentsDue(salonID uuid.UUID, from, to time.Time) ([]model.PayableInstallment, error)
	MonthTotals(salonID uuid.UUID, from, to time.Time) (*InstallmentMonthTotals, error)
	SumPaidBetween(salonID uuid.UUID, from, to time.Time) (int64, error)
}

type payableRepo struct {
	db *gorm.DB
}

func NewPayableRepo(db *gorm.DB) PayableRepository {
	return &payableRepo{db}
}

func (r *payableRepo) Create(tx *gorm.DB, payable *model.Payable) error {
	return tx.Create(payable).Error
}

func (r *payableRepo) FindAll(salonID uuid.UUID) ([]model.Payable, error) {
	var payables []model.Payable
	err := r.db.Preload("Supplier").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		Where("salon_id = ?", salonID).
		Order("created_at DESC").Find(&payables).Error
	return payables, err
}

func (r *payableRepo) FindByID(salonID, id uuid.UUID) (*model.Payable, error) {
	var payable model.Payable
	err := r.db.Preload("Supplier").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		First(&payable, "salon_id = ? AND id = ?", salonID, id).Error
	return &payable, err
}

func (r *payableRepo) FindInstallment(salonID, payableID, installmentID uuid.UUID) (*model.PayableInstallment, error) {
	var inst model.PayableInstallment
	err := r.db.
		Joins("JOIN payables ON payables.id = payable_installments.payable_id").
		Where("payables.salon_id = ? AND payable_installments.payable_id = ? AND payable_installments.id = ?",
			salonID, payableID, installmentID).
		First(&inst).Error
	return &inst, err
}

func (r *payableRepo) Save(tx *gorm.DB, payable *model.Payable) error {
	return tx.Omit("Installments", "Supplier").Save(payable).Error
}

func (r *payableRepo) SaveInstallment(tx *gorm.DB, inst *model.PayableInstallment) error {
	return tx.Save(inst).Error
}

// RecomputeTotal resyncs the parent total with the sum of its
// installments after an amount edit.
func (r *payableRepo) RecomputeTotal(tx *gorm.DB, payableID uuid.UUID) error {
	return tx.Model(&model.Payable{}).
		Where("id = ?", payableID).
		Update("total_cents", tx.Model(&model.PayableInstallment{}).
			Where("payable_id = ?", payableID).
			Select("COALESCE(SUM(amount_cents), 0)")).Error
}

func (r *payableRepo) DeleteCascade(tx *gorm.DB, salonID, id uuid.UUID) error {
	if err := tx.Delete(&model.PayableInstallment{}, "payable_id = ?", id).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Payable{}, "salon_id = ? AND id = ?", salonID, id).Error
}

func (r *payableRepo) ListInstallmentsDue(salonID uuid.UUID, from, to time.Time) ([]model.PayableInstallment, error) {
	var insts []model.PayableInstallment
	err := r.db.
		Joins("JOIN payables ON payables.id = payable_installments.payable_id").
		Where("payables.salon_id = ? AND payable_installments.due_date >= ? AND payable_installments.due_date < ?",
			salonID, from, to).
		Order("payable_installments.due_date ASC").
		Find(&insts).Error
	return insts, err
}

func (r *payableRepo) MonthTotals(salonID uuid.UUID, from, to time.Time) (*InstallmentMonthTotals, error) {
	var t InstallmentMonthTotals
	base := r.db.Model(&model.PayableInstallment{}).
		Joins("JOIN payables ON payables.id = payable_installments.payable_id").
		Where("payables.salon_id = ? AND payable_installments.due_date >= ? AND payable_installments.due_date < ?",
			salonID, from, to)

	if err := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(payable_installments.amount_cents), 0)").
		Scan(&t.ExpectedCents).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("payable_installments.status = ?", billing.InstallmentPago).
		Select("COALESCE(SUM(payable_installments.amount_cents), 0)").
		Scan(&t.SettledCents).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *payableRepo) SumPaidBetween(salonID uuid.UUID, from, to time.Time) (int64, error) {
	var sum int64
	err := r.db.Model(&model.PayableInstallment{}).
		Joins("JOIN payables ON payables.id = payable_installments.payable_id").
		Where("payables.salon_id = ? AND payable_installments.status = ? AND payable_installments.paid_at >= ? AND payable_installments.paid_at < ?",
			salonID, billing.InstallmentPago, from, to).
		Select("COALESCE(SUM(payable_installments.amount_cents), 0)").
		Scan(&sum).Error
	return sum, err
}
