package repository

import (
	"marcenaria-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BudgetFilter struct {
	Status   model.BudgetStatus
	ClientID uuid.UUID
}

type BudgetRepository interface {
	Create(tx *gorm.DB, budget *model.Budget) error
	FindAll(salonID uuid.UUID, f BudgetFilter) ([]model.Budget, error)
	FindByID(salonID, id uuid.UUID) (*model.Budget, error)
	FindFull(salonID, id uuid.UUID) (*model.Budget, error)
	Save(tx *gorm.DB, budget *model.Budget) error
	ReplaceItems(tx *gorm.DB, budgetID uuid.UUID, items []model.BudgetItem) error
	ReplaceInstallments(tx *gorm.DB, budgetID uuid.UUID, installments []model.BudgetInstallment) error
	Approve(tx *gorm.DB, salonID, id uuid.UUID, update map[string]interface{}) (int64, error)
	DeleteCascade(tx *gorm.DB, salonID, id uuid.UUID) error
}

type budgetRepo struct {
	db *gorm.DB
}

func NewBudgetRepo(db *gorm.DB) BudgetRepository {
	return &budgetRepo{db}
}

func (r *budgetRepo) Create(tx *gorm.DB, budget *model.Budget) error {
	return tx.Create(budget).Error
}

func (r *budgetRepo) FindAll(salonID uuid.UUID, f BudgetFilter) ([]model.Budget, error) {
	var budgets []model.Budget
	q := r.db.Preload("Client").Where("salon_id = ?", salonID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ClientID != uuid.Nil {
		q = q.Where("client_id = ?", f.ClientID)
	}
	err := q.Order("created_at DESC").Find(&budgets).Error
	return budgets, err
}

func (r *budgetRepo) FindByID(salonID, id uuid.UUID) (*model.Budget, error) {
	var budget model.Budget
	err := r.db.Preload("Client").Preload("Items").
		First(&budget, "salon_id = ? AND id = ?", salonID, id).Error
	return &budget, err
}

// FindFull also loads the custom installment plan, ordered for display.
func (r *budgetRepo) FindFull(salonID, id uuid.UUID) (*model.Budget, error) {
	var budget model.Budget
	err := r.db.Preload("Client").Preload("Items").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		First(&budget, "salon_id = ? AND id = ?", salonID, id).Error
	return &budget, err
}

func (r *budgetRepo) Save(tx *gorm.DB, budget *model.Budget) error {
	return tx.Save(budget).Error
}

func (r *budgetRepo) ReplaceItems(tx *gorm.DB, budgetID uuid.UUID, items []model.BudgetItem) error {
	if err := tx.Delete(&model.BudgetItem{}, "budget_id = ?", budgetID).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func (r *budgetRepo) ReplaceInstallments(tx *gorm.DB, budgetID uuid.UUID, installments []model.BudgetInstallment) error {
	if err := tx.Delete(&model.BudgetInstallment{}, "budget_id = ?", budgetID).Error; err != nil {
		return err
	}
	if len(installments) == 0 {
		return nil
	}
	return tx.Create(&installments).Error
}

// Approve flips the budget to APROVADO only if it is not already in a
// terminal state. The conditional write is what makes double approval a
// detectable conflict: RowsAffected is 0 when another request won.
func (r *budgetRepo) Approve(tx *gorm.DB, salonID, id uuid.UUID, update map[string]interface{}) (int64, error) {
	res := tx.Model(&model.Budget{}).
		Where("salon_id = ? AND id = ? AND status NOT IN ?",
			salonID, id,
			[]model.BudgetStatus{model.BudgetAprovado, model.BudgetCancelado}).
		Updates(update)
	return res.RowsAffected, res.Error
}

func (r *budgetRepo) DeleteCascade(tx *gorm.DB, salonID, id uuid.UUID) error {
	if err := tx.Delete(&model.BudgetInstallment{}, "budget_id = ?", id).Error; err != nil {
		return err
	}
	if err := tx.Delete(&model.BudgetItem{}, "budget_id = ?", id).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Budget{}, "salon_id = ? AND id = ?", salonID, id).Error
}
