package repository

import (
	"marcenaria-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SalonRepository interface {
	Create(tx *gorm.DB, salon *model.Salon) error
	FindByID(id uuid.UUID) (*model.Salon, error)
	Update(salon *model.Salon) error
}

type salonRepo struct {
	db *gorm.DB
}

func NewSalonRepo(db *gorm.DB) SalonRepository {
	return &salonRepo{db}
}

func (r *salonRepo) Create(tx *gorm.DB, salon *model.Salon) error {
	return tx.Create(salon).Error
}

func (r *salonRepo) FindByID(id uuid.UUID) (*model.Salon, error) {
	var salon model.Salon
	err := r.db.First(&salon, "id = ?", id).Error
	return &salon, err
}

func (r *salonRepo) Update(salon *model.Salon) error {
	return r.db.Save(salon).Error
}
