package repositories

import (
	"context"

	"healthoffice_backend/internal/models"

	"gorm.io/gorm"
)

type ItaRepository interface {
	List(ctx context.Context) ([]models.Ita, error)
	FindByID(ctx context.Context, id string) (*models.Ita, error)
	Create(ctx context.Context, ita *models.Ita) error
	Update(ctx context.Context, ita *models.Ita) error
	Delete(ctx context.Context, id string) (bool, error)
}

type itaRepository struct {
	db *gorm.DB
}

func NewItaRepository(db *gorm.DB) ItaRepository {
	return &itaRepository{db: db}
}

// List returns disclosures in canonical order: year descending, then
// MOIT topic ascending.
func (r *itaRepository) List(ctx context.Context) ([]models.Ita, error) {
	var list []models.Ita
	err := r.db.WithContext(ctx).Order("year DESC").Order("moit ASC").Find(&list).Error
	return list, err
}

func (r *itaRepository) FindByID(ctx context.Context, id string) (*models.Ita, error) {
	var ita models.Ita
	if err := r.db.WithContext(ctx).First(&ita, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ita, nil
}

func (r *itaRepository) Create(ctx context.Context, ita *models.Ita) error {
	return r.db.WithContext(ctx).Create(ita).Error
}

func (r *itaRepository) Update(ctx context.Context, ita *models.Ita) error {
	return r.db.WithContext(ctx).Save(ita).Error
}

func (r *itaRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Ita{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
