package repositories

import (
	"context"

	"healthoffice_backend/internal/models"

	"gorm.io/gorm"
)

type LinkRepository interface {
	List(ctx context.Context) ([]models.Link, error)
	FindByID(ctx context.Context, id string) (*models.Link, error)
	Create(ctx context.Context, link *models.Link) error
	Update(ctx context.Context, link *models.Link) error
	Delete(ctx context.Context, id string) (bool, error)
}

type linkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &linkRepository{db: db}
}

func (r *linkRepository) List(ctx context.Context) ([]models.Link, error) {
	var links []models.Link
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&links).Error
	return links, err
}

func (r *linkRepository) FindByID(ctx context.Context, id string) (*models.Link, error) {
	var link models.Link
	if err := r.db.WithContext(ctx).First(&link, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *linkRepository) Create(ctx context.Context, link *models.Link) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *linkRepository) Update(ctx context.Context, link *models.Link) error {
	return r.db.WithContext(ctx).Save(link).Error
}

func (r *linkRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Link{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
