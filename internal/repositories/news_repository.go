package repositories

import (
	"context"

	"healthoffice_backend/internal/models"

	"gorm.io/gorm"
)

type NewsRepository interface {
	List(ctx context.Context) ([]models.News, error)
	FindByID(ctx context.Context, id string) (*models.News, error)
	Create(ctx context.Context, news *models.News) error
	Update(ctx context.Context, news *models.News) error
	Delete(ctx context.Context, id string) (bool, error)
}

type newsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

// List returns all news, newest first.
func (r *newsRepository) List(ctx context.Context) ([]models.News, error) {
	var news []models.News
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&news).Error
	return news, err
}

func (r *newsRepository) FindByID(ctx context.Context, id string) (*models.News, error) {
	var news models.News
	if err := r.db.WithContext(ctx).First(&news, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &news, nil
}

func (r *newsRepository) Create(ctx context.Context, news *models.News) error {
	return r.db.WithContext(ctx).Create(news).Error
}

func (r *newsRepository) Update(ctx context.Context, news *models.News) error {
	return r.db.WithContext(ctx).Save(news).Error
}

func (r *newsRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.News{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
