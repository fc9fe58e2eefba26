package repository

import (
	"errors"

	"github.com/podhaven/podhaven-backend/internal/common"
	"github.com/podhaven/podhaven-backend/internal/domain"
	"gorm.io/gorm"
)

// PodcastRepository podcast data access interface
type PodcastRepository interface {
	Create(podcast *domain.Podcast) error
	FindByID(id string) (*domain.Podcast, error)
	List(category, searchTitle string, page, limit int) ([]domain.Podcast, int64, error)
	Update(podcast *domain.Podcast) error
	Delete(id string) error
}

type podcastRepository struct {
	db *gorm.DB
}

// NewPodcastRepository creates a new PodcastRepository
func NewPodcastRepository(db *gorm.DB) PodcastRepository {
	return &podcastRepository{db: db}
}

func (r *podcastRepository) Create(podcast *domain.Podcast) error {
	return r.db.Create(podcast).Error
}

func (r *podcastRepository) FindByID(id string) (*domain.Podcast, error) {
	var podcast domain.Podcast
	err := r.db.Where("id = ?", id).First(&podcast).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrPodcastNotFound
	}
	if err != nil {
		return nil, err
	}
	return &podcast, nil
}

// List returns podcasts filtered by category and/or title with pagination
func (r *podcastRepository) List(category, searchTitle string, page, limit int) ([]domain.Podcast, int64, error) {
	var podcasts []domain.Podcast
	var total int64

	query := r.db.Model(&domain.Podcast{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if searchTitle != "" {
		query = query.Where("title LIKE ?", "%"+searchTitle+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("title ASC").
		Offset(offset).Limit(limit).
		Find(&podcasts).Error
	return podcasts, total, err
}

func (r *podcastRepository) Update(podcast *domain.Podcast) error {
	return r.db.Save(podcast).Error
}

func (r *podcastRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.Podcast{}).Error
}
