package repository

import (
	"errors"

	"github.com/podhaven/podhaven-backend/internal/common"
	"github.com/podhaven/podhaven-backend/internal/domain"
	"gorm.io/gorm"
)

// EpisodeRepository episode data access interface
type EpisodeRepository interface {
	Create(episode *domain.Episode) error
	FindByID(id string) (*domain.Episode, error)
	FindByIDs(ids []string) ([]domain.Episode, error)
	FindByMediaURL(mediaURL string) (*domain.Episode, error)
	List(query domain.EpisodeListQuery) ([]domain.Episode, int64, error)
	Update(episode *domain.Episode) error
	Delete(id string) error
}

type episodeRepository struct {
	db *gorm.DB
}

// NewEpisodeRepository creates a new EpisodeRepository
func NewEpisodeRepository(db *gorm.DB) EpisodeRepository {
	return &episodeRepository{db: db}
}

func (r *episodeRepository) Create(episode *domain.Episode) error {
	return r.db.Create(episode).Error
}

func (r *episodeRepository) FindByID(id string) (*domain.Episode, error) {
	var episode domain.Episode
	err := r.db.Preload("Podcast").Where("id = ?", id).First(&episode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrEpisodeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &episode, nil
}

// FindByIDs returns episodes matching the ids, podcast preloaded.
// Order follows the database, not the input slice.
func (r *episodeRepository) FindByIDs(ids []string) ([]domain.Episode, error) {
	var episodes []domain.Episode
	if len(ids) == 0 {
		return episodes, nil
	}
	err := r.db.Preload("Podcast").Where("id IN ?", ids).Find(&episodes).Error
	return episodes, err
}

func (r *episodeRepository) FindByMediaURL(mediaURL string) (*domain.Episode, error) {
	var episode domain.Episode
	err := r.db.Where("media_url = ?", mediaURL).First(&episode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrEpisodeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &episode, nil
}

// List returns episodes filtered by podcast and/or title, newest first
func (r *episodeRepository) List(query domain.EpisodeListQuery) ([]domain.Episode, int64, error) {
	var episodes []domain.Episode
	var total int64

	q := r.db.Model(&domain.Episode{})
	if query.PodcastID != "" {
		q = q.Where("podcast_id = ?", query.PodcastID)
	}
	if query.SearchTitle != "" {
		q = q.Where("title LIKE ?", "%"+query.SearchTitle+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := q.Order("pub_date DESC").
		Offset(offset).Limit(query.Limit).
		Find(&episodes).Error
	return episodes, total, err
}

func (r *episodeRepository) Update(episode *domain.Episode) error {
	return r.db.Save(episode).Error
}

func (r *episodeRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.Episode{}).Error
}
