package repository

import (
	"errors"

	"github.com/podhaven/podhaven-backend/internal/common"
	"github.com/podhaven/podhaven-backend/internal/domain"
	"gorm.io/gorm"
)

// MediaRefRepository clip data access interface
type MediaRefRepository interface {
	Create(mediaRef *domain.MediaRef) error
	FindByID(id string) (*domain.MediaRef, error)
	ListByEpisode(episodeID string, publicOnly bool, page, limit int) ([]domain.MediaRef, int64, error)
	ListPublicByEpisodeMediaURL(mediaURL string) ([]domain.MediaRef, error)
	Update(mediaRef *domain.MediaRef) error
	Delete(id string) error
}

type mediaRefRepository struct {
	db *gorm.DB
}

// NewMediaRefRepository creates a new MediaRefRepository
func NewMediaRefRepository(db *gorm.DB) MediaRefRepository {
	return &mediaRefRepository{db: db}
}

func (r *mediaRefRepository) Create(mediaRef *domain.MediaRef) error {
	return r.db.Create(mediaRef).Error
}

func (r *mediaRefRepository) FindByID(id string) (*domain.MediaRef, error) {
	var mediaRef domain.MediaRef
	err := r.db.Preload("Episode").Where("id = ?", id).First(&mediaRef).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrMediaRefNotFound
	}
	if err != nil {
		return nil, err
	}
	return &mediaRef, nil
}

// ListByEpisode returns an episode's clips, earliest start time first
func (r *mediaRefRepository) ListByEpisode(episodeID string, publicOnly bool, page, limit int) ([]domain.MediaRef, int64, error) {
	var mediaRefs []domain.MediaRef
	var total int64

	query := r.db.Model(&domain.MediaRef{}).Where("episode_id = ?", episodeID)
	if publicOnly {
		query = query.Where("is_public = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("start_time ASC").
		Offset(offset).Limit(limit).
		Find(&mediaRefs).Error
	return mediaRefs, total, err
}

// ListPublicByEpisodeMediaURL returns public clips for the episode with the
// given media URL, used by the chapters endpoint
func (r *mediaRefRepository) ListPublicByEpisodeMediaURL(mediaURL string) ([]domain.MediaRef, error) {
	var mediaRefs []domain.MediaRef
	err := r.db.
		Joins("JOIN episodes ON episodes.id = media_refs.episode_id").
		Where("episodes.media_url = ? AND media_refs.is_public = ?", mediaURL, true).
		Order("media_refs.start_time ASC").
		Find(&mediaRefs).Error
	return mediaRefs, err
}

func (r *mediaRefRepository) Update(mediaRef *domain.MediaRef) error {
	return r.db.Save(mediaRef).Error
}

func (r *mediaRefRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.MediaRef{}).Error
}
