package repository

import (
	"errors"
	"time"

	"github.com/podhaven/podhaven-backend/internal/domain"
	"gorm.io/gorm"
)

// HistoryItemRow is the flat scan target of the joined history listing.
// Clip-backed rows populate the clip_* columns through the mediaRef's
// parent episode; episode-backed rows populate the episode_* columns.
type HistoryItemRow struct {
	ID                     string    `gorm:"column:id"`
	LastPlaybackPosition   int       `gorm:"column:last_playback_position"`
	OrderChangedDate       time.Time `gorm:"column:order_changed_date"`
	ClipID                 *string   `gorm:"column:clip_id"`
	ClipTitle              *string   `gorm:"column:clip_title"`
	EpisodeID              *string   `gorm:"column:episode_id"`
	EpisodeTitle           *string   `gorm:"column:episode_title"`
	EpisodeDescription     *string   `gorm:"column:episode_description"`
	PodcastID              *string   `gorm:"column:podcast_id"`
	PodcastTitle           *string   `gorm:"column:podcast_title"`
	ClipEpisodeID          *string   `gorm:"column:clip_episode_id"`
	ClipEpisodeTitle       *string   `gorm:"column:clip_episode_title"`
	ClipEpisodeDescription *string   `gorm:"column:clip_episode_description"`
	ClipPodcastID          *string   `gorm:"column:clip_podcast_id"`
	ClipPodcastTitle       *string   `gorm:"column:clip_podcast_title"`
}

// UserHistoryItemRepository playback-history data access interface.
// Lookups are always owner-scoped; callers never address rows by a
// client-supplied record id.
type UserHistoryItemRepository interface {
	// FindByOwnerAndMediaRef returns the owner's history item for a clip,
	// or nil when none exists.
	FindByOwnerAndMediaRef(ownerID, mediaRefID string) (*domain.UserHistoryItem, error)
	// FindByOwnerAndEpisode returns the owner's episode-backed history
	// item, or nil when none exists. Clip-backed items referencing the
	// same episode do not match.
	FindByOwnerAndEpisode(ownerID, episodeID string) (*domain.UserHistoryItem, error)
	ListByOwner(ownerID string, skip, take int) ([]HistoryItemRow, error)
	ListMetadataByOwner(ownerID string) ([]domain.HistoryItemMetadata, error)
	Save(item *domain.UserHistoryItem) error
	DeleteByID(id string) error
	DeleteAllByOwner(ownerID string) (int64, error)
}

type userHistoryItemRepository struct {
	db *gorm.DB
}

// NewUserHistoryItemRepository creates a new UserHistoryItemRepository
func NewUserHistoryItemRepository(db *gorm.DB) UserHistoryItemRepository {
	return &userHistoryItemRepository{db: db}
}

func (r *userHistoryItemRepository) FindByOwnerAndMediaRef(ownerID, mediaRefID string) (*domain.UserHistoryItem, error) {
	var item domain.UserHistoryItem
	err := r.db.
		Where("owner_id = ? AND media_ref_id = ?", ownerID, mediaRefID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *userHistoryItemRepository) FindByOwnerAndEpisode(ownerID, episodeID string) (*domain.UserHistoryItem, error) {
	var item domain.UserHistoryItem
	err := r.db.
		Where("owner_id = ? AND episode_id = ? AND media_ref_id IS NULL", ownerID, episodeID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByOwner returns the owner's history page with display metadata
// joined in, newest order_changed_date first.
func (r *userHistoryItemRepository) ListByOwner(ownerID string, skip, take int) ([]HistoryItemRow, error) {
	var rows []HistoryItemRow
	err := r.db.Table("user_history_items AS h").
		Select(`h.id, h.last_playback_position, h.order_changed_date,
			mr.id AS clip_id, mr.title AS clip_title,
			e.id AS episode_id, e.title AS episode_title, e.description AS episode_description,
			p.id AS podcast_id, p.title AS podcast_title,
			ce.id AS clip_episode_id, ce.title AS clip_episode_title, ce.description AS clip_episode_description,
			cp.id AS clip_podcast_id, cp.title AS clip_podcast_title`).
		Joins("LEFT JOIN episodes e ON e.id = h.episode_id").
		Joins("LEFT JOIN podcasts p ON p.id = e.podcast_id").
		Joins("LEFT JOIN media_refs mr ON mr.id = h.media_ref_id").
		Joins("LEFT JOIN episodes ce ON ce.id = mr.episode_id").
		Joins("LEFT JOIN podcasts cp ON cp.id = ce.podcast_id").
		Where("h.owner_id = ?", ownerID).
		Order("h.order_changed_date DESC").
		Offset(skip).Limit(take).
		Scan(&rows).Error
	return rows, err
}

func (r *userHistoryItemRepository) ListMetadataByOwner(ownerID string) ([]domain.HistoryItemMetadata, error) {
	var items []domain.HistoryItemMetadata
	err := r.db.Model(&domain.UserHistoryItem{}).
		Select("last_playback_position, media_ref_id, episode_id").
		Where("owner_id = ?", ownerID).
		Order("order_changed_date DESC").
		Scan(&items).Error
	return items, err
}

// Save inserts or updates by primary-key presence
func (r *userHistoryItemRepository) Save(item *domain.UserHistoryItem) error {
	return r.db.Save(item).Error
}

func (r *userHistoryItemRepository) DeleteByID(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.UserHistoryItem{}).Error
}

func (r *userHistoryItemRepository) DeleteAllByOwner(ownerID string) (int64, error) {
	result := r.db.Where("owner_id = ?", ownerID).Delete(&domain.UserHistoryItem{})
	return result.RowsAffected, result.Error
}
