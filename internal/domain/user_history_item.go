package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserHistoryItem is a per-user playback progress marker. Each row points
// at exactly one episode OR one mediaRef (clip), never both; a user has at
// most one row per distinct content reference. OrderChangedDate drives the
// "continue listening" feed order and is independent of UpdatedAt.
type UserHistoryItem struct {
	ID                   string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	OwnerID              string    `gorm:"column:owner_id;type:char(36);index:idx_history_owner_order,priority:1" json:"ownerId"`
	EpisodeID            *string   `gorm:"column:episode_id;type:char(36);index" json:"episodeId,omitempty"`
	MediaRefID           *string   `gorm:"column:media_ref_id;type:char(36);index" json:"mediaRefId,omitempty"`
	LastPlaybackPosition int       `gorm:"column:last_playback_position;default:0" json:"lastPlaybackPosition"` // seconds
	OrderChangedDate     time.Time `gorm:"column:order_changed_date;index:idx_history_owner_order,priority:2" json:"orderChangedDate"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (UserHistoryItem) TableName() string {
	return "user_history_items"
}

func (h *UserHistoryItem) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

// AddHistoryItemRequest is the upsert-on-play payload. Exactly one of
// EpisodeID/MediaRefID must be set. LastPlaybackPosition is a pointer so
// that a legitimate position of 0 is distinguishable from a missing field.
type AddHistoryItemRequest struct {
	EpisodeID            *string `json:"episodeId"`
	MediaRefID           *string `json:"mediaRefId"`
	LastPlaybackPosition *int    `json:"lastPlaybackPosition" binding:"required"`
	ForceUpdateOrderDate bool    `json:"forceUpdateOrderDate"`
}

// HistoryItemResponse is the joined display projection for the history
// feed. Clip-backed rows carry mediaRef fields and no playback position
// (position lives on the clip itself); episode-backed rows carry the
// position and no mediaRef fields.
type HistoryItemResponse struct {
	ID                   string  `json:"id"`
	LastPlaybackPosition *int    `json:"lastPlaybackPosition,omitempty"`
	MediaRefID           *string `json:"mediaRefId,omitempty"`
	MediaRefTitle        *string `json:"mediaRefTitle,omitempty"`
	EpisodeID            string  `json:"episodeId"`
	EpisodeTitle         string  `json:"episodeTitle"`
	EpisodeDescription   string  `json:"episodeDescription"`
	PodcastID            string  `json:"podcastId"`
	PodcastTitle         string  `json:"podcastTitle"`
}

// HistoryItemMetadata is the lightweight projection used by clients that
// only need to know which content has history
type HistoryItemMetadata struct {
	LastPlaybackPosition int     `json:"lastPlaybackPosition"`
	MediaRefID           *string `json:"mediaRefId,omitempty"`
	EpisodeID            *string `json:"episodeId,omitempty"`
}
