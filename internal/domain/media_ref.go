package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MediaRef represents a clip: a time range within an episode
type MediaRef struct {
	ID        string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	EpisodeID string    `gorm:"column:episode_id;type:char(36);index" json:"episodeId"`
	OwnerID   string    `gorm:"column:owner_id;type:char(36);index" json:"ownerId"`
	Title     string    `gorm:"column:title" json:"title"`
	StartTime int       `gorm:"column:start_time;default:0" json:"startTime"` // seconds
	EndTime   *int      `gorm:"column:end_time" json:"endTime,omitempty"`     // nil = until end of episode
	IsPublic  bool      `gorm:"column:is_public;default:false" json:"isPublic"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Episode *Episode `gorm:"foreignKey:EpisodeID;references:ID" json:"episode,omitempty"`
}

func (MediaRef) TableName() string {
	return "media_refs"
}

func (m *MediaRef) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// CreateMediaRefRequest is the clip creation payload
type CreateMediaRefRequest struct {
	EpisodeID string `json:"episodeId" binding:"required"`
	Title     string `json:"title"`
	StartTime int    `json:"startTime"`
	EndTime   *int   `json:"endTime"`
	IsPublic  bool   `json:"isPublic"`
}

// UpdateMediaRefRequest is the clip update payload; nil fields are untouched
type UpdateMediaRefRequest struct {
	Title     *string `json:"title"`
	StartTime *int    `json:"startTime"`
	EndTime   *int    `json:"endTime"`
	IsPublic  *bool   `json:"isPublic"`
}

// ChapterEntry is the chapters-file projection of a public clip,
// served by the /clips endpoint for players that consume chapter lists
type ChapterEntry struct {
	StartTime int    `json:"startTime"`
	EndTime   *int   `json:"endTime,omitempty"`
	Title     string `json:"title"`
}

// ChaptersFile is the chapters-file wrapper format
type ChaptersFile struct {
	Version  string         `json:"version"`
	Chapters []ChapterEntry `json:"chapters"`
}
