package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Episode represents one item of a podcast feed
type Episode struct {
	ID          string     `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	PodcastID   string     `gorm:"column:podcast_id;type:char(36);index" json:"podcastId"`
	Title       string     `gorm:"column:title;index" json:"title"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	MediaURL    string     `gorm:"column:media_url;size:191;index" json:"mediaUrl"`
	Duration    int        `gorm:"column:duration;default:0" json:"duration"` // seconds
	PubDate     *time.Time `gorm:"column:pub_date;index" json:"pubDate,omitempty"`
	IsExplicit  bool       `gorm:"column:is_explicit;default:false" json:"isExplicit"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Podcast *Podcast `gorm:"foreignKey:PodcastID;references:ID" json:"podcast,omitempty"`
}

func (Episode) TableName() string {
	return "episodes"
}

func (e *Episode) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// EpisodeDocument is the Elasticsearch projection of an episode
type EpisodeDocument struct {
	Title     string `json:"title"`
	PodcastID string `json:"podcast_id"`
}

// CreateEpisodeRequest is the episode creation payload
type CreateEpisodeRequest struct {
	PodcastID   string     `json:"podcastId" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	MediaURL    string     `json:"mediaUrl" binding:"required,url"`
	Duration    int        `json:"duration"`
	PubDate     *time.Time `json:"pubDate"`
	IsExplicit  bool       `json:"isExplicit"`
}

// UpdateEpisodeRequest is the episode update payload; nil fields are untouched
type UpdateEpisodeRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	MediaURL    *string    `json:"mediaUrl"`
	Duration    *int       `json:"duration"`
	PubDate     *time.Time `json:"pubDate"`
	IsExplicit  *bool      `json:"isExplicit"`
}

// EpisodeListQuery holds episode list/search filters
type EpisodeListQuery struct {
	PodcastID   string
	SearchTitle string
	Page        int
	Limit       int
}
