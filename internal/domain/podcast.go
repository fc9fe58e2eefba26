package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Podcast represents a podcast feed
type Podcast struct {
	ID          string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Title       string    `gorm:"column:title;index" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	FeedURL     string    `gorm:"column:feed_url;uniqueIndex;size:191" json:"feedUrl"`
	AuthorName  string    `gorm:"column:author_name;index" json:"authorName"`
	ImageURL    string    `gorm:"column:image_url" json:"imageUrl"`
	Category    string    `gorm:"column:category;index" json:"category"`
	IsExplicit  bool      `gorm:"column:is_explicit;default:false" json:"isExplicit"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Podcast) TableName() string {
	return "podcasts"
}

func (p *Podcast) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// CreatePodcastRequest is the podcast creation payload
type CreatePodcastRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	FeedURL     string `json:"feedUrl" binding:"required,url"`
	AuthorName  string `json:"authorName"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
	IsExplicit  bool   `json:"isExplicit"`
}

// UpdatePodcastRequest is the podcast update payload; nil fields are untouched
type UpdatePodcastRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	AuthorName  *string `json:"authorName"`
	ImageURL    *string `json:"imageUrl"`
	Category    *string `json:"category"`
	IsExplicit  *bool   `json:"isExplicit"`
}
