package migration

import (
	"github.com/podhaven/podhaven-backend/internal/domain"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for all tables and seeds the catalog if empty.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Podcast{},
		&domain.Episode{},
		&domain.MediaRef{},
		&domain.UserHistoryItem{},
		&domain.PaymentOrder{},
	); err != nil {
		return err
	}

	var count int64
	db.Model(&domain.Podcast{}).Count(&count)
	if count == 0 {
		return seedCatalog(db)
	}

	return nil
}

// seedCatalog inserts a small starter catalog so a fresh install has
// something to browse
func seedCatalog(db *gorm.DB) error {
	podcasts := []domain.Podcast{
		{
			Title:       "The Daily Signal",
			Description: "Short daily news briefings.",
			FeedURL:     "https://feeds.podhaven.fm/daily-signal/rss.xml",
			AuthorName:  "Podhaven Editorial",
			Category:    "News",
		},
		{
			Title:       "Deep Dive Engineering",
			Description: "Long-form conversations about building software.",
			FeedURL:     "https://feeds.podhaven.fm/deep-dive/rss.xml",
			AuthorName:  "Podhaven Editorial",
			Category:    "Technology",
		},
	}

	for i := range podcasts {
		if err := db.Create(&podcasts[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
