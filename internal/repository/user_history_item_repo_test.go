package repository

import (
	"testing"
	"time"

	"github.com/podhaven/podhaven-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupHistoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Podcast{},
		&domain.Episode{},
		&domain.MediaRef{},
		&domain.UserHistoryItem{},
	))
	return db
}

// seedCatalog inserts a podcast with two episodes and a clip on the second
func seedHistoryCatalog(t *testing.T, db *gorm.DB) (podcast domain.Podcast, ep1, ep2 domain.Episode, clip domain.MediaRef) {
	t.Helper()

	podcast = domain.Podcast{Title: "The Show", FeedURL: "https://feeds.example.com/show.xml"}
	require.NoError(t, db.Create(&podcast).Error)

	ep1 = domain.Episode{PodcastID: podcast.ID, Title: "Episode One", Description: "First", MediaURL: "https://media.example.com/1.mp3"}
	ep2 = domain.Episode{PodcastID: podcast.ID, Title: "Episode Two", Description: "Second", MediaURL: "https://media.example.com/2.mp3"}
	require.NoError(t, db.Create(&ep1).Error)
	require.NoError(t, db.Create(&ep2).Error)

	clip = domain.MediaRef{EpisodeID: ep2.ID, OwnerID: "someone", Title: "Best part", StartTime: 30, IsPublic: true}
	require.NoError(t, db.Create(&clip).Error)
	return
}

func TestFindByOwnerAndEpisode_IgnoresClipBackedItems(t *testing.T) {
	db := setupHistoryTestDB(t)
	repo := NewUserHistoryItemRepository(db)
	_, _, ep2, clip := seedHistoryCatalog(t, db)

	// A clip-backed item referencing ep2 must not satisfy the episode lookup
	clipItem := domain.UserHistoryItem{
		OwnerID:          "owner-1",
		EpisodeID:        &ep2.ID,
		MediaRefID:       &clip.ID,
		OrderChangedDate: time.Now(),
	}
	require.NoError(t, repo.Save(&clipItem))

	found, err := repo.FindByOwnerAndEpisode("owner-1", ep2.ID)
	assert.NoError(t, err)
	assert.Nil(t, found)

	// The clip lookup resolves it
	found, err = repo.FindByOwnerAndMediaRef("owner-1", clip.ID)
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, clipItem.ID, found.ID)
}

func TestFindByOwnerAndEpisode_ScopedToOwner(t *testing.T) {
	db := setupHistoryTestDB(t)
	repo := NewUserHistoryItemRepository(db)
	_, ep1, _, _ := seedHistoryCatalog(t, db)

	item := domain.UserHistoryItem{OwnerID: "owner-1", EpisodeID: &ep1.ID, OrderChangedDate: time.Now()}
	require.NoError(t, repo.Save(&item))

	found, err := repo.FindByOwnerAndEpisode("owner-2", ep1.ID)
	assert.NoError(t, err)
	assert.Nil(t, found)

	found, err = repo.FindByOwnerAndEpisode("owner-1", ep1.ID)
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, item.ID, found.ID)
}

func TestSave_AssignsIDOnInsertAndUpdatesInPlace(t *testing.T) {
	db := setupHistoryTestDB(t)
	repo := NewUserHistoryItemRepository(db)
	_, ep1, _, _ := seedHistoryCatalog(t, db)

	item := domain.UserHistoryItem{
		OwnerID:              "owner-1",
		EpisodeID:            &ep1.ID,
		LastPlaybackPosition: 10,
		OrderChangedDate:     time.Now(),
	}
	require.NoError(t, repo.Save(&item))
	assert.NotEmpty(t, item.ID)

	item.LastPlaybackPosition = 200
	require.NoError(t, repo.Save(&item))

	var count int64
	db.Model(&domain.UserHistoryItem{}).Where("owner_id = ?", "owner-1").Count(&count)
	assert.Equal(t, int64(1), count)

	found, err := repo.FindByOwnerAndEpisode("owner-1", ep1.ID)
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 200, found.LastPlaybackPosition)
}

func TestListByOwner_JoinsAndOrdersByRecency(t *testing.T) {
	db := setupHistoryTestDB(t)
	repo := NewUserHistoryItemRepository(db)
	podcast, ep1, _, clip := seedHistoryCatalog(t, db)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	older := domain.UserHistoryItem{
		OwnerID:              "owner-1",
		EpisodeID:            &ep1.ID,
		LastPlaybackPosition: 45,
		OrderChangedDate:     base,
	}
	require.NoError(t, repo.Save(&older))

	clipEpisodeID := clip.EpisodeID
	newer := domain.UserHistoryItem{
		OwnerID:              "owner-1",
		EpisodeID:            &clipEpisodeID,
		MediaRefID:           &clip.ID,
		LastPlaybackPosition: 120,
		OrderChangedDate:     base.Add(time.Hour),
	}
	require.NoError(t, repo.Save(&newer))

	// Another owner's record never shows
	other := domain.UserHistoryItem{OwnerID: "owner-2", EpisodeID: &ep1.ID, OrderChangedDate: base.Add(2 * time.Hour)}
	require.NoError(t, repo.Save(&other))

	rows, err := repo.ListByOwner("owner-1", 0, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Most recent first: the clip-backed item
	assert.Equal(t, newer.ID, rows[0].ID)
	require.NotNil(t, rows[0].ClipID)
	assert.Equal(t, clip.ID, *rows[0].ClipID)
	assert.Equal(t, "Best part", *rows[0].ClipTitle)
	assert.Equal(t, "Episode Two", *rows[0].ClipEpisodeTitle)
	assert.Equal(t, podcast.ID, *rows[0].ClipPodcastID)

	assert.Equal(t, older.ID, rows[1].ID)
	assert.Nil(t, rows[1].ClipID)
	assert.Equal(t, "Episode One", *rows[1].EpisodeTitle)
	assert.Equal(t, podcast.Title, *rows[1].PodcastTitle)
	assert.Equal(t, 45, rows[1].LastPlaybackPosition)
}

func TestListByOwner_Pagination(t *testing.T) {
	db := setupHistoryTestDB(t)
	repo := NewUserHistoryItemRepository(db)
	_, ep1, ep2, _ := seedHistoryCatalog(t, db)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	first := domain.UserHistoryItem{OwnerID: "owner-1", EpisodeID: &ep1.ID, OrderChangedDate: base.Add(time.Hour)}
	second := domain.UserHistoryItem{OwnerID: "owner-1", EpisodeID: &ep2.ID, OrderChangedDate: base}
	require.NoError(t, repo.Save(&first))
	require.NoError(t, repo.Save(&second))

	rows, err := repo.ListByOwner("owner-1", 1, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, second.ID, rows[0].ID)
}

func TestListMetadataByOwner(t *testing.T) {
	db := setupHistoryTestDB(t)
	repo := NewUserHistoryItemRepository(db)
	_, ep1, _, clip := seedHistoryCatalog(t, db)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	epItem := domain.UserHistoryItem{OwnerID: "owner-1", EpisodeID: &ep1.ID, LastPlaybackPosition: 30, OrderChangedDate: base}
	clipItem := domain.UserHistoryItem{OwnerID: "owner-1", MediaRefID: &clip.ID, LastPlaybackPosition: 12, OrderChangedDate: base.Add(time.Minute)}
	require.NoError(t, repo.Save(&epItem))
	require.NoError(t, repo.Save(&clipItem))

	items, err := repo.ListMetadataByOwner("owner-1")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, 12, items[0].LastPlaybackPosition)
	require.NotNil(t, items[0].MediaRefID)
	assert.Equal(t, clip.ID, *items[0].MediaRefID)

	assert.Equal(t, 30, items[1].LastPlaybackPosition)
	require.NotNil(t, items[1].EpisodeID)
	assert.Equal(t, ep1.ID, *items[1].EpisodeID)
}

func TestDeleteAllByOwner(t *testing.T) {
	db := setupHistoryTestDB(t)
	repo := NewUserHistoryItemRepository(db)
	_, ep1, ep2, _ := seedHistoryCatalog(t, db)

	require.NoError(t, repo.Save(&domain.UserHistoryItem{OwnerID: "owner-1", EpisodeID: &ep1.ID, OrderChangedDate: time.Now()}))
	require.NoError(t, repo.Save(&domain.UserHistoryItem{OwnerID: "owner-1", EpisodeID: &ep2.ID, OrderChangedDate: time.Now()}))
	require.NoError(t, repo.Save(&domain.UserHistoryItem{OwnerID: "owner-2", EpisodeID: &ep1.ID, OrderChangedDate: time.Now()}))

	affected, err := repo.DeleteAllByOwner("owner-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	// Empty ledger deletes are vacuous
	affected, err = repo.DeleteAllByOwner("owner-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	// The other owner's ledger is untouched
	rows, err := repo.ListByOwner("owner-2", 0, 10)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestDeleteByID(t *testing.T) {
	db := setupHistoryTestDB(t)
	repo := NewUserHistoryItemRepository(db)
	_, ep1, _, _ := seedHistoryCatalog(t, db)

	item := domain.UserHistoryItem{OwnerID: "owner-1", EpisodeID: &ep1.ID, OrderChangedDate: time.Now()}
	require.NoError(t, repo.Save(&item))

	require.NoError(t, repo.DeleteByID(item.ID))

	found, err := repo.FindByOwnerAndEpisode("owner-1", ep1.ID)
	assert.NoError(t, err)
	assert.Nil(t, found)
}
