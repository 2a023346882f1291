package repository

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"telegram-report-bot/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Link{}, &models.Message{}))
	return New(db)
}

func newLink(userID int64, url string) *models.Link {
	return &models.Link{
		UserID:     userID,
		Platform:   models.PlatformYouTube,
		URL:        url,
		ReceivedAt: time.Now(),
	}
}

func TestSaveLinkDeduplicates(t *testing.T) {
	store := newTestStore(t)

	created, err := store.SaveLink(newLink(42, "https://youtu.be/abc"))
	require.NoError(t, err)
	assert.True(t, created)

	// Same URL from a different user: uniqueness is global.
	created, err = store.SaveLink(newLink(7, "https://youtu.be/abc"))
	require.NoError(t, err)
	assert.False(t, created)

	links, err := store.Links(false)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, int64(42), links[0].UserID)
}

func TestUnexportedLinksOrdering(t *testing.T) {
	store := newTestStore(t)

	for _, url := range []string{"https://a.com/1", "https://a.com/2", "https://a.com/3"} {
		_, err := store.SaveLink(newLink(1, url))
		require.NoError(t, err)
	}

	links, err := store.UnexportedLinks()
	require.NoError(t, err)
	require.Len(t, links, 3)
	assert.True(t, links[0].ID < links[1].ID && links[1].ID < links[2].ID)
	assert.Equal(t, "https://a.com/1", links[0].URL)
}

func TestMarkExported(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SaveLink(newLink(1, "https://a.com/1"))
	require.NoError(t, err)
	require.NoError(t, store.SaveMessage(&models.Message{UserID: 1, Text: "hi", ReceivedAt: time.Now()}))

	links, err := store.UnexportedLinks()
	require.NoError(t, err)
	msgs, err := store.UnexportedMessages()
	require.NoError(t, err)

	err = store.MarkExported([]uint{links[0].ID}, []uint{msgs[0].ID}, "2026-08-30")
	require.NoError(t, err)

	links, err = store.UnexportedLinks()
	require.NoError(t, err)
	assert.Empty(t, links)
	msgs, err = store.UnexportedMessages()
	require.NoError(t, err)
	assert.Empty(t, msgs)

	all, err := store.Links(false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].ExportedDate)
	assert.Equal(t, "2026-08-30", *all[0].ExportedDate)
}

func TestMarkExportedIsTerminal(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SaveLink(newLink(1, "https://a.com/1"))
	require.NoError(t, err)
	links, err := store.UnexportedLinks()
	require.NoError(t, err)
	id := links[0].ID

	require.NoError(t, store.MarkExported([]uint{id}, nil, "2026-08-29"))
	// A later run must not restamp an already exported row.
	require.NoError(t, store.MarkExported([]uint{id}, nil, "2026-08-30"))

	all, err := store.Links(false)
	require.NoError(t, err)
	require.NotNil(t, all[0].ExportedDate)
	assert.Equal(t, "2026-08-29", *all[0].ExportedDate)
}

func TestMarkExportedEmptySetsNoOp(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.MarkExported(nil, nil, "2026-08-30"))
}

func TestPendingCounts(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SaveLink(newLink(1, "https://a.com/1"))
	require.NoError(t, err)
	require.NoError(t, store.SaveMessage(&models.Message{UserID: 1, Text: "one", ReceivedAt: time.Now()}))
	require.NoError(t, store.SaveMessage(&models.Message{UserID: 2, Text: "two", ReceivedAt: time.Now()}))

	links, msgs, err := store.PendingCounts()
	require.NoError(t, err)
	assert.Equal(t, int64(1), links)
	assert.Equal(t, int64(2), msgs)
}
