package ingest

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"telegram-report-bot/internal/metrics"
	"telegram-report-bot/internal/models"
	"telegram-report-bot/internal/repository"
)

// promauto registers against the default registry, so metrics are built
// once for the whole test binary.
var testMetrics = metrics.NewMetrics()

func newTestService(t *testing.T) (*Service, *repository.Store) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Link{}, &models.Message{}))
	store := repository.New(db)
	return NewService(store, time.UTC, testMetrics), store
}

func TestIngestClassifiesAndStoresLinks(t *testing.T) {
	svc, store := newTestService(t)

	added := svc.Ingest(42, "check this out https://youtu.be/abc123 and https://instagram.com/p/xyz")
	assert.Equal(t, 2, added)

	links, err := store.UnexportedLinks()
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, models.PlatformYouTube, links[0].Platform)
	assert.Equal(t, "https://youtu.be/abc123", links[0].URL)
	assert.Equal(t, models.PlatformInstagram, links[1].Platform)
	assert.Equal(t, int64(42), links[0].UserID)

	msgs, err := store.UnexportedMessages()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "check this out https://youtu.be/abc123 and https://instagram.com/p/xyz", msgs[0].Text)
}

func TestIngestDeduplicatesWithinOneMessage(t *testing.T) {
	svc, store := newTestService(t)

	added := svc.Ingest(1, "twice https://youtu.be/abc https://youtu.be/abc")
	assert.Equal(t, 1, added)

	links, err := store.UnexportedLinks()
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestIngestDeduplicatesAcrossUsers(t *testing.T) {
	svc, store := newTestService(t)

	assert.Equal(t, 1, svc.Ingest(1, "https://youtu.be/abc"))
	assert.Equal(t, 0, svc.Ingest(2, "https://youtu.be/abc"))

	links, err := store.UnexportedLinks()
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, int64(1), links[0].UserID)

	// Both messages retained regardless.
	msgs, err := store.UnexportedMessages()
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
}

func TestIngestWithoutLinks(t *testing.T) {
	svc, store := newTestService(t)

	added := svc.Ingest(5, "just a plain message")
	assert.Equal(t, 0, added)

	links, err := store.UnexportedLinks()
	require.NoError(t, err)
	assert.Empty(t, links)

	msgs, err := store.UnexportedMessages()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "just a plain message", msgs[0].Text)
}

func TestIngestStripsTrailingPunctuation(t *testing.T) {
	svc, store := newTestService(t)

	added := svc.Ingest(1, "watch https://youtu.be/abc123,")
	assert.Equal(t, 1, added)

	links, err := store.UnexportedLinks()
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "https://youtu.be/abc123", links[0].URL)
}
