// Package ingest turns inbound (user, text) pairs into stored link and
// message records.
package ingest

import (
	"time"

	"github.com/sirupsen/logrus"

	"telegram-report-bot/internal/classifier"
	"telegram-report-bot/internal/metrics"
	"telegram-report-bot/internal/models"
	"telegram-report-bot/internal/repository"
)

// Service consumes inbound messages: URL tokens are classified and
// deduplicated into the link store, and the full text is always recorded
// as one message row.
type Service struct {
	store   *repository.Store
	loc     *time.Location
	metrics *metrics.Metrics
}

func NewService(store *repository.Store, loc *time.Location, m *metrics.Metrics) *Service {
	return &Service{store: store, loc: loc, metrics: m}
}

// Ingest stores the message and any URLs it carries, returning how many
// links were newly created. Storage faults on individual tokens are
// logged and swallowed so one bad token never blocks the rest of the
// message; no error reaches the transport layer.
func (s *Service) Ingest(userID int64, text string) int {
	now := time.Now().In(s.loc)

	added := 0
	for _, url := range classifier.ExtractURLs(text) {
		link := &models.Link{
			UserID:     userID,
			Platform:   classifier.Detect(url),
			URL:        url,
			ReceivedAt: now,
		}
		created, err := s.store.SaveLink(link)
		if err != nil {
			logrus.Warnf("Failed to save link %s from user %d: %v", url, userID, err)
			continue
		}
		if created {
			added++
			s.metrics.LinksSaved.Inc()
		} else {
			s.metrics.DuplicatesSkipped.Inc()
		}
	}

	msg := &models.Message{
		UserID:     userID,
		Text:       text,
		ReceivedAt: now,
	}
	if err := s.store.SaveMessage(msg); err != nil {
		logrus.Errorf("Failed to save message from user %d: %v", userID, err)
	}
	s.metrics.MessagesIngested.Inc()

	logrus.Debugf("Ingested message from user %d: %d link(s) added", userID, added)
	return added
}
