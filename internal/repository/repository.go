package repository

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"telegram-report-bot/internal/models"
)

// Store owns all access to the links and messages tables. Records are
// append-only until an export run stamps them with an exported date;
// nothing is ever deleted.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// SaveLink inserts a link, ignoring the insert when the URL already
// exists (first writer wins). Returns whether a new row was created.
func (s *Store) SaveLink(link *models.Link) (bool, error) {
	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "url"}},
		DoNothing: true,
	}).Create(link)
	if result.Error != nil {
		return false, fmt.Errorf("failed to save link: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// SaveMessage inserts one message row with the raw inbound text.
func (s *Store) SaveMessage(msg *models.Message) error {
	result := s.db.Create(msg)
	if result.Error != nil {
		return fmt.Errorf("failed to save message: %w", result.Error)
	}
	return nil
}

// UnexportedLinks returns all links not yet claimed by an export run,
// ordered by insertion.
func (s *Store) UnexportedLinks() ([]models.Link, error) {
	var links []models.Link
	result := s.db.Where("exported_date IS NULL").Order("id ASC").Find(&links)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load unexported links: %w", result.Error)
	}
	return links, nil
}

// UnexportedMessages returns all messages not yet claimed by an export
// run, ordered by insertion.
func (s *Store) UnexportedMessages() ([]models.Message, error) {
	var msgs []models.Message
	result := s.db.Where("exported_date IS NULL").Order("id ASC").Find(&msgs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load unexported messages: %w", result.Error)
	}
	return msgs, nil
}

// MarkExported stamps the given id sets with the export date in a single
// transaction. Rows already exported keep their original date: exported
// is a terminal state. Empty id sets are a no-op.
func (s *Store) MarkExported(linkIDs, messageIDs []uint, date string) error {
	if len(linkIDs) == 0 && len(messageIDs) == 0 {
		return nil
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(linkIDs) > 0 {
			result := tx.Model(&models.Link{}).
				Where("id IN ? AND exported_date IS NULL", linkIDs).
				Update("exported_date", date)
			if result.Error != nil {
				return result.Error
			}
		}
		if len(messageIDs) > 0 {
			result := tx.Model(&models.Message{}).
				Where("id IN ? AND exported_date IS NULL", messageIDs).
				Update("exported_date", date)
			if result.Error != nil {
				return result.Error
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to mark records exported: %w", err)
	}
	return nil
}

// Links returns stored links, optionally restricted to pending ones.
func (s *Store) Links(pendingOnly bool) ([]models.Link, error) {
	if pendingOnly {
		return s.UnexportedLinks()
	}
	var links []models.Link
	result := s.db.Order("id ASC").Find(&links)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load links: %w", result.Error)
	}
	return links, nil
}

// Messages returns stored messages, optionally restricted to pending ones.
func (s *Store) Messages(pendingOnly bool) ([]models.Message, error) {
	if pendingOnly {
		return s.UnexportedMessages()
	}
	var msgs []models.Message
	result := s.db.Order("id ASC").Find(&msgs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load messages: %w", result.Error)
	}
	return msgs, nil
}

// PendingCounts reports how many links and messages await export.
func (s *Store) PendingCounts() (int64, int64, error) {
	var links, msgs int64
	if err := s.db.Model(&models.Link{}).Where("exported_date IS NULL").Count(&links).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count pending links: %w", err)
	}
	if err := s.db.Model(&models.Message{}).Where("exported_date IS NULL").Count(&msgs).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count pending messages: %w", err)
	}
	return links, msgs, nil
}
