package models

import "time"

// Platform is the classification tag attached to a stored URL.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformOther     Platform = "other"
)

// Link represents a deduplicated URL extracted from an inbound message.
// ExportedDate is nil until the row is claimed by an export run; once set
// it is never changed.
type Link struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       int64     `json:"user_id" gorm:"not null;index"`
	Platform     Platform  `json:"platform" gorm:"type:varchar(32);not null"`
	URL          string    `json:"url" gorm:"type:text;not null;uniqueIndex"`
	ReceivedAt   time.Time `json:"received_at"`
	ExportedDate *string   `json:"exported_date,omitempty" gorm:"type:date;index"`
}

// TableName specifies the table name for Link
func (Link) TableName() string {
	return "links"
}

// Message stores every inbound text verbatim, links or not.
type Message struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       int64     `json:"user_id" gorm:"not null;index"`
	Text         string    `json:"text" gorm:"type:text;not null"`
	ReceivedAt   time.Time `json:"received_at"`
	ExportedDate *string   `json:"exported_date,omitempty" gorm:"type:date;index"`
}

// TableName specifies the table name for Message
func (Message) TableName() string {
	return "messages"
}

// Exported reports whether the record has been claimed by an export run.
func (l Link) Exported() bool {
	return l.ExportedDate != nil
}

// Exported reports whether the record has been claimed by an export run.
func (m Message) Exported() bool {
	return m.ExportedDate != nil
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status          string            `json:"status"`
	Timestamp       time.Time         `json:"timestamp"`
	Database        string            `json:"database"`
	PendingLinks    int64             `json:"pending_links"`
	PendingMessages int64             `json:"pending_messages"`
	Scheduler       map[string]string `json:"scheduler,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
