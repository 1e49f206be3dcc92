package model

import "time"

// EntityTypeDocument is the entity type recorded on document notifications.
const EntityTypeDocument = "document"

// Notification categories assigned per document status.
const (
	CategoryExpiring = "document_expiring"
	CategoryGrace    = "document_grace"
	CategoryPenalty  = "document_penalty"
)

// Notification is an alert addressed to a single user.
type Notification struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Category   string    `json:"category"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
	// CreatedOn is the server-local calendar day the row belongs to.
	CreatedOn time.Time `json:"-"`
}

// AlertCandidate is one (document, recipient) pair returned by the cycle query.
type AlertCandidate struct {
	Document    Document
	RecipientID string
}
