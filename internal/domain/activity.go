package domain

import (
	"context"
	"time"
)

// ActivityStatusCompleted marks an audit row for an action that succeeded.
const ActivityStatusCompleted = "Completed"

// Activity is an append-only audit row attributed to a user.
type Activity struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Action    string    `json:"action"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

// NewActivity builds a completed activity. A zero timestamp is filled by the
// store.
func NewActivity(userID int64, action, category string) Activity {
	return Activity{
		UserID:   userID,
		Action:   action,
		Category: category,
		Status:   ActivityStatusCompleted,
	}
}

// Document is a user-owned metadata record.
type Document struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	LastUpdated time.Time `json:"lastUpdated"`
	Status      string    `json:"status"`
}

// Content is a globally visible published item.
type Content struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	PublishedDate time.Time `json:"publishedDate"`
	Status        string    `json:"status"`
	Summary       string    `json:"summary"`
	Views         int       `json:"views"`
	Author        string    `json:"author"`
}

// StatusPublic is the default visibility of documents and contents.
const StatusPublic = "public"

// NewDocument builds a document with the default status.
func NewDocument(userID int64, title, category, typ string) Document {
	return Document{
		UserID:   userID,
		Title:    title,
		Category: category,
		Type:     typ,
		Status:   StatusPublic,
	}
}

// NewContent builds a content item with the default status and zero views.
func NewContent(title, summary, author string) Content {
	return Content{
		Title:   title,
		Summary: summary,
		Author:  author,
		Status:  StatusPublic,
	}
}

// ActivityRepository is the port for the audit log.
type ActivityRepository interface {
	ListActivitiesByUser(ctx context.Context, userID int64) ([]Activity, error)
	CreateActivity(ctx context.Context, a Activity) (*Activity, error)
}

// DocumentRepository is the port for document persistence.
type DocumentRepository interface {
	ListDocumentsByUser(ctx context.Context, userID int64) ([]Document, error)
	CreateDocument(ctx context.Context, d Document) (*Document, error)
}

// ContentRepository is the port for content persistence.
type ContentRepository interface {
	ListContents(ctx context.Context) ([]Content, error)
	CreateContent(ctx context.Context, c Content) (*Content, error)
}
