package postgres

import (
	"context"

	"github.com/farhancoder7071/journynow/internal/domain"
)

const (
	activityColumns = "id, user_id, action, category, timestamp, status"
	documentColumns = "id, user_id, title, category, type, last_updated, status"
	contentColumns  = "id, title, published_date, status, summary, views, author"
)

func scanActivity(row rowScanner) (domain.Activity, error) {
	var a domain.Activity
	err := row.Scan(&a.ID, &a.UserID, &a.Action, &a.Category, &a.Timestamp, &a.Status)
	a.Timestamp = a.Timestamp.UTC()
	return a, err
}

func scanDocument(row rowScanner) (domain.Document, error) {
	var d domain.Document
	err := row.Scan(&d.ID, &d.UserID, &d.Title, &d.Category, &d.Type, &d.LastUpdated, &d.Status)
	d.LastUpdated = d.LastUpdated.UTC()
	return d, err
}

func scanContent(row rowScanner) (domain.Content, error) {
	var c domain.Content
	err := row.Scan(&c.ID, &c.Title, &c.PublishedDate, &c.Status, &c.Summary, &c.Views, &c.Author)
	c.PublishedDate = c.PublishedDate.UTC()
	return c, err
}

// ListActivitiesByUser returns a user's activities ordered by ID.
func (d *DB) ListActivitiesByUser(ctx context.Context, userID int64) ([]domain.Activity, error) {
	rows, err := d.conn.QueryContext(ctx, "SELECT "+activityColumns+" FROM activities WHERE user_id = $1 ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanActivity)
}

// CreateActivity appends an activity.
func (d *DB) CreateActivity(ctx context.Context, a domain.Activity) (*domain.Activity, error) {
	if a.Timestamp.IsZero() {
		a.Timestamp = now()
	}
	created, err := scanActivity(d.conn.QueryRowContext(ctx,
		"INSERT INTO activities (user_id, action, category, timestamp, status) VALUES ($1, $2, $3, $4, $5) RETURNING "+activityColumns,
		a.UserID, a.Action, a.Category, a.Timestamp.UTC(), a.Status,
	))
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListDocumentsByUser returns a user's documents ordered by ID.
func (d *DB) ListDocumentsByUser(ctx context.Context, userID int64) ([]domain.Document, error) {
	rows, err := d.conn.QueryContext(ctx, "SELECT "+documentColumns+" FROM documents WHERE user_id = $1 ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanDocument)
}

// CreateDocument stores a document.
func (d *DB) CreateDocument(ctx context.Context, doc domain.Document) (*domain.Document, error) {
	if doc.LastUpdated.IsZero() {
		doc.LastUpdated = now()
	}
	if doc.Status == "" {
		doc.Status = domain.StatusPublic
	}
	created, err := scanDocument(d.conn.QueryRowContext(ctx,
		"INSERT INTO documents (user_id, title, category, type, last_updated, status) VALUES ($1, $2, $3, $4, $5, $6) RETURNING "+documentColumns,
		doc.UserID, doc.Title, doc.Category, doc.Type, doc.LastUpdated.UTC(), doc.Status,
	))
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListContents returns all contents ordered by ID.
func (d *DB) ListContents(ctx context.Context) ([]domain.Content, error) {
	rows, err := d.conn.QueryContext(ctx, "SELECT "+contentColumns+" FROM contents ORDER BY id")
	if err != nil {
		return nil, err
	}
	return collect(rows, scanContent)
}

// CreateContent stores a content item.
func (d *DB) CreateContent(ctx context.Context, c domain.Content) (*domain.Content, error) {
	if c.PublishedDate.IsZero() {
		c.PublishedDate = now()
	}
	if c.Status == "" {
		c.Status = domain.StatusPublic
	}
	created, err := scanContent(d.conn.QueryRowContext(ctx,
		"INSERT INTO contents (title, published_date, status, summary, views, author) VALUES ($1, $2, $3, $4, $5, $6) RETURNING "+contentColumns,
		c.Title, c.PublishedDate.UTC(), c.Status, c.Summary, c.Views, c.Author,
	))
	if err != nil {
		return nil, err
	}
	return &created, nil
}
