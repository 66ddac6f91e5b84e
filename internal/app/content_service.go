package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/farhancoder7071/journynow/internal/domain"
)

// ContentInput is a content item submitted from the back office. Zero
// PublishedDate means now and an empty Author means the acting admin.
type ContentInput struct {
	Title         string    `json:"title"`
	Summary       string    `json:"summary"`
	Status        string    `json:"status"`
	Author        string    `json:"author"`
	Views         int       `json:"views"`
	PublishedDate time.Time `json:"publishedDate"`
}

// ContentService manages published content.
type ContentService struct {
	contents domain.ContentRepository
	audit    *Auditor
}

// NewContentService creates a new content service.
func NewContentService(contents domain.ContentRepository, audit *Auditor) *ContentService {
	return &ContentService{contents: contents, audit: audit}
}

// List returns every content item.
func (s *ContentService) List(ctx context.Context) ([]domain.Content, error) {
	return s.contents.ListContents(ctx)
}

// Create stores a content item authored by actor unless in names an author.
func (s *ContentService) Create(ctx context.Context, actor *domain.User, in ContentInput) (*domain.Content, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if in.Views < 0 {
		return nil, fmt.Errorf("%w: views must not be negative", ErrInvalidInput)
	}

	c := domain.NewContent(title, in.Summary, in.Author)
	if c.Author == "" {
		c.Author = displayName(actor)
	}
	if in.Status != "" {
		c.Status = in.Status
	}
	c.Views = in.Views
	c.PublishedDate = in.PublishedDate

	var created *domain.Content
	err := s.audit.Do(ctx, actor, CategoryContent, func(tx domain.Storage) (string, error) {
		var err error
		if created, err = tx.CreateContent(ctx, c); err != nil {
			return "", err
		}
		return "Published " + created.Title, nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func displayName(u *domain.User) string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Username
}
