package app

import (
	"context"
	"fmt"

	"github.com/farhancoder7071/journynow/internal/domain"
)

// Activity categories written by admin mutations.
const (
	CategoryUsers        = "Users"
	CategoryContent      = "Content"
	CategoryTrainRoutes  = "Train routes"
	CategoryBusRoutes    = "Bus routes"
	CategoryCrowdReports = "Crowd reports"
	CategoryAdSettings   = "Ad settings"
	CategoryAppSettings  = "App settings"
)

// Auditor runs admin mutations together with the activity that records them.
type Auditor struct {
	store domain.Storage
}

// NewAuditor creates an Auditor writing to store.
func NewAuditor(store domain.Storage) *Auditor {
	return &Auditor{store: store}
}

// Do runs mutate and then appends a completed activity with the action text
// it returns, both in one unit of work. If either fails neither is kept.
func (a *Auditor) Do(ctx context.Context, actor *domain.User, category string, mutate func(tx domain.Storage) (string, error)) error {
	return a.store.Atomically(ctx, func(tx domain.Storage) error {
		action, err := mutate(tx)
		if err != nil {
			return err
		}
		if _, err := tx.CreateActivity(ctx, domain.NewActivity(actor.ID, action, category)); err != nil {
			return fmt.Errorf("record activity: %w", err)
		}
		return nil
	})
}
