package domain

import "context"

// Storage is the single persistence seam used by the application services.
//
// Lookups return a nil entity (and nil error) when nothing matches, updates of
// a missing id return nil without creating anything, and deletes report
// whether a row was removed. Errors are reserved for backend failures.
type Storage interface {
	UserRepository
	ActivityRepository
	DocumentRepository
	ContentRepository
	TrainRouteRepository
	BusRouteRepository
	CrowdReportRepository
	AdSettingRepository
	AppSettingRepository

	// Sessions returns the session store sharing this storage's lifecycle.
	Sessions() SessionRepository

	// Atomically runs fn against a Storage whose writes are kept only if fn
	// returns nil. Only entity writes are covered; session writes belong
	// outside fn.
	Atomically(ctx context.Context, fn func(tx Storage) error) error
}
