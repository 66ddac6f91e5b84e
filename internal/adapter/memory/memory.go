// Package memory implements an in-memory storage for development and testing.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/farhancoder7071/journynow/internal/domain"
)

// DB implements domain.Storage on process-local maps. Each entity type has
// its own lock and id counter.
type DB struct {
	users        *table[domain.User]
	activities   *table[domain.Activity]
	documents    *table[domain.Document]
	contents     *table[domain.Content]
	trainRoutes  *table[domain.TrainRoute]
	busRoutes    *table[domain.BusRoute]
	crowdReports *table[domain.CrowdReport]
	adSettings   *table[domain.AdSetting]
	appSettings  *table[domain.AppSetting]

	sessions *SessionRepo
	now      func() time.Time

	// txMu serializes transactions. j is non-nil only on a DB handed to an
	// Atomically callback.
	txMu *sync.Mutex
	j    *journal
}

// New creates an empty in-memory database.
func New() *DB {
	db := &DB{
		users:        newTable[domain.User](),
		activities:   newTable[domain.Activity](),
		documents:    newTable[domain.Document](),
		contents:     newTable[domain.Content](),
		trainRoutes:  newTable[domain.TrainRoute](),
		busRoutes:    newTable[domain.BusRoute](),
		crowdReports: newTable[domain.CrowdReport](),
		adSettings:   newTable[domain.AdSetting](),
		appSettings:  newTable[domain.AppSetting](),
		now:          func() time.Time { return time.Now().UTC() },
		txMu:         &sync.Mutex{},
	}
	db.sessions = &SessionRepo{sessions: make(map[string]domain.Session), now: db.now}
	return db
}

// Ensure interfaces are met.
var _ domain.Storage = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// Sessions returns the session store.
func (db *DB) Sessions() domain.SessionRepository {
	return db.sessions
}

// Atomically runs fn against a view of db that journals every write, and
// undoes those writes when fn fails. Nested calls join the outer journal.
// Plain writes made concurrently by other callers are not isolated from fn.
func (db *DB) Atomically(ctx context.Context, fn func(tx domain.Storage) error) error {
	if db.j != nil {
		return fn(db)
	}
	db.txMu.Lock()
	defer db.txMu.Unlock()

	tx := &DB{
		users:        db.users,
		activities:   db.activities,
		documents:    db.documents,
		contents:     db.contents,
		trainRoutes:  db.trainRoutes,
		busRoutes:    db.busRoutes,
		crowdReports: db.crowdReports,
		adSettings:   db.adSettings,
		appSettings:  db.appSettings,
		sessions:     db.sessions,
		now:          db.now,
		txMu:         db.txMu,
		j:            &journal{},
	}
	if err := fn(tx); err != nil {
		tx.j.rollback()
		return err
	}
	return nil
}

// --- UserRepository ---

// GetUser retrieves a user by ID.
func (db *DB) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := db.users.get(id)
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

// GetUserByUsername retrieves a user by username.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, ok := db.users.find(func(u domain.User) bool { return u.Username == username })
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

// CreateUser stores a new user. The username check and the insert happen
// under one lock.
func (db *DB) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	created, ok := db.users.insertUnless(db.j,
		func(existing domain.User) bool { return existing.Username == u.Username },
		func(id int64) domain.User {
			u.ID = id
			if u.Role == "" {
				u.Role = domain.RoleUser
			}
			if u.CreatedAt.IsZero() {
				u.CreatedAt = db.now()
			}
			return *cloneUser(u)
		},
	)
	if !ok {
		return nil, domain.ErrUsernameTaken
	}
	return cloneUser(created), nil
}

// ListUsers returns all users ordered by ID.
func (db *DB) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows := db.users.filter(nil)
	for i := range rows {
		rows[i] = *cloneUser(rows[i])
	}
	return rows, nil
}

// UpdateUser merges patch into the stored user.
func (db *DB) UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	u, ok := db.users.update(db.j, id, func(u domain.User) domain.User {
		u = *cloneUser(u)
		patch.Apply(&u)
		return u
	})
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

// DeleteUser removes a user.
func (db *DB) DeleteUser(ctx context.Context, id int64) (bool, error) {
	return db.users.remove(db.j, id), nil
}

// --- ActivityRepository ---

// ListActivitiesByUser returns a user's activities ordered by ID.
func (db *DB) ListActivitiesByUser(ctx context.Context, userID int64) ([]domain.Activity, error) {
	return db.activities.filter(func(a domain.Activity) bool { return a.UserID == userID }), nil
}

// CreateActivity appends an activity.
func (db *DB) CreateActivity(ctx context.Context, a domain.Activity) (*domain.Activity, error) {
	created := db.activities.insert(db.j, func(id int64) domain.Activity {
		a.ID = id
		if a.Timestamp.IsZero() {
			a.Timestamp = db.now()
		}
		return a
	})
	return &created, nil
}

// --- DocumentRepository ---

// ListDocumentsByUser returns a user's documents ordered by ID.
func (db *DB) ListDocumentsByUser(ctx context.Context, userID int64) ([]domain.Document, error) {
	return db.documents.filter(func(d domain.Document) bool { return d.UserID == userID }), nil
}

// CreateDocument stores a document.
func (db *DB) CreateDocument(ctx context.Context, d domain.Document) (*domain.Document, error) {
	created := db.documents.insert(db.j, func(id int64) domain.Document {
		d.ID = id
		if d.LastUpdated.IsZero() {
			d.LastUpdated = db.now()
		}
		if d.Status == "" {
			d.Status = domain.StatusPublic
		}
		return d
	})
	return &created, nil
}

// --- ContentRepository ---

// ListContents returns all contents ordered by ID.
func (db *DB) ListContents(ctx context.Context) ([]domain.Content, error) {
	return db.contents.filter(nil), nil
}

// CreateContent stores a content item.
func (db *DB) CreateContent(ctx context.Context, c domain.Content) (*domain.Content, error) {
	created := db.contents.insert(db.j, func(id int64) domain.Content {
		c.ID = id
		if c.PublishedDate.IsZero() {
			c.PublishedDate = db.now()
		}
		if c.Status == "" {
			c.Status = domain.StatusPublic
		}
		return c
	})
	return &created, nil
}

// --- TrainRouteRepository ---

// ListTrainRoutes returns all train routes ordered by ID.
func (db *DB) ListTrainRoutes(ctx context.Context) ([]domain.TrainRoute, error) {
	return db.trainRoutes.filter(nil), nil
}

// GetTrainRoute retrieves a train route by ID.
func (db *DB) GetTrainRoute(ctx context.Context, id int64) (*domain.TrainRoute, error) {
	r, ok := db.trainRoutes.get(id)
	if !ok {
		return nil, nil
	}
	return &r, nil
}

// CreateTrainRoute stores a train route and stamps both timestamps.
func (db *DB) CreateTrainRoute(ctx context.Context, r domain.TrainRoute) (*domain.TrainRoute, error) {
	created := db.trainRoutes.insert(db.j, func(id int64) domain.TrainRoute {
		now := db.now()
		r.ID = id
		r.CreatedAt = now
		r.UpdatedAt = now
		return r
	})
	return &created, nil
}

// UpdateTrainRoute merges patch and refreshes UpdatedAt.
func (db *DB) UpdateTrainRoute(ctx context.Context, id int64, patch domain.TrainRoutePatch) (*domain.TrainRoute, error) {
	r, ok := db.trainRoutes.update(db.j, id, func(r domain.TrainRoute) domain.TrainRoute {
		patch.Apply(&r)
		r.UpdatedAt = db.now()
		return r
	})
	if !ok {
		return nil, nil
	}
	return &r, nil
}

// DeleteTrainRoute removes a train route.
func (db *DB) DeleteTrainRoute(ctx context.Context, id int64) (bool, error) {
	return db.trainRoutes.remove(db.j, id), nil
}

// --- BusRouteRepository ---

// ListBusRoutes returns all bus routes ordered by ID.
func (db *DB) ListBusRoutes(ctx context.Context) ([]domain.BusRoute, error) {
	return db.busRoutes.filter(nil), nil
}

// GetBusRoute retrieves a bus route by ID.
func (db *DB) GetBusRoute(ctx context.Context, id int64) (*domain.BusRoute, error) {
	r, ok := db.busRoutes.get(id)
	if !ok {
		return nil, nil
	}
	return &r, nil
}

// CreateBusRoute stores a bus route and stamps both timestamps.
func (db *DB) CreateBusRoute(ctx context.Context, r domain.BusRoute) (*domain.BusRoute, error) {
	created := db.busRoutes.insert(db.j, func(id int64) domain.BusRoute {
		now := db.now()
		r.ID = id
		r.CreatedAt = now
		r.UpdatedAt = now
		return r
	})
	return &created, nil
}

// UpdateBusRoute merges patch and refreshes UpdatedAt.
func (db *DB) UpdateBusRoute(ctx context.Context, id int64, patch domain.BusRoutePatch) (*domain.BusRoute, error) {
	r, ok := db.busRoutes.update(db.j, id, func(r domain.BusRoute) domain.BusRoute {
		patch.Apply(&r)
		r.UpdatedAt = db.now()
		return r
	})
	if !ok {
		return nil, nil
	}
	return &r, nil
}

// DeleteBusRoute removes a bus route.
func (db *DB) DeleteBusRoute(ctx context.Context, id int64) (bool, error) {
	return db.busRoutes.remove(db.j, id), nil
}

// --- CrowdReportRepository ---

// ListCrowdReports returns all crowd reports ordered by ID.
func (db *DB) ListCrowdReports(ctx context.Context) ([]domain.CrowdReport, error) {
	return cloneReports(db.crowdReports.filter(nil)), nil
}

// ListCrowdReportsByUser returns the reports submitted by a user.
func (db *DB) ListCrowdReportsByUser(ctx context.Context, userID int64) ([]domain.CrowdReport, error) {
	return cloneReports(db.crowdReports.filter(func(r domain.CrowdReport) bool { return r.UserID == userID })), nil
}

// ListCrowdReportsByStation returns every report for a station, approved or
// not. Visibility is decided by the caller.
func (db *DB) ListCrowdReportsByStation(ctx context.Context, stationName string) ([]domain.CrowdReport, error) {
	return cloneReports(db.crowdReports.filter(func(r domain.CrowdReport) bool { return r.StationName == stationName })), nil
}

// CreateCrowdReport stores a report. Reports always start unapproved.
func (db *DB) CreateCrowdReport(ctx context.Context, r domain.CrowdReport) (*domain.CrowdReport, error) {
	created := db.crowdReports.insert(db.j, func(id int64) domain.CrowdReport {
		r.ID = id
		r.IsApproved = false
		if r.Timestamp.IsZero() {
			r.Timestamp = db.now()
		}
		return cloneReport(r)
	})
	out := cloneReport(created)
	return &out, nil
}

// ApproveCrowdReport marks a report approved. Approving twice is a no-op.
func (db *DB) ApproveCrowdReport(ctx context.Context, id int64) (*domain.CrowdReport, error) {
	r, ok := db.crowdReports.update(db.j, id, func(r domain.CrowdReport) domain.CrowdReport {
		r.IsApproved = true
		return r
	})
	if !ok {
		return nil, nil
	}
	out := cloneReport(r)
	return &out, nil
}

// --- AdSettingRepository ---

// ListAdSettings returns all ad settings ordered by ID.
func (db *DB) ListAdSettings(ctx context.Context) ([]domain.AdSetting, error) {
	return db.adSettings.filter(nil), nil
}

// GetAdSetting retrieves an ad setting by ID.
func (db *DB) GetAdSetting(ctx context.Context, id int64) (*domain.AdSetting, error) {
	s, ok := db.adSettings.get(id)
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// CreateAdSetting stores an ad setting.
func (db *DB) CreateAdSetting(ctx context.Context, s domain.AdSetting) (*domain.AdSetting, error) {
	created := db.adSettings.insert(db.j, func(id int64) domain.AdSetting {
		s.ID = id
		s.LastUpdated = db.now()
		return s
	})
	return &created, nil
}

// UpdateAdSetting merges patch and refreshes LastUpdated.
func (db *DB) UpdateAdSetting(ctx context.Context, id int64, patch domain.AdSettingPatch) (*domain.AdSetting, error) {
	s, ok := db.adSettings.update(db.j, id, func(s domain.AdSetting) domain.AdSetting {
		patch.Apply(&s)
		s.LastUpdated = db.now()
		return s
	})
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// --- AppSettingRepository ---

// ListAppSettings returns all app settings ordered by ID.
func (db *DB) ListAppSettings(ctx context.Context) ([]domain.AppSetting, error) {
	return cloneSettings(db.appSettings.filter(nil)), nil
}

// ListAppSettingsByCategory returns the settings of one category.
func (db *DB) ListAppSettingsByCategory(ctx context.Context, category string) ([]domain.AppSetting, error) {
	return cloneSettings(db.appSettings.filter(func(s domain.AppSetting) bool { return s.Category == category })), nil
}

// GetAppSetting retrieves a setting by its natural key.
func (db *DB) GetAppSetting(ctx context.Context, category, key string) (*domain.AppSetting, error) {
	s, ok := db.appSettings.find(func(s domain.AppSetting) bool { return s.Category == category && s.Key == key })
	if !ok {
		return nil, nil
	}
	out := cloneSetting(s)
	return &out, nil
}

// UpsertAppSetting updates the (category, key) row in place or inserts it.
func (db *DB) UpsertAppSetting(ctx context.Context, in domain.AppSettingInput) (*domain.AppSetting, error) {
	now := db.now()
	s := db.appSettings.upsert(db.j,
		func(s domain.AppSetting) bool { return s.Category == in.Category && s.Key == in.Key },
		func(s domain.AppSetting) domain.AppSetting {
			s.Value = in.Value
			s.UpdatedBy = cloneID(in.UpdatedBy)
			s.UpdatedAt = now
			return s
		},
		func(id int64) domain.AppSetting {
			return domain.AppSetting{
				ID:        id,
				Category:  in.Category,
				Key:       in.Key,
				Value:     in.Value,
				UpdatedBy: cloneID(in.UpdatedBy),
				UpdatedAt: now,
			}
		},
	)
	out := cloneSetting(s)
	return &out, nil
}

// DeleteAppSetting removes a setting by ID.
func (db *DB) DeleteAppSetting(ctx context.Context, id int64) (bool, error) {
	return db.appSettings.remove(db.j, id), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence. Expired sessions are treated
// as absent and dropped on lookup; DeleteExpired sweeps the rest.
type SessionRepo struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	now      func() time.Time
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[token] = domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: r.now(),
	}
	return nil
}

// GetByToken retrieves a live session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok {
		return nil, nil
	}
	if s.Expired(r.now()) {
		delete(r.sessions, token)
		return nil, nil
	}
	return &s, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}

// DeleteByUserID deletes every session of a user.
func (r *SessionRepo) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for k, v := range r.sessions {
		if v.UserID == userID {
			delete(r.sessions, k)
			n++
		}
	}
	return n, nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	var n int64
	for k, v := range r.sessions {
		if v.Expired(now) {
			delete(r.sessions, k)
			n++
		}
	}
	return n, nil
}

// Count returns the number of stored sessions, expired ones included.
func (r *SessionRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
