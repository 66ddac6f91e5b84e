// Package seed loads the initial admin account, routes and settings into an
// empty store, and optional demo dashboard data.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/farhancoder7071/journynow/internal/domain"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

// ErrNoAdmin is returned by Demo when the seeded admin account is missing.
var ErrNoAdmin = errors.New("admin user not found")

// Fixtures is the embedded seed data: the bootstrap admin, default routes and
// settings, and the demo records created on request.
type Fixtures struct {
	Admin struct {
		Username     string `yaml:"username"`
		FullName     string `yaml:"full_name"`
		PasswordHash string `yaml:"password_hash"`
	} `yaml:"admin"`
	TrainRoutes []struct {
		Name    string `yaml:"name"`
		From    string `yaml:"from"`
		To      string `yaml:"to"`
		Departs string `yaml:"departs"`
		Arrives string `yaml:"arrives"`
		Status  string `yaml:"status"`
		Number  string `yaml:"number"`
		Type    string `yaml:"type"`
	} `yaml:"train_routes"`
	BusRoutes []struct {
		Name      string `yaml:"name"`
		Number    string `yaml:"number"`
		From      string `yaml:"from"`
		To        string `yaml:"to"`
		Departs   string `yaml:"departs"`
		Arrives   string `yaml:"arrives"`
		Frequency string `yaml:"frequency"`
		Type      string `yaml:"type"`
		Fare      string `yaml:"fare"`
	} `yaml:"bus_routes"`
	AppSettings []struct {
		Category string `yaml:"category"`
		Key      string `yaml:"key"`
		Value    string `yaml:"value"`
	} `yaml:"app_settings"`
	Demo struct {
		Activities []struct {
			Action   string        `yaml:"action"`
			Category string        `yaml:"category"`
			Age      time.Duration `yaml:"age"`
			Status   string        `yaml:"status"`
		} `yaml:"activities"`
		Documents []struct {
			Title    string        `yaml:"title"`
			Category string        `yaml:"category"`
			Type     string        `yaml:"type"`
			Age      time.Duration `yaml:"age"`
		} `yaml:"documents"`
		Contents []struct {
			Title   string        `yaml:"title"`
			Age     time.Duration `yaml:"age"`
			Status  string        `yaml:"status"`
			Views   int           `yaml:"views"`
			Author  string        `yaml:"author"`
			Summary string        `yaml:"summary"`
		} `yaml:"contents"`
	} `yaml:"demo"`
}

// Load parses the embedded fixtures.
func Load() (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(fixturesYAML, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &f, nil
}

// Defaults populates an empty store. It reports false without touching
// anything when at least one user already exists.
func Defaults(ctx context.Context, store domain.Storage, logger *zap.Logger) (bool, error) {
	users, err := store.ListUsers(ctx)
	if err != nil {
		return false, err
	}
	if len(users) > 0 {
		return false, nil
	}
	f, err := Load()
	if err != nil {
		return false, err
	}

	admin, err := store.CreateUser(ctx, domain.NewUser(f.Admin.Username, f.Admin.PasswordHash, f.Admin.FullName, domain.RoleAdmin))
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}

	for _, r := range f.TrainRoutes {
		_, err := store.CreateTrainRoute(ctx, domain.NewTrainRoute(domain.TrainRouteInput{
			RouteName:          r.Name,
			SourceStation:      r.From,
			DestinationStation: r.To,
			DepartureTime:      r.Departs,
			ArrivalTime:        r.Arrives,
			Status:             r.Status,
			TrainNumber:        r.Number,
			TrainType:          r.Type,
		}))
		if err != nil {
			return false, fmt.Errorf("seed train route %s: %w", r.Number, err)
		}
	}

	for _, r := range f.BusRoutes {
		_, err := store.CreateBusRoute(ctx, domain.NewBusRoute(domain.BusRouteInput{
			RouteName:       r.Name,
			RouteNumber:     r.Number,
			SourceStop:      r.From,
			DestinationStop: r.To,
			DepartureTime:   r.Departs,
			ArrivalTime:     r.Arrives,
			Frequency:       r.Frequency,
			BusType:         r.Type,
			Fare:            r.Fare,
		}))
		if err != nil {
			return false, fmt.Errorf("seed bus route %s: %w", r.Number, err)
		}
	}

	for _, s := range f.AppSettings {
		by := admin.ID
		if _, err := store.UpsertAppSetting(ctx, domain.AppSettingInput{Category: s.Category, Key: s.Key, Value: s.Value, UpdatedBy: &by}); err != nil {
			return false, fmt.Errorf("seed setting %s.%s: %w", s.Category, s.Key, err)
		}
	}

	logger.Info("seeded empty store",
		zap.String("admin", admin.Username),
		zap.Int("train_routes", len(f.TrainRoutes)),
		zap.Int("bus_routes", len(f.BusRoutes)),
		zap.Int("app_settings", len(f.AppSettings)),
	)
	return true, nil
}

// Demo adds sample activities, documents and contents for the admin account,
// back-dated relative to now.
func Demo(ctx context.Context, store domain.Storage, now time.Time) error {
	f, err := Load()
	if err != nil {
		return err
	}
	admin, err := store.GetUserByUsername(ctx, f.Admin.Username)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrNoAdmin
	}

	for _, a := range f.Demo.Activities {
		act := domain.NewActivity(admin.ID, a.Action, a.Category)
		act.Status = a.Status
		act.Timestamp = now.Add(-a.Age).UTC()
		if _, err := store.CreateActivity(ctx, act); err != nil {
			return err
		}
	}
	for _, d := range f.Demo.Documents {
		doc := domain.NewDocument(admin.ID, d.Title, d.Category, d.Type)
		doc.LastUpdated = now.Add(-d.Age).UTC()
		if _, err := store.CreateDocument(ctx, doc); err != nil {
			return err
		}
	}
	for _, c := range f.Demo.Contents {
		content := domain.NewContent(c.Title, c.Summary, c.Author)
		content.Status = c.Status
		content.Views = c.Views
		content.PublishedDate = now.Add(-c.Age).UTC()
		if _, err := store.CreateContent(ctx, content); err != nil {
			return err
		}
	}
	return nil
}
