package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/farhancoder7071/journynow/internal/adapter/storagetest"
	"github.com/farhancoder7071/journynow/internal/domain"
)

// The contract runs against a real database only when one is configured.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("JOURNYNOW_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("JOURNYNOW_TEST_DATABASE_URL not set")
	}
	db, err := Open(context.Background(), dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.sql.Exec(`TRUNCATE users, sessions, activities, documents, contents, train_routes,
		bus_routes, crowd_reports, ad_settings, app_settings RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}

func TestStorageContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) domain.Storage { return openTestDB(t) })
}

func TestDeleteUserCascadesSessions(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	u, err := db.CreateUser(ctx, domain.NewUser("frank", "digest", "", ""))
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := db.Sessions().Create(ctx, u.ID, "tok", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Create session: %v", err)
	}
	if ok, err := db.DeleteUser(ctx, u.ID); err != nil || !ok {
		t.Fatalf("DeleteUser = %v, %v", ok, err)
	}
	if s, _ := db.Sessions().GetByToken(ctx, "tok"); s != nil {
		t.Fatal("session should be removed with its user")
	}
}
