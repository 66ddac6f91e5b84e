package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/farhancoder7071/journynow/internal/adapter/storagetest"
	"github.com/farhancoder7071/journynow/internal/domain"
)

func TestStorageContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) domain.Storage { return New() })
}

func TestReturnedValuesAreCopies(t *testing.T) {
	db := New()
	ctx := context.Background()

	u, err := db.CreateUser(ctx, domain.NewUser("alice", "digest", "Alice A", ""))
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	*u.FullName = "Mallory"
	u.Role = domain.RoleAdmin

	got, _ := db.GetUser(ctx, u.ID)
	if *got.FullName != "Alice A" || got.Role != domain.RoleUser {
		t.Fatalf("caller mutation leaked into store: %+v", got)
	}

	by := int64(4)
	s, _ := db.UpsertAppSetting(ctx, domain.AppSettingInput{Category: "general", Key: "k", Value: "v", UpdatedBy: &by})
	by = 99
	*s.UpdatedBy = 100

	stored, _ := db.GetAppSetting(ctx, "general", "k")
	if *stored.UpdatedBy != 4 {
		t.Fatalf("expected updatedBy 4, got %d", *stored.UpdatedBy)
	}
}

func TestConcurrentUserCreatesSameName(t *testing.T) {
	db := New()
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := db.CreateUser(ctx, domain.NewUser("race", "digest", "", "")); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Fatalf("expected exactly one create to win, got %d", created)
	}
	if got := db.users.count(); got != 1 {
		t.Fatalf("expected 1 stored user, got %d", got)
	}
}

func TestSessionLazyExpiry(t *testing.T) {
	db := New()
	ctx := context.Background()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	db.sessions.now = func() time.Time { return now }

	_ = db.sessions.Create(ctx, 1, "tok", now.Add(time.Minute))
	if s, _ := db.sessions.GetByToken(ctx, "tok"); s == nil {
		t.Fatal("expected live session")
	}

	now = now.Add(time.Minute)
	if s, _ := db.sessions.GetByToken(ctx, "tok"); s != nil {
		t.Fatal("session should expire exactly at ExpiresAt")
	}
	if db.sessions.Count() != 0 {
		t.Fatal("expired session should be dropped on lookup")
	}
}

func TestDeleteExpiredKeepsLiveSessions(t *testing.T) {
	db := New()
	ctx := context.Background()

	now := time.Now()
	_ = db.sessions.Create(ctx, 1, "old", now.Add(-time.Second))
	_ = db.sessions.Create(ctx, 1, "older", now.Add(-time.Hour))
	_ = db.sessions.Create(ctx, 2, "live", now.Add(time.Hour))

	n, err := db.sessions.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 swept, got %d", n)
	}
	if db.sessions.Count() != 1 {
		t.Errorf("expected 1 remaining session, got %d", db.sessions.Count())
	}
}
