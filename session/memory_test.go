package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMemoryStoreSaveLoad(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, "abc", Data{UserID: 1, Email: "a@x.com"}, time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx, "abc")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.UserID != 1 || got.Email != "a@x.com" {
		t.Fatalf("unexpected data %+v", got)
	}

	if _, err := store.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	if err := store.Save(ctx, "old", Data{UserID: 1, Email: "a@x.com"}, time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}

	now = now.Add(time.Minute)
	if _, err := store.Load(ctx, "old"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}

	// следующая запись вычищает истёкшие
	if err := store.Save(ctx, "new", Data{UserID: 2, Email: "b@x.com"}, time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := store.entries["old"]; ok {
		t.Fatal("expected expired entry to be swept")
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i%26))
			_ = store.Save(ctx, id, Data{UserID: int64(i), Email: "x@x.com"}, time.Minute)
			_, _ = store.Load(ctx, id)
		}(i)
	}
	wg.Wait()
}
