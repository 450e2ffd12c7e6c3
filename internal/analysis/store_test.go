package analysis

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/blacklandcg/scoutiq/internal/contracts"
	"github.com/blacklandcg/scoutiq/pkg/logger"
	"github.com/blacklandcg/scoutiq/pkg/redis"
)

func testStore(t *testing.T, ttl time.Duration) *ResultStore {
	t.Helper()
	cache := redis.NewCache(redis.Disabled(), "scoutiq")
	return NewResultStore(cache, ttl, logger.NewWriter(io.Discard, "error"))
}

func TestResultStore_PutGet(t *testing.T) {
	store := testStore(t, time.Minute)
	ctx := context.Background()

	records := []contracts.PropertyRecord{
		{"attom_id": "1", "primary_valuation": 200000.0},
		{"attom_id": "2", "primary_valuation": 500000.0},
	}

	queryID, err := store.Put(ctx, records)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if queryID == "" {
		t.Fatal("Put returned empty query id")
	}

	got, err := store.Get(ctx, queryID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0].ID() != "1" {
		t.Errorf("got[0].ID() = %q, want 1", got[0].ID())
	}
}

func TestResultStore_UniqueIDs(t *testing.T) {
	store := testStore(t, time.Minute)
	ctx := context.Background()

	a, err := store.Put(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := store.Put(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Errorf("query ids collide: %q", a)
	}
}

func TestResultStore_UnknownID(t *testing.T) {
	store := testStore(t, time.Minute)

	if _, err := store.Get(context.Background(), "no-such-id"); err != ErrResultNotFound {
		t.Errorf("Get unknown id err = %v, want ErrResultNotFound", err)
	}
}

func TestResultStore_ExpiryAndSweep(t *testing.T) {
	store := testStore(t, -time.Second) // already expired on insert
	ctx := context.Background()

	queryID, err := store.Put(ctx, []contracts.PropertyRecord{{"attom_id": "1"}})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.Get(ctx, queryID); err != ErrResultNotFound {
		t.Errorf("Get expired err = %v, want ErrResultNotFound", err)
	}

	if removed := store.Sweep(); removed != 1 {
		t.Errorf("Sweep removed = %d, want 1", removed)
	}
	if store.Len() != 0 {
		t.Errorf("Len = %d, want 0", store.Len())
	}
}
