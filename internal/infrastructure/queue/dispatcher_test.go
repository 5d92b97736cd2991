package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecomstore/commerce-api/internal/core/domain"
)

type collectingRecorder struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (r *collectingRecorder) Record(_ context.Context, event domain.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *collectingRecorder) byUser(username string) []domain.AuthEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.AuthEvent
	for _, e := range r.events {
		if e.Username == username {
			out = append(out, e)
		}
	}
	return out
}

func TestDispatcher_RecordsEvents(t *testing.T) {
	rec := &collectingRecorder{}
	d := NewDispatcher(2, rec, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 5; i++ {
		d.Publish(domain.AuthEvent{Username: "user1", Action: domain.AuthActionLogin, Success: true})
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(rec.byUser("user1")) == 5 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	events := rec.byUser("user1")
	if len(events) != 5 {
		t.Fatalf("expected 5 recorded events, got %d", len(events))
	}
	for _, e := range events {
		if e.At.IsZero() {
			t.Fatalf("expected Publish to stamp the event time")
		}
	}
}

func TestDispatcher_ShardIsStablePerUser(t *testing.T) {
	d := NewDispatcher(8, &collectingRecorder{}, zerolog.Nop())

	first := d.shardIndex("seller1")
	for i := 0; i < 10; i++ {
		if d.shardIndex("seller1") != first {
			t.Fatalf("shard index must be deterministic per username")
		}
	}
}
