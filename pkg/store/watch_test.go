package store

import (
	"context"
	"sync"
	"testing"
	"time"
)

type testConfig struct {
	path    string
	backend string
}

func (t testConfig) BasePath() string { return t.path }
func (t testConfig) Backend() string  { return t.backend }
func (t testConfig) Locale() string   { return "en" }

func TestPersistenceWatchEmitsKeyChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base, backend: BackendDiskv}, nil)
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := p.Save(KeyConversations, `[]`); err != nil {
		t.Fatalf("save: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Key != KeyConversations {
				t.Fatalf("expected key %q, got %q", KeyConversations, evt.Key)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for key change event")
		}
	}
}

func TestWatchUnsupportedOnMemory(t *testing.T) {
	if _, err := NewMemory().Watch(context.Background()); err != ErrWatchUnsupported {
		t.Fatalf("expected ErrWatchUnsupported, got %v", err)
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	th := newEventThrottle(20 * time.Millisecond)
	defer th.Stop()

	var mu sync.Mutex
	got := map[string]int{}
	done := make(chan struct{}, 8)
	send := func(ev Event) {
		mu.Lock()
		got[ev.Key]++
		mu.Unlock()
		done <- struct{}{}
	}

	for i := 0; i < 5; i++ {
		th.Enqueue(Event{Type: EventKeyChanged, Key: KeyCalls}, send)
	}
	th.Enqueue(Event{Type: EventKeyChanged, Key: KeyConversations}, send)

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for flush")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if got[KeyCalls] != 1 || got[KeyConversations] != 1 {
		t.Fatalf("expected one event per key, got %v", got)
	}
}
