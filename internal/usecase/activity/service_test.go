package activity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aandreyev/kb-search-api/internal/domain/activity"
)

type mockAppender struct {
	mu      sync.Mutex
	entries []activity.Entry
	err     error
	done    chan struct{}
}

func newMockAppender() *mockAppender {
	return &mockAppender{done: make(chan struct{}, 8)}
}

func (m *mockAppender) Append(_ context.Context, e activity.Entry) error {
	m.mu.Lock()
	m.entries = append(m.entries, e)
	m.mu.Unlock()
	m.done <- struct{}{}
	return m.err
}

func (m *mockAppender) recorded() []activity.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]activity.Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

func waitFor(t *testing.T, ch chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for background append")
	}
}

func TestNotifyAppendsInBackground(t *testing.T) {
	repo := newMockAppender()
	svc := New(repo, zap.NewNop(), time.Second)

	svc.Notify(activity.Entry{EventType: activity.EventSearch, SearchTerm: "lease"})
	waitFor(t, repo.done)

	entries := repo.recorded()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].SearchTerm != "lease" {
		t.Errorf("search_term = %q", entries[0].SearchTerm)
	}
	if entries[0].OccurredAt.IsZero() {
		t.Error("OccurredAt should be defaulted")
	}
}

func TestNotifySwallowsAppendErrors(t *testing.T) {
	repo := newMockAppender()
	repo.err = errors.New("stream full")
	svc := New(repo, zap.NewNop(), time.Second)

	// Must not panic or block.
	svc.Notify(activity.Entry{EventType: activity.EventSearch})
	waitFor(t, repo.done)
}

func TestRecordSynchronous(t *testing.T) {
	repo := newMockAppender()
	svc := New(repo, zap.NewNop(), time.Second)

	e := activity.Entry{
		EventType:  activity.EventDocumentPreview,
		DocumentID: "doc-1",
		OccurredAt: time.Now().UTC(),
	}
	if err := svc.Record(context.Background(), e); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(repo.recorded()) != 1 {
		t.Fatal("entry not persisted")
	}
}

func TestRecordPropagatesError(t *testing.T) {
	repo := newMockAppender()
	repo.err = errors.New("stream unavailable")
	svc := New(repo, zap.NewNop(), time.Second)

	err := svc.Record(context.Background(), activity.Entry{EventType: activity.EventSearch})
	if err == nil {
		t.Fatal("expected error from synchronous record")
	}
}
