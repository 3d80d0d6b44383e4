package ledger

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// lockEntry is a per-character lock token. refs counts holders and waiters
// so idle entries can be dropped from the table.
type lockEntry struct {
	sem  *semaphore.Weighted
	refs int
}

// lockTable hands out one weight-1 semaphore per character. Waiters are
// served in arrival order.
type lockTable struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

func newLockTable() *lockTable {
	return &lockTable{
		entries: make(map[string]*lockEntry),
	}
}

// acquire blocks until the character's lock is held or ctx is done. The
// returned func releases the lock.
func (t *lockTable) acquire(ctx context.Context, id string) (func(), error) {
	t.mu.Lock()
	entry, ok := t.entries[id]
	if !ok {
		entry = &lockEntry{sem: semaphore.NewWeighted(1)}
		t.entries[id] = entry
	}
	entry.refs++
	t.mu.Unlock()

	if err := entry.sem.Acquire(ctx, 1); err != nil {
		t.drop(id, entry)
		return nil, err
	}

	return func() {
		entry.sem.Release(1)
		t.drop(id, entry)
	}, nil
}

func (t *lockTable) drop(id string, entry *lockEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(t.entries, id)
	}
}

// size is the number of characters with a holder or waiter
func (t *lockTable) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}
