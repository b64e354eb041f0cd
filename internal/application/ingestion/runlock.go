package ingestion

import "sync"

// runLocks serializes ingestion per instance: at most one run may be in
// flight for an instance at any time, across all triggers.
type runLocks struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newRunLocks() *runLocks {
	return &runLocks{active: make(map[string]struct{})}
}

// TryAcquire claims the lock for an instance. Returns false when a run
// already holds it.
func (l *runLocks) TryAcquire(instanceID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, held := l.active[instanceID]; held {
		return false
	}
	l.active[instanceID] = struct{}{}
	return true
}

// Release frees the lock for an instance
func (l *runLocks) Release(instanceID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.active, instanceID)
}
