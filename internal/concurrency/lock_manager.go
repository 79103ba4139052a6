package concurrency

import (
	"sync"
)

// LockManager handles named in-flight markers. Unlike a mutex, a second
// caller for a busy key is turned away instead of queued.
type LockManager struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{inFlight: make(map[string]struct{})}
}

// TryAcquire marks key as busy. It returns a release func and true on success,
// or nil and false if the key is already held.
func (lm *LockManager) TryAcquire(key string) (func(), bool) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if _, busy := lm.inFlight[key]; busy {
		return nil, false
	}
	lm.inFlight[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			lm.mu.Lock()
			delete(lm.inFlight, key)
			lm.mu.Unlock()
		})
	}, true
}

// Busy reports whether key is currently held.
func (lm *LockManager) Busy(key string) bool {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	_, busy := lm.inFlight[key]
	return busy
}
