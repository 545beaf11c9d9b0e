package stripe

import "sync"

// LockManager serializes the processing of the webhook events that refer to
// the same checkout session, while sessions are processed in parallel. A key
// is forgotten once nobody holds or waits for it.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	sync.Mutex
	refs int
}

// NewLockManager creates a new lock manager
func NewLockManager() *LockManager {
	return &LockManager{locks: make(map[string]*keyLock)}
}

// Lock acquires the lock of the key and returns the function that releases
// it.
func (lm *LockManager) Lock(key string) func() {
	lm.mu.Lock()
	l, ok := lm.locks[key]
	if !ok {
		l = &keyLock{}
		lm.locks[key] = l
	}
	l.refs++
	lm.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		lm.mu.Lock()
		defer lm.mu.Unlock()
		if l.refs--; l.refs == 0 {
			delete(lm.locks, key)
		}
	}
}

// Len returns the number of keys locked or waited for.
func (lm *LockManager) Len() int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return len(lm.locks)
}
