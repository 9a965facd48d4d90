package engine

import "sync"

// lockEntry is one per-auction mutex plus a refcount so idle entries can be
// dropped from the registry.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// LockRegistry serializes writers per auction id. Bids on different
// auctions proceed fully in parallel; a bid and a scheduler transition on
// the same auction are strictly ordered through the same entry.
type LockRegistry struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

// NewLockRegistry creates an empty lock registry.
func NewLockRegistry() *LockRegistry {
	return &LockRegistry{locks: make(map[string]*lockEntry)}
}

// Lock acquires the mutex for the given auction id and returns the unlock
// function. The entry is removed once the last holder releases it.
func (r *LockRegistry) Lock(auctionID string) (unlock func()) {
	r.mu.Lock()
	entry, ok := r.locks[auctionID]
	if !ok {
		entry = &lockEntry{}
		r.locks[auctionID] = entry
	}
	entry.refs++
	r.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		r.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(r.locks, auctionID)
		}
		r.mu.Unlock()
	}
}
