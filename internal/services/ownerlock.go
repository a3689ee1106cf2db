package services

import "sync"

// ownerLocks serializes writes that derive a version from an owner's current
// state. Entries are dropped once nobody holds or waits for them.
type ownerLocks struct {
	mu   sync.Mutex
	held map[string]*ownerLock
}

type ownerLock struct {
	sync.Mutex
	refs int
}

func (l *ownerLocks) lock(ownerID string) (unlock func()) {
	l.mu.Lock()
	if l.held == nil {
		l.held = make(map[string]*ownerLock)
	}
	ol := l.held[ownerID]
	if ol == nil {
		ol = &ownerLock{}
		l.held[ownerID] = ol
	}
	ol.refs++
	l.mu.Unlock()

	ol.Lock()
	return func() {
		ol.Unlock()
		l.mu.Lock()
		ol.refs--
		if ol.refs == 0 {
			delete(l.held, ownerID)
		}
		l.mu.Unlock()
	}
}
