package service

import "sync"

// itemLocks serializes the re-validate + commit sequence per physical
// unit. Two concurrent bookings may race to the same candidate; only
// the lock holder gets to commit it.
type itemLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newItemLocks() *itemLocks {
	return &itemLocks{locks: make(map[int64]*sync.Mutex)}
}

// lock acquires the mutex for the item and returns its unlock func.
func (l *itemLocks) lock(itemID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[itemID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[itemID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
