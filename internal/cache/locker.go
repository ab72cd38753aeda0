package cache

import (
	"hash/maphash"
	"sync"
)

// locker serializes every operation on one asset name.
type locker struct {
	mu sync.Mutex
}

type lockerShard struct {
	mu      sync.Mutex
	lockers map[string]*locker
}

// lockerTable is a sharded map from asset name to locker.
type lockerTable struct {
	shards [numShards]lockerShard
	seed   maphash.Seed
}

func newLockerTable() *lockerTable {
	t := &lockerTable{seed: maphash.MakeSeed()}
	for i := range numShards {
		t.shards[i].lockers = make(map[string]*locker)
	}
	return t
}

func (t *lockerTable) shard(key string) *lockerShard {
	return &t.shards[maphash.String(t.seed, key)%numShards]
}

// lock acquires the locker for key, creating it if needed.
func (t *lockerTable) lock(key string) *locker {
	s := t.shard(key)
	for {
		s.mu.Lock()
		l, ok := s.lockers[key]
		if !ok {
			l = &locker{}
			s.lockers[key] = l
		}
		s.mu.Unlock()

		l.mu.Lock()
		if t.isCurrent(s, key, l) {
			return l
		}
		// Removed by Unload while we waited; take the name's new locker.
		l.mu.Unlock()
	}
}

// lockExisting acquires the locker for key only if one exists.
func (t *lockerTable) lockExisting(key string) (*locker, bool) {
	s := t.shard(key)
	for {
		s.mu.Lock()
		l, ok := s.lockers[key]
		s.mu.Unlock()
		if !ok {
			return nil, false
		}

		l.mu.Lock()
		if t.isCurrent(s, key, l) {
			return l, true
		}
		l.mu.Unlock()
	}
}

func (t *lockerTable) isCurrent(s *lockerShard, key string, l *locker) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lockers[key] == l
}

// remove drops l from the table. The caller must hold l.
func (t *lockerTable) remove(key string, l *locker) {
	s := t.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lockers[key] == l {
		delete(s.lockers, key)
	}
}

// reset drops every locker without acquiring any of them.
func (t *lockerTable) reset() {
	for i := range numShards {
		s := &t.shards[i]
		s.mu.Lock()
		s.lockers = make(map[string]*locker)
		s.mu.Unlock()
	}
}

func (t *lockerTable) len() int {
	var n int
	for i := range numShards {
		s := &t.shards[i]
		s.mu.Lock()
		n += len(s.lockers)
		s.mu.Unlock()
	}
	return n
}
