package assign

import (
	"sort"
	"strings"
	"sync"
)

// keyedLocks serializes commit attempts per subject. Two concurrent
// attempts against the same pilot or drone would otherwise both observe
// "Available" and both write; locking the subject keys around the
// read-then-write sequence closes that window.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks every key in sorted order and returns the release
// function. Sorting gives a global lock order so two commits sharing a
// subject cannot deadlock.
func (k *keyedLocks) acquire(keys ...string) func() {
	normalized := make([]string, 0, len(keys))
	for _, key := range keys {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(key)))
	}
	sort.Strings(normalized)

	held := make([]*sync.Mutex, 0, len(normalized))
	for _, key := range normalized {
		k.mu.Lock()
		m, ok := k.locks[key]
		if !ok {
			m = &sync.Mutex{}
			k.locks[key] = m
		}
		k.mu.Unlock()
		m.Lock()
		held = append(held, m)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
