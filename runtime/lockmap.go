package runtime

import (
	"bytes"
	"sort"
	"sync"

	solanago "github.com/gagliardetto/solana-go"
)

type holderLock struct {
	holders int
	mu      sync.RWMutex
}

// Lockmap hands out one RWMutex per account key and forgets it once the last
// holder releases it.
type Lockmap struct {
	l sync.Mutex
	m map[solanago.PublicKey]*holderLock
}

func NewLockmap(initSize int) *Lockmap {
	return &Lockmap{
		m: make(map[solanago.PublicKey]*holderLock, initSize),
	}
}

func (l *Lockmap) Lock(key solanago.PublicKey) {
	l.lock(key, true)
}

func (l *Lockmap) Unlock(key solanago.PublicKey) {
	l.unlock(key, true)
}

func (l *Lockmap) RLock(key solanago.PublicKey) {
	l.lock(key, false)
}

func (l *Lockmap) RUnlock(key solanago.PublicKey) {
	l.unlock(key, false)
}

func (l *Lockmap) lock(key solanago.PublicKey, write bool) {
	l.l.Lock()
	hl, ok := l.m[key]
	if !ok {
		hl = &holderLock{}
		l.m[key] = hl
	}
	hl.holders++
	l.l.Unlock()

	if write {
		hl.mu.Lock()
	} else {
		hl.mu.RLock()
	}
}

func (l *Lockmap) unlock(key solanago.PublicKey, write bool) {
	l.l.Lock()
	hl := l.m[key]
	hl.holders--
	if hl.holders == 0 {
		delete(l.m, key)
	}
	l.l.Unlock()

	if write {
		hl.mu.Unlock()
	} else {
		hl.mu.RUnlock()
	}
}

// Locks returns the number of keys currently held or waited on.
func (l *Lockmap) Locks() int {
	l.l.Lock()
	defer l.l.Unlock()
	return len(l.m)
}

// LockAccounts locks every key in a global order, write locks for writable keys
// and read locks for the rest. The returned func releases them.
func (l *Lockmap) LockAccounts(writable map[solanago.PublicKey]bool) func() {
	keys := make([]solanago.PublicKey, 0, len(writable))
	for key := range writable {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i][:], keys[j][:]) < 0
	})
	for _, key := range keys {
		l.lock(key, writable[key])
	}
	return func() {
		for i := len(keys) - 1; i >= 0; i-- {
			l.unlock(keys[i], writable[keys[i]])
		}
	}
}
