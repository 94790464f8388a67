package runtime

import (
	"context"
	"sync"

	solanago "github.com/gagliardetto/solana-go"
)

// Store holds committed account state.
type Store interface {
	// GetAccount returns a copy of the account or ErrAccountNotFound.
	GetAccount(ctx context.Context, key solanago.PublicKey) (*Account, error)
	// Commit applies every change or none of them. A nil account deletes the key.
	Commit(ctx context.Context, changes map[solanago.PublicKey]*Account) error
	Close() error
}

type MemStore struct {
	mu       sync.RWMutex
	accounts map[solanago.PublicKey]*Account
}

func NewMemStore() *MemStore {
	return &MemStore{accounts: make(map[solanago.PublicKey]*Account)}
}

func (s *MemStore) GetAccount(_ context.Context, key solanago.PublicKey) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[key]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return acct.Clone(), nil
}

func (s *MemStore) Commit(_ context.Context, changes map[solanago.PublicKey]*Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, acct := range changes {
		if acct == nil {
			delete(s.accounts, key)
			continue
		}
		s.accounts[key] = acct.Clone()
	}
	return nil
}

func (s *MemStore) Close() error {
	return nil
}
