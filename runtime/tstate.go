package runtime

import (
	"context"
	"errors"

	solanago "github.com/gagliardetto/solana-go"
)

// TState buffers the account changes of one transaction on top of a Store.
// Nothing reaches the store until Commit.
type TState struct {
	store   Store
	changed map[solanago.PublicKey]*Account
}

func NewTState(store Store, changedSize int) *TState {
	return &TState{
		store:   store,
		changed: make(map[solanago.PublicKey]*Account, changedSize),
	}
}

func (ts *TState) GetAccount(ctx context.Context, key solanago.PublicKey) (*Account, error) {
	if acct, ok := ts.changed[key]; ok {
		if acct == nil {
			return nil, ErrAccountNotFound
		}
		return acct.Clone(), nil
	}
	return ts.store.GetAccount(ctx, key)
}

func (ts *TState) Exists(ctx context.Context, key solanago.PublicKey) (bool, error) {
	_, err := ts.GetAccount(ctx, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrAccountNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (ts *TState) Insert(key solanago.PublicKey, acct *Account) {
	ts.changed[key] = acct.Clone()
}

// PendingChanges returns the number of accounts touched so far.
func (ts *TState) PendingChanges() int {
	return len(ts.changed)
}

func (ts *TState) Commit(ctx context.Context) error {
	if len(ts.changed) == 0 {
		return nil
	}
	return ts.store.Commit(ctx, ts.changed)
}
