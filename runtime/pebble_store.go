package runtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	solanago "github.com/gagliardetto/solana-go"
)

const accountPrefix byte = 0x00

// PebbleStore persists accounts in a pebble database. Each commit is written as
// a single synced batch.
type PebbleStore struct {
	db *pebble.DB
}

func OpenPebbleStore(dir string, opts *pebble.Options) (*PebbleStore, error) {
	if opts == nil {
		opts = &pebble.Options{}
	}
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("open pebble store %s: %w", dir, err)
	}
	return &PebbleStore{db: db}, nil
}

func accountKey(key solanago.PublicKey) []byte {
	k := make([]byte, 1+solanago.PublicKeyLength)
	k[0] = accountPrefix
	copy(k[1:], key[:])
	return k
}

func (s *PebbleStore) GetAccount(ctx context.Context, key solanago.PublicKey) (*Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, closer, err := s.db.Get(accountKey(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	// raw is only valid until closer is closed.
	buf := make([]byte, len(raw))
	copy(buf, raw)
	closer.Close()
	acct, err := UnmarshalAccount(buf)
	if err != nil {
		return nil, fmt.Errorf("decode account %s: %w", key, err)
	}
	return acct, nil
}

func (s *PebbleStore) Commit(ctx context.Context, changes map[solanago.PublicKey]*Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	batch := s.db.NewBatch()
	defer batch.Close()
	for key, acct := range changes {
		if acct == nil {
			if err := batch.Delete(accountKey(key), nil); err != nil {
				return err
			}
			continue
		}
		raw, err := acct.Marshal()
		if err != nil {
			return fmt.Errorf("encode account %s: %w", key, err)
		}
		if err := batch.Set(accountKey(key), raw, nil); err != nil {
			return err
		}
	}
	return batch.Commit(pebble.Sync)
}

func (s *PebbleStore) Close() error {
	return s.db.Close()
}
