package fraction

import (
	"context"
	"errors"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"

	fractiongen "github.com/krazyTry/nft-fraction-go/gen/nft_fraction"
	nftfraction "github.com/krazyTry/nft-fraction-go/nft_fraction"
	"github.com/krazyTry/nft-fraction-go/programs/metadata"
	"github.com/krazyTry/nft-fraction-go/runtime"
	"github.com/krazyTry/nft-fraction-go/solana"
)

// LocalState reads fraction state straight from a runtime store.
type LocalState struct {
	store runtime.Store
}

func NewLocalState(store runtime.Store) *LocalState {
	return &LocalState{store: store}
}

func (s *LocalState) GetFractionDetails(ctx context.Context, fractionAccount solanago.PublicKey) (*FractionDetails, error) {
	acct, err := s.store.GetAccount(ctx, fractionAccount)
	if runtime.IsNotFound(err) {
		return nil, fmt.Errorf("%w: %s", ErrFractionNotFound, fractionAccount)
	}
	if err != nil {
		return nil, err
	}
	if !acct.Owner.Equals(fractiongen.ProgramID) {
		return nil, fmt.Errorf("fraction account %s owned by %s", fractionAccount, acct.Owner)
	}
	return fractiongen.ParseAccount_FractionDetails(acct.Data)
}

func (s *LocalState) GetFractionDetailsByMint(ctx context.Context, fractionMint solanago.PublicKey) (*FractionDetails, error) {
	derived, err := nftfraction.DeriveFractionAccounts(fractionMint)
	if err != nil {
		return nil, err
	}
	return s.GetFractionDetails(ctx, derived.Fraction)
}

// GetFractionState reports the stage of fractionMint. A missing ledger is
// FractionStateVaulted.
func (s *LocalState) GetFractionState(ctx context.Context, fractionMint solanago.PublicKey) (nftfraction.FractionState, error) {
	details, err := s.GetFractionDetailsByMint(ctx, fractionMint)
	if errors.Is(err, ErrFractionNotFound) {
		return nftfraction.StateOf(nil), nil
	}
	if err != nil {
		return 0, err
	}
	return nftfraction.StateOf(details), nil
}

func (s *LocalState) GetMint(ctx context.Context, mint solanago.PublicKey) (*solana.Token, error) {
	acct, err := s.store.GetAccount(ctx, mint)
	if err != nil {
		return nil, fmt.Errorf("mint %s: %w", mint, err)
	}
	token, err := new(solana.TokenLayout).Decode(acct.Data)
	if err != nil {
		return nil, err
	}
	token.Owner = acct.Owner
	return token, nil
}

func (s *LocalState) GetTokenAccount(ctx context.Context, key solanago.PublicKey) (*solana.Account, error) {
	acct, err := s.store.GetAccount(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("token account %s: %w", key, err)
	}
	return new(solana.AccountLayout).Decode(acct.Data)
}

// GetFractionBalance returns the user's associated account balance, zero when
// the account does not exist.
func (s *LocalState) GetFractionBalance(ctx context.Context, owner, fractionMint solanago.PublicKey) (uint64, error) {
	ata, err := UserFractionAccount(owner, fractionMint)
	if err != nil {
		return 0, err
	}
	account, err := s.GetTokenAccount(ctx, ata)
	if runtime.IsNotFound(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return account.Amount, nil
}

func (s *LocalState) GetMetadata(ctx context.Context, mint solanago.PublicKey) (*metadata.Metadata, error) {
	key, _, err := metadata.DeriveMetadataAddress(mint)
	if err != nil {
		return nil, err
	}
	acct, err := s.store.GetAccount(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("metadata %s: %w", key, err)
	}
	return metadata.ParseMetadata(acct.Data)
}
