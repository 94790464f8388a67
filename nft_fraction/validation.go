package nftfraction

import (
	solanago "github.com/gagliardetto/solana-go"

	fractiongen "github.com/krazyTry/nft-fraction-go/gen/nft_fraction"
	"github.com/krazyTry/nft-fraction-go/programs/metadata"
	"github.com/krazyTry/nft-fraction-go/runtime"
	"github.com/krazyTry/nft-fraction-go/solana"
)

func accountKeys(ic *runtime.InvokeContext, n int) ([]solanago.PublicKey, error) {
	keys := make([]solanago.PublicKey, n)
	for i := range keys {
		key, err := ic.AccountAt(i)
		if err != nil {
			return nil, newError(ErrInvalidArgument, "%v", err)
		}
		keys[i] = key
	}
	return keys, nil
}

func expectAddress(name string, got, want solanago.PublicKey) error {
	if !got.Equals(want) {
		return newError(ErrAddressMismatch, "%s: got %s, want %s", name, got, want)
	}
	return nil
}

func requireSigner(ic *runtime.InvokeContext, name string, key solanago.PublicKey) error {
	if !ic.IsSigner(key) {
		return newError(ErrAuthorizationFailure, "%s %s must sign", name, key)
	}
	return nil
}

func requireWritable(ic *runtime.InvokeContext, name string, key solanago.PublicKey) error {
	if !ic.IsWritable(key) {
		return newError(ErrInvalidArgument, "%s %s must be writable", name, key)
	}
	return nil
}

func requireAbsent(ic *runtime.InvokeContext, name string, key solanago.PublicKey) error {
	exists, err := ic.Exists(key)
	if err != nil {
		return err
	}
	if exists {
		return newError(ErrInvalidState, "%s %s already exists", name, key)
	}
	return nil
}

func validateFractionalizeArgs(args *fractiongen.FractionalizeNftArgs) error {
	if args.SharesAmount == 0 {
		return newError(ErrInvalidArgument, "shares amount must be positive")
	}
	md := metadata.Data{Name: args.Name, Symbol: args.Symbol, Uri: args.Uri}
	if err := md.Validate(); err != nil {
		return newError(ErrInvalidArgument, "%v", err)
	}
	return nil
}

func (p *Program) loadMint(ic *runtime.InvokeContext, name string, key solanago.PublicKey) (*solana.Token, error) {
	acct, err := ic.GetAccount(key)
	if runtime.IsNotFound(err) {
		return nil, newError(ErrInvalidState, "%s %s does not exist", name, key)
	}
	if err != nil {
		return nil, err
	}
	if !acct.Owner.Equals(p.tokenProgram) || len(acct.Data) != solana.MintLen {
		return nil, newError(ErrInvalidArgument, "%s %s is not a mint", name, key)
	}
	mint, err := p.mints.Decode(acct.Data)
	if err != nil {
		return nil, newError(ErrInvalidArgument, "%s %s: %v", name, key, err)
	}
	mint.Owner = acct.Owner
	return mint, nil
}

func (p *Program) loadTokenAccount(ic *runtime.InvokeContext, name string, key solanago.PublicKey) (*solana.Account, error) {
	acct, err := ic.GetAccount(key)
	if runtime.IsNotFound(err) {
		return nil, newError(ErrInvalidState, "%s %s does not exist", name, key)
	}
	if err != nil {
		return nil, err
	}
	if !acct.Owner.Equals(p.tokenProgram) || len(acct.Data) != solana.TokenAccountLen {
		return nil, newError(ErrInvalidArgument, "%s %s is not a token account", name, key)
	}
	account, err := p.accounts.Decode(acct.Data)
	if err != nil {
		return nil, newError(ErrInvalidArgument, "%s %s: %v", name, key, err)
	}
	return account, nil
}

// loadAssetAccount checks that the holder's account carries the asset and
// belongs to the caller.
func (p *Program) loadAssetAccount(ic *runtime.InvokeContext, key, assetMint, user solanago.PublicKey) (*solana.Account, error) {
	exists, err := ic.Exists(key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, newError(ErrAuthorizationFailure, "asset token account %s does not exist", key)
	}
	account, err := p.loadTokenAccount(ic, "asset token account", key)
	if err != nil {
		return nil, err
	}
	if !account.Mint.Equals(assetMint) {
		return nil, newError(ErrAddressMismatch, "asset token account %s holds mint %s, want %s", key, account.Mint, assetMint)
	}
	if !account.Owner.Equals(user) {
		return nil, newError(ErrAuthorizationFailure, "asset token account %s is owned by %s", key, account.Owner)
	}
	if account.IsFrozen {
		return nil, newError(ErrInvalidState, "asset token account %s is frozen", key)
	}
	if account.Amount < VaultAssetAmount {
		return nil, newError(ErrAuthorizationFailure, "asset token account %s does not hold the asset", key)
	}
	return account, nil
}

func (p *Program) loadDetails(ic *runtime.InvokeContext, key solanago.PublicKey) (*FractionDetails, error) {
	acct, err := ic.GetAccount(key)
	if runtime.IsNotFound(err) {
		return nil, newError(ErrInvalidState, "fraction account %s is not initialized", key)
	}
	if err != nil {
		return nil, err
	}
	if !acct.Owner.Equals(ic.ProgramID()) {
		return nil, newError(ErrInvalidState, "fraction account %s is owned by %s", key, acct.Owner)
	}
	details, err := fractiongen.ParseAccount_FractionDetails(acct.Data)
	if err != nil {
		return nil, newError(ErrInvalidState, "fraction account %s: %v", key, err)
	}
	return details, nil
}
