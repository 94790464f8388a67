package spltoken

import (
	"errors"
	"fmt"
	"math"

	binary "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/krazyTry/nft-fraction-go/runtime"
	"github.com/krazyTry/nft-fraction-go/solana"
)

var (
	ErrInvalidInstruction = errors.New("invalid token instruction")
	ErrInvalidAccount     = errors.New("account is not a token program account")
	ErrUninitialized      = errors.New("token state is not initialized")
	ErrOwnerMismatch      = errors.New("owner does not match")
	ErrMintMismatch       = errors.New("account does not belong to mint")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrAccountFrozen      = errors.New("account is frozen")
	ErrFixedSupply        = errors.New("mint has no mint authority")
	ErrOverflow           = errors.New("operation overflowed")
)

// Processor executes SPL token instructions.
type Processor struct {
	mints    solana.TokenLayout
	accounts solana.AccountLayout
}

func NewProcessor() *Processor {
	return &Processor{}
}

func (p *Processor) Process(ic *runtime.InvokeContext, data []byte) error {
	if len(data) == 0 {
		return ErrInvalidInstruction
	}
	dec := binary.NewBinDecoder(data[1:])
	switch data[0] {
	case InstructionInitializeMint2:
		return p.initializeMint(ic, dec)
	case InstructionInitializeAccount3:
		return p.initializeAccount(ic, dec)
	case InstructionTransfer:
		amount, err := dec.ReadUint64(binary.LE)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInstruction, err)
		}
		return p.transfer(ic, amount)
	case InstructionMintTo:
		amount, err := dec.ReadUint64(binary.LE)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInstruction, err)
		}
		return p.mintTo(ic, amount)
	default:
		return fmt.Errorf("%w: tag %d", ErrInvalidInstruction, data[0])
	}
}

func readKey(dec *binary.Decoder) (solanago.PublicKey, error) {
	raw, err := dec.ReadNBytes(solanago.PublicKeyLength)
	if err != nil {
		return solanago.PublicKey{}, fmt.Errorf("%w: %v", ErrInvalidInstruction, err)
	}
	return solanago.PublicKeyFromBytes(raw), nil
}

func (p *Processor) initializeMint(ic *runtime.InvokeContext, dec *binary.Decoder) error {
	mint, err := ic.AccountAt(0)
	if err != nil {
		return err
	}
	decimals, err := dec.ReadUint8()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInstruction, err)
	}
	authority, err := readKey(dec)
	if err != nil {
		return err
	}
	token := &solana.Token{
		MintAuthority: &authority,
		Decimals:      decimals,
		IsInitialized: true,
	}
	option, err := dec.ReadUint8()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInstruction, err)
	}
	if option == 1 {
		freeze, err := readKey(dec)
		if err != nil {
			return err
		}
		token.FreezeAuthority = &freeze
	}
	raw, err := p.mints.Encode(token)
	if err != nil {
		return err
	}
	if err := ic.CreateAccount(mint, raw, nil); err != nil {
		return err
	}
	ic.Logger().Debug("mint initialized",
		zap.Stringer("mint", mint),
		zap.Stringer("authority", authority),
		zap.Uint8("decimals", decimals),
	)
	return nil
}

func (p *Processor) initializeAccount(ic *runtime.InvokeContext, dec *binary.Decoder) error {
	account, err := ic.AccountAt(0)
	if err != nil {
		return err
	}
	mintKey, err := ic.AccountAt(1)
	if err != nil {
		return err
	}
	owner, err := readKey(dec)
	if err != nil {
		return err
	}
	if _, err := p.loadMint(ic, mintKey); err != nil {
		return err
	}
	raw, err := p.accounts.Encode(&solana.Account{
		Mint:          mintKey,
		Owner:         owner,
		IsInitialized: true,
	})
	if err != nil {
		return err
	}
	return ic.CreateAccount(account, raw, nil)
}

func (p *Processor) transfer(ic *runtime.InvokeContext, amount uint64) error {
	keys, err := accountKeys(ic, 3)
	if err != nil {
		return err
	}
	sourceKey, destinationKey, owner := keys[0], keys[1], keys[2]
	source, err := p.loadAccount(ic, sourceKey)
	if err != nil {
		return err
	}
	destination, err := p.loadAccount(ic, destinationKey)
	if err != nil {
		return err
	}
	if !source.Owner.Equals(owner) {
		return fmt.Errorf("%w: %s is not the owner of %s", ErrOwnerMismatch, owner, sourceKey)
	}
	if !ic.IsSigner(owner) {
		return fmt.Errorf("%w: %s", runtime.ErrMissingSignature, owner)
	}
	if source.IsFrozen || destination.IsFrozen {
		return ErrAccountFrozen
	}
	if !source.Mint.Equals(destination.Mint) {
		return fmt.Errorf("%w: %s", ErrMintMismatch, destinationKey)
	}
	if source.Amount < amount {
		return fmt.Errorf("%w: have %d, want %d", ErrInsufficientFunds, source.Amount, amount)
	}
	if sourceKey.Equals(destinationKey) {
		return nil
	}
	if destination.Amount > math.MaxUint64-amount {
		return ErrOverflow
	}
	source.Amount -= amount
	destination.Amount += amount
	if err := p.storeAccount(ic, sourceKey, source); err != nil {
		return err
	}
	return p.storeAccount(ic, destinationKey, destination)
}

func (p *Processor) mintTo(ic *runtime.InvokeContext, amount uint64) error {
	keys, err := accountKeys(ic, 3)
	if err != nil {
		return err
	}
	mintKey, destinationKey, authority := keys[0], keys[1], keys[2]
	mint, err := p.loadMint(ic, mintKey)
	if err != nil {
		return err
	}
	destination, err := p.loadAccount(ic, destinationKey)
	if err != nil {
		return err
	}
	if mint.MintAuthority == nil {
		return ErrFixedSupply
	}
	if !mint.MintAuthority.Equals(authority) {
		return fmt.Errorf("%w: %s is not the mint authority", ErrOwnerMismatch, authority)
	}
	if !ic.IsSigner(authority) {
		return fmt.Errorf("%w: %s", runtime.ErrMissingSignature, authority)
	}
	if !destination.Mint.Equals(mintKey) {
		return fmt.Errorf("%w: %s", ErrMintMismatch, destinationKey)
	}
	if destination.IsFrozen {
		return ErrAccountFrozen
	}
	if mint.Supply > math.MaxUint64-amount || destination.Amount > math.MaxUint64-amount {
		return ErrOverflow
	}
	mint.Supply += amount
	destination.Amount += amount

	raw, err := p.mints.Encode(mint)
	if err != nil {
		return err
	}
	if err := ic.SetAccountData(mintKey, raw); err != nil {
		return err
	}
	return p.storeAccount(ic, destinationKey, destination)
}

func accountKeys(ic *runtime.InvokeContext, n int) ([]solanago.PublicKey, error) {
	keys := make([]solanago.PublicKey, n)
	for i := range keys {
		key, err := ic.AccountAt(i)
		if err != nil {
			return nil, err
		}
		keys[i] = key
	}
	return keys, nil
}

func (p *Processor) loadMint(ic *runtime.InvokeContext, key solanago.PublicKey) (*solana.Token, error) {
	acct, err := ic.GetAccount(key)
	if err != nil {
		return nil, fmt.Errorf("mint %s: %w", key, err)
	}
	if !acct.Owner.Equals(ic.ProgramID()) || len(acct.Data) != solana.MintLen {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAccount, key)
	}
	mint, err := p.mints.Decode(acct.Data)
	if err != nil {
		return nil, err
	}
	if !mint.IsInitialized {
		return nil, fmt.Errorf("%w: %s", ErrUninitialized, key)
	}
	mint.Owner = acct.Owner
	return mint, nil
}

func (p *Processor) loadAccount(ic *runtime.InvokeContext, key solanago.PublicKey) (*solana.Account, error) {
	acct, err := ic.GetAccount(key)
	if err != nil {
		return nil, fmt.Errorf("token account %s: %w", key, err)
	}
	if !acct.Owner.Equals(ic.ProgramID()) || len(acct.Data) != solana.TokenAccountLen {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAccount, key)
	}
	account, err := p.accounts.Decode(acct.Data)
	if err != nil {
		return nil, err
	}
	if !account.IsInitialized {
		return nil, fmt.Errorf("%w: %s", ErrUninitialized, key)
	}
	return account, nil
}

func (p *Processor) storeAccount(ic *runtime.InvokeContext, key solanago.PublicKey, account *solana.Account) error {
	raw, err := p.accounts.Encode(account)
	if err != nil {
		return err
	}
	return ic.SetAccountData(key, raw)
}
