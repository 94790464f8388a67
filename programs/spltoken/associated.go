package spltoken

import (
	"errors"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/krazyTry/nft-fraction-go/runtime"
	"github.com/krazyTry/nft-fraction-go/solana"
)

var ErrAssociatedAddressMismatch = errors.New("associated token address does not match")

// AssociatedProcessor executes associated token account instructions.
type AssociatedProcessor struct {
	accounts solana.AccountLayout
}

func NewAssociatedProcessor() *AssociatedProcessor {
	return &AssociatedProcessor{}
}

func (p *AssociatedProcessor) Process(ic *runtime.InvokeContext, data []byte) error {
	idempotent := false
	switch {
	case len(data) == 0 || data[0] == AssociatedCreate:
	case data[0] == AssociatedCreateIdempotent:
		idempotent = true
	default:
		return fmt.Errorf("%w: associated tag %d", ErrInvalidInstruction, data[0])
	}

	keys, err := accountKeys(ic, 6)
	if err != nil {
		return err
	}
	payer, ata, wallet, mint, tokenProgram := keys[0], keys[1], keys[2], keys[3], keys[5]
	if !tokenProgram.Equals(ProgramID) {
		return fmt.Errorf("%w: unsupported token program %s", ErrInvalidAccount, tokenProgram)
	}
	if !ic.IsSigner(payer) {
		return fmt.Errorf("%w: %s", runtime.ErrMissingSignature, payer)
	}

	expected, bump, err := findAssociatedTokenAddress(wallet, mint, tokenProgram)
	if err != nil {
		return err
	}
	if !expected.Equals(ata) {
		return fmt.Errorf("%w: got %s, want %s", ErrAssociatedAddressMismatch, ata, expected)
	}

	exists, err := ic.Exists(ata)
	if err != nil {
		return err
	}
	if exists {
		if !idempotent {
			return fmt.Errorf("%w: %s", runtime.ErrAccountAlreadyExists, ata)
		}
		return p.checkExisting(ic, ata, wallet, mint, tokenProgram)
	}

	ix := NewInitializeAccount3Instruction(ata, mint, wallet)
	seeds := [][]byte{wallet.Bytes(), tokenProgram.Bytes(), mint.Bytes(), {bump}}
	if err := ic.Invoke(ix, seeds); err != nil {
		return err
	}
	ic.Logger().Debug("associated token account created",
		zap.Stringer("account", ata),
		zap.Stringer("wallet", wallet),
		zap.Stringer("mint", mint),
	)
	return nil
}

func (p *AssociatedProcessor) checkExisting(ic *runtime.InvokeContext, ata, wallet, mint, tokenProgram solanago.PublicKey) error {
	acct, err := ic.GetAccount(ata)
	if err != nil {
		return err
	}
	if !acct.Owner.Equals(tokenProgram) {
		return fmt.Errorf("%w: %s", ErrInvalidAccount, ata)
	}
	account, err := p.accounts.Decode(acct.Data)
	if err != nil {
		return err
	}
	if !account.Owner.Equals(wallet) {
		return fmt.Errorf("%w: %s", ErrOwnerMismatch, ata)
	}
	if !account.Mint.Equals(mint) {
		return fmt.Errorf("%w: %s", ErrMintMismatch, ata)
	}
	return nil
}
