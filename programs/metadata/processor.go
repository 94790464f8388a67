package metadata

import (
	"fmt"

	binary "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/krazyTry/nft-fraction-go/runtime"
	"github.com/krazyTry/nft-fraction-go/solana"
)

// Processor registers token metadata. Only the current mint authority of a
// mint may register its metadata.
type Processor struct {
	tokenProgram solanago.PublicKey
	mints        solana.TokenLayout
}

func NewProcessor() *Processor {
	return &Processor{tokenProgram: solanago.TokenProgramID}
}

func (p *Processor) Process(ic *runtime.InvokeContext, data []byte) error {
	if len(data) == 0 || data[0] != InstructionCreateMetadata {
		return ErrInvalidInstruction
	}
	args := new(Data)
	if err := binary.NewBorshDecoder(data[1:]).Decode(args); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInstruction, err)
	}
	if err := args.Validate(); err != nil {
		return err
	}

	var keys [5]solanago.PublicKey
	for i := range keys {
		key, err := ic.AccountAt(i)
		if err != nil {
			return err
		}
		keys[i] = key
	}
	metadataKey, mintKey, mintAuthority, payer, updateAuthority := keys[0], keys[1], keys[2], keys[3], keys[4]

	expected, bump, err := DeriveMetadataAddress(mintKey)
	if err != nil {
		return err
	}
	if !expected.Equals(metadataKey) {
		return fmt.Errorf("%w: got %s, want %s", ErrAddressMismatch, metadataKey, expected)
	}
	if !ic.IsSigner(payer) {
		return fmt.Errorf("%w: %s", runtime.ErrMissingSignature, payer)
	}

	acct, err := ic.GetAccount(mintKey)
	if err != nil {
		return fmt.Errorf("mint %s: %w", mintKey, err)
	}
	if !acct.Owner.Equals(p.tokenProgram) {
		return fmt.Errorf("%w: mint %s not owned by the token program", ErrInvalidMetadata, mintKey)
	}
	mint, err := p.mints.Decode(acct.Data)
	if err != nil {
		return err
	}
	if mint.MintAuthority == nil || !mint.MintAuthority.Equals(mintAuthority) || !ic.IsSigner(mintAuthority) {
		return fmt.Errorf("%w: %s", ErrMintAuthority, mintAuthority)
	}

	record := &Metadata{
		Key:             keyMetadataV1,
		UpdateAuthority: updateAuthority,
		Mint:            mintKey,
		Data:            *args,
	}
	raw, err := record.Marshal()
	if err != nil {
		return err
	}
	seeds := append(metadataSeeds(mintKey), []byte{bump})
	if err := ic.CreateAccount(metadataKey, raw, seeds); err != nil {
		return err
	}
	ic.Logger().Debug("metadata created",
		zap.Stringer("mint", mintKey),
		zap.String("name", args.Name),
		zap.String("symbol", args.Symbol),
	)
	return nil
}
