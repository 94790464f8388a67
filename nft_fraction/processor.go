package nftfraction

import (
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	fractiongen "github.com/krazyTry/nft-fraction-go/gen/nft_fraction"
	"github.com/krazyTry/nft-fraction-go/programs/metadata"
	"github.com/krazyTry/nft-fraction-go/programs/spltoken"
	"github.com/krazyTry/nft-fraction-go/runtime"
	"github.com/krazyTry/nft-fraction-go/solana"
)

type ProgramOption func(*Program)

func WithLogger(logger *zap.Logger) ProgramOption {
	return func(p *Program) {
		p.logger = logger
	}
}

// Program processes fractionalize_nft and mint_fraction.
type Program struct {
	logger          *zap.Logger
	tokenProgram    solanago.PublicKey
	ataProgram      solanago.PublicKey
	metadataProgram solanago.PublicKey
	mints           solana.TokenLayout
	accounts        solana.AccountLayout
}

func NewProgram(opts ...ProgramOption) *Program {
	p := &Program{
		logger:          zap.NewNop(),
		tokenProgram:    spltoken.ProgramID,
		ataProgram:      spltoken.AssociatedProgramID,
		metadataProgram: metadata.ProgramID,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Program) Process(ic *runtime.InvokeContext, data []byte) error {
	_, args, err := fractiongen.DecodeInstruction(data)
	if err != nil {
		return newError(ErrInvalidArgument, "%v", err)
	}
	switch a := args.(type) {
	case *fractiongen.FractionalizeNftArgs:
		return p.fractionalizeNft(ic, a)
	case *fractiongen.MintFractionArgs:
		return p.mintFraction(ic, a)
	default:
		return newError(ErrInvalidArgument, "unhandled instruction %T", args)
	}
}

// RegisterPrograms installs the fraction program and the programs it calls
// into on e.
func RegisterPrograms(e *runtime.Executor, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fractiongen.ProgramID.IsZero() {
		return fmt.Errorf("fraction program id is not set")
	}
	e.Register(spltoken.ProgramID, spltoken.NewProcessor())
	e.Register(spltoken.AssociatedProgramID, spltoken.NewAssociatedProcessor())
	e.Register(metadata.ProgramID, metadata.NewProcessor())
	e.Register(fractiongen.ProgramID, NewProgram(WithLogger(logger.Named("nft_fraction"))))
	return nil
}
