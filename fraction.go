package nftfraction

import (
	"go.uber.org/zap"

	"github.com/krazyTry/nft-fraction-go/fraction"
	program "github.com/krazyTry/nft-fraction-go/nft_fraction"
	"github.com/krazyTry/nft-fraction-go/runtime"
)

// NewClient creates an RPC backed fraction client.
//
// Example:
//
// client := NewClient(rpcClient, rpc.CommitmentConfirmed)
//
// details, _ := client.GetFractionDetailsByMint(ctx, fractionMint)
//
// balance, _ := client.GetFractionBalance(ctx, owner, fractionMint)
var NewClient = fraction.NewClient

// NewLocalState reads fraction state from a runtime store.
var NewLocalState = fraction.NewLocalState

// NewLocalExecutor returns an executor over store with the fraction program and
// its collaborators registered.
//
// Example:
//
// executor, _ := NewLocalExecutor(runtime.NewMemStore(), logger)
//
// ix, _ := fraction.FractionalizeNftInstruction(user, nftMint, userNft, fractionMint, 1000, "Fraction", "FRAC", uri)
//
// executor.Execute(ctx, runtime.NewTransaction([]solana.PublicKey{user, fractionMint}, ix))
func NewLocalExecutor(store runtime.Store, logger *zap.Logger, opts ...runtime.Option) (*runtime.Executor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	executor, err := runtime.NewExecutor(store, append([]runtime.Option{runtime.WithLogger(logger)}, opts...)...)
	if err != nil {
		return nil, err
	}
	if err := program.RegisterPrograms(executor, logger); err != nil {
		return nil, err
	}
	return executor, nil
}
