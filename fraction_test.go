package nftfraction

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/nft-fraction-go/fraction"
	program "github.com/krazyTry/nft-fraction-go/nft_fraction"
	"github.com/krazyTry/nft-fraction-go/runtime"
)

func TestFractionOverPebble(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	fs := vfs.NewMem()

	store, err := runtime.OpenPebbleStore("accounts", &pebble.Options{FS: fs})
	require.NoError(err)
	registry := prometheus.NewRegistry()
	executor, err := NewLocalExecutor(store, nil, runtime.WithRegisterer(registry))
	require.NoError(err)

	holder := solanago.NewWallet().PublicKey()
	nftMint := solanago.NewWallet().PublicKey()
	seed, holderNft, err := fraction.SeedNftInstructions(holder, nftMint)
	require.NoError(err)
	require.NoError(executor.Execute(ctx, runtime.NewTransaction([]solanago.PublicKey{holder, nftMint}, seed...)))

	fractionMint := solanago.NewWallet().PublicKey()
	ix, err := fraction.FractionalizeNftInstruction(holder, nftMint, holderNft, fractionMint, 10, "Fraction", "FRAC", "")
	require.NoError(err)
	require.NoError(executor.Execute(ctx, runtime.NewTransaction([]solanago.PublicKey{holder, fractionMint}, ix)))

	ix, err = fraction.MintFractionInstruction(holder, fractionMint, 10)
	require.NoError(err)
	require.NoError(executor.Execute(ctx, runtime.NewTransaction([]solanago.PublicKey{holder}, ix)))

	ix, err = fraction.MintFractionInstruction(holder, fractionMint, 1)
	require.NoError(err)
	err = executor.Execute(ctx, runtime.NewTransaction([]solanago.PublicKey{holder}, ix))
	require.ErrorIs(err, program.ErrCapacityExceeded)

	require.NoError(testutil.GatherAndCompare(registry, strings.NewReader(`
# HELP runtime_transactions_executed number of transactions committed
# TYPE runtime_transactions_executed counter
runtime_transactions_executed 3
# HELP runtime_transactions_failed number of transactions rolled back
# TYPE runtime_transactions_failed counter
runtime_transactions_failed 1
`), "runtime_transactions_executed", "runtime_transactions_failed"))

	require.NoError(store.Close())
	reopened, err := runtime.OpenPebbleStore("accounts", &pebble.Options{FS: fs})
	require.NoError(err)
	defer reopened.Close()

	state := NewLocalState(reopened)
	details, err := state.GetFractionDetailsByMint(ctx, fractionMint)
	require.NoError(err)
	require.Equal(uint64(10), details.IssuedShares)
	require.Equal(uint64(10), details.AuthorizedShares)
	balance, err := state.GetFractionBalance(ctx, holder, fractionMint)
	require.NoError(err)
	require.Equal(uint64(10), balance)
}
