package nftfraction_test

import (
	"context"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/krazyTry/nft-fraction-go/fraction"
	fractiongen "github.com/krazyTry/nft-fraction-go/gen/nft_fraction"
	nftfraction "github.com/krazyTry/nft-fraction-go/nft_fraction"
	"github.com/krazyTry/nft-fraction-go/programs/metadata"
	"github.com/krazyTry/nft-fraction-go/programs/spltoken"
	"github.com/krazyTry/nft-fraction-go/runtime"
)

type testEnv struct {
	t        *testing.T
	ctx      context.Context
	store    runtime.Store
	executor *runtime.Executor
	state    *fraction.LocalState
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := runtime.NewMemStore()
	logger := zaptest.NewLogger(t)
	e, err := runtime.NewExecutor(store, runtime.WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, nftfraction.RegisterPrograms(e, logger))
	return &testEnv{
		t:        t,
		ctx:      context.Background(),
		store:    store,
		executor: e,
		state:    fraction.NewLocalState(store),
	}
}

func (env *testEnv) exec(signers []solanago.PublicKey, ixs ...solanago.Instruction) error {
	return env.executor.Execute(env.ctx, runtime.NewTransaction(signers, ixs...))
}

// seedNft gives holder a freshly minted asset and returns its mint and the
// holder's token account.
func (env *testEnv) seedNft(holder solanago.PublicKey) (solanago.PublicKey, solanago.PublicKey) {
	mint := solanago.NewWallet().PublicKey()
	ixs, ata, err := fraction.SeedNftInstructions(holder, mint)
	require.NoError(env.t, err)
	require.NoError(env.t, env.exec([]solanago.PublicKey{holder, mint}, ixs...))
	return mint, ata
}

type fractionalizeAccounts struct {
	user         solanago.PublicKey
	fraction     solanago.PublicKey
	vault        solanago.PublicKey
	nftMint      solanago.PublicKey
	userNft      solanago.PublicKey
	fractionMint solanago.PublicKey
	metadata     solanago.PublicKey
}

func (env *testEnv) defaultAccounts(user, nftMint, userNft, fractionMint solanago.PublicKey) fractionalizeAccounts {
	derived := mustDerive(env.t, fractionMint)
	return fractionalizeAccounts{
		user:         user,
		fraction:     derived.Fraction,
		vault:        derived.Vault,
		nftMint:      nftMint,
		userNft:      userNft,
		fractionMint: fractionMint,
		metadata:     derived.Metadata,
	}
}

func (env *testEnv) fractionalizeWith(shares uint64, accs fractionalizeAccounts) error {
	ix, err := fractiongen.NewFractionalizeNftInstruction(
		fractiongen.FractionalizeNftArgs{SharesAmount: shares, Name: "Fraction", Symbol: "FRAC", Uri: "https://example.com/fraction.json"},
		accs.user,
		accs.fraction,
		accs.vault,
		accs.nftMint,
		accs.userNft,
		accs.fractionMint,
		accs.metadata,
		spltoken.ProgramID,
		metadata.ProgramID,
		solanago.SystemProgramID,
	)
	require.NoError(env.t, err)
	return env.exec([]solanago.PublicKey{accs.user, accs.fractionMint}, ix)
}

func (env *testEnv) fractionalize(user, nftMint, userNft, fractionMint solanago.PublicKey, shares uint64) error {
	return env.fractionalizeWith(shares, env.defaultAccounts(user, nftMint, userNft, fractionMint))
}

// mint is called from several goroutines, so it reports build errors instead
// of failing the test.
func (env *testEnv) mint(user, fractionMint solanago.PublicKey, amount uint64) error {
	ix, err := fraction.MintFractionInstruction(user, fractionMint, amount)
	if err != nil {
		return err
	}
	return env.exec([]solanago.PublicKey{user}, ix)
}

func (env *testEnv) requireAbsent(key solanago.PublicKey) {
	env.t.Helper()
	_, err := env.store.GetAccount(env.ctx, key)
	require.ErrorIs(env.t, err, runtime.ErrAccountNotFound)
}

func mustDerive(t *testing.T, fractionMint solanago.PublicKey) *nftfraction.FractionAccounts {
	t.Helper()
	accounts, err := nftfraction.DeriveFractionAccounts(fractionMint)
	require.NoError(t, err)
	return accounts
}

