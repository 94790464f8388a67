package nftfraction

import (
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	fractiongen "github.com/krazyTry/nft-fraction-go/gen/nft_fraction"
)

func TestDeriveAddressesDeterministic(t *testing.T) {
	require := require.New(t)
	fractionMint := solanago.NewWallet().PublicKey()

	vault1, bump1, err := DeriveNftVaultAddress(fractionMint)
	require.NoError(err)
	vault2, bump2, err := DeriveNftVaultAddress(fractionMint)
	require.NoError(err)
	require.Equal(vault1, vault2)
	require.Equal(bump1, bump2)
	require.False(vault1.IsOnCurve())

	fraction1, fbump1, err := DeriveFractionAddress(vault1)
	require.NoError(err)
	fraction2, fbump2, err := DeriveFractionAddress(vault2)
	require.NoError(err)
	require.Equal(fraction1, fraction2)
	require.Equal(fbump1, fbump2)

	// the bump re-derives the same address
	again, err := solanago.CreateProgramAddress(withBump(fractionSeeds(vault1), fbump1), fractiongen.ProgramID)
	require.NoError(err)
	require.Equal(fraction1, again)

	accounts, err := DeriveFractionAccounts(fractionMint)
	require.NoError(err)
	require.Equal(vault1, accounts.Vault)
	require.Equal(fraction1, accounts.Fraction)

	other, _, err := DeriveNftVaultAddress(solanago.NewWallet().PublicKey())
	require.NoError(err)
	require.NotEqual(vault1, other)
}

func TestStateOf(t *testing.T) {
	require.Equal(t, FractionStateVaulted, StateOf(nil))
	require.Equal(t, "vaulted", StateOf(nil).String())

	d := &FractionDetails{AuthorizedShares: 10}
	require.Equal(t, FractionStateFractionalized, StateOf(d))
	require.Equal(t, uint64(10), RemainingShares(d))
	d.IssuedShares = 4
	require.Equal(t, FractionStateFractionalized, StateOf(d))
	d.IssuedShares = 10
	require.Equal(t, FractionStateFullyIssued, StateOf(d))
	require.Equal(t, uint64(0), RemainingShares(d))
	require.Equal(t, "fully_issued", StateOf(d).String())
}
