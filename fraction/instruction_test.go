package fraction

import (
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	fractiongen "github.com/krazyTry/nft-fraction-go/gen/nft_fraction"
	nftfraction "github.com/krazyTry/nft-fraction-go/nft_fraction"
)

func TestFractionalizeNftInstruction(t *testing.T) {
	require := require.New(t)
	user := solanago.NewWallet().PublicKey()
	nftMint := solanago.NewWallet().PublicKey()
	userNft := solanago.NewWallet().PublicKey()
	fractionMint := solanago.NewWallet().PublicKey()

	_, err := FractionalizeNftInstruction(user, nftMint, userNft, fractionMint, 0, "", "", "")
	require.ErrorIs(err, ErrInvalidShares)

	ix, err := FractionalizeNftInstruction(user, nftMint, userNft, fractionMint, 500, "Fraction", "FRAC", "uri")
	require.NoError(err)
	require.Equal(fractiongen.ProgramID, ix.ProgramID())

	derived, err := nftfraction.DeriveFractionAccounts(fractionMint)
	require.NoError(err)
	accounts := ix.Accounts()
	require.Len(accounts, fractiongen.FractionalizeNftAccountsLen)
	require.Equal(derived.Fraction, accounts[fractiongen.FractionalizeNftFractionAccount].PublicKey)
	require.Equal(derived.Vault, accounts[fractiongen.FractionalizeNftNftVault].PublicKey)
	require.Equal(derived.Metadata, accounts[fractiongen.FractionalizeNftFractionMetadata].PublicKey)
	require.True(accounts[fractiongen.FractionalizeNftUser].IsSigner)
	require.True(accounts[fractiongen.FractionalizeNftFractionMint].IsSigner)

	data, err := ix.Data()
	require.NoError(err)
	disc, args, err := fractiongen.DecodeInstruction(data)
	require.NoError(err)
	require.Equal(fractiongen.Instruction_FractionalizeNft, disc)
	require.Equal(&fractiongen.FractionalizeNftArgs{SharesAmount: 500, Name: "Fraction", Symbol: "FRAC", Uri: "uri"}, args)
}

func TestMintFractionInstruction(t *testing.T) {
	require := require.New(t)
	user := solanago.NewWallet().PublicKey()
	fractionMint := solanago.NewWallet().PublicKey()

	ix, err := MintFractionInstruction(user, fractionMint, 42)
	require.NoError(err)
	ata, err := UserFractionAccount(user, fractionMint)
	require.NoError(err)
	require.Equal(ata, ix.Accounts()[fractiongen.MintFractionUserTokenAccount].PublicKey)

	data, err := ix.Data()
	require.NoError(err)
	require.Equal(fractiongen.Instruction_MintFraction[:], data[:8])
	require.Equal([]byte{42, 0, 0, 0, 0, 0, 0, 0}, data[8:])
}
