package nftfraction

import (
	"encoding/binary"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestFractionDetailsLayout(t *testing.T) {
	require := require.New(t)
	d := &FractionDetails{
		Bump:             253,
		AssetMint:        solanago.NewWallet().PublicKey(),
		Vault:            solanago.NewWallet().PublicKey(),
		FractionMint:     solanago.NewWallet().PublicKey(),
		AuthorizedShares: 1_000_000,
		IssuedShares:     42,
	}
	raw, err := d.Marshal()
	require.NoError(err)
	require.Len(raw, FractionDetailsLen)

	require.Equal(FractionDetailsDiscriminator[:], raw[:8])
	require.Equal(byte(253), raw[FractionDetailsBumpOffset])
	require.Equal(d.AssetMint[:], raw[FractionDetailsAssetMintOffset:FractionDetailsAssetMintOffset+32])
	require.Equal(d.Vault[:], raw[FractionDetailsVaultOffset:FractionDetailsVaultOffset+32])
	require.Equal(d.FractionMint[:], raw[FractionDetailsFractionMintOffset:FractionDetailsFractionMintOffset+32])
	require.Equal(uint64(1_000_000), binary.LittleEndian.Uint64(raw[FractionDetailsAuthorizedSharesOffset:]))
	require.Equal(uint64(42), binary.LittleEndian.Uint64(raw[FractionDetailsIssuedSharesOffset:]))

	parsed, err := ParseAccount_FractionDetails(raw)
	require.NoError(err)
	require.Equal(d, parsed)
}

func TestParseFractionDetailsRejectsForeignData(t *testing.T) {
	_, err := ParseAccount_FractionDetails(make([]byte, FractionDetailsLen))
	require.ErrorIs(t, err, ErrInvalidAccountData)

	_, err = ParseAccount_FractionDetails(FractionDetailsDiscriminator[:])
	require.ErrorIs(t, err, ErrInvalidAccountData)
}

func TestDecodeInstructionUnknown(t *testing.T) {
	_, _, err := DecodeInstruction([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrInvalidInstructionData)

	_, _, err = DecodeInstruction(make([]byte, 16))
	require.ErrorIs(t, err, ErrInvalidInstructionData)
}
