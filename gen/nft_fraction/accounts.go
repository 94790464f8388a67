package nftfraction

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	binary "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

const AccountKeyFractionDetails = "FractionDetails"

// FractionDetailsLen is the serialized size of a FractionDetails account,
// discriminator included.
const FractionDetailsLen = 8 + 1 + 32 + 32 + 32 + 8 + 8

// Field offsets inside a serialized FractionDetails account.
const (
	FractionDetailsBumpOffset             = 8
	FractionDetailsAssetMintOffset        = 9
	FractionDetailsVaultOffset            = 41
	FractionDetailsFractionMintOffset     = 73
	FractionDetailsAuthorizedSharesOffset = 105
	FractionDetailsIssuedSharesOffset     = 113
)

var (
	ErrInvalidAccountData = errors.New("unexpected account data")

	FractionDetailsDiscriminator = AccountDiscriminator(AccountKeyFractionDetails)
)

// FractionDetails is the ledger entry kept for one fractionalized NFT.
type FractionDetails struct {
	// Bump used to re-derive the ledger address.
	Bump uint8
	// Mint of the vaulted NFT.
	AssetMint solanago.PublicKey
	// Token account holding the NFT.
	Vault solanago.PublicKey
	// Mint of the fungible fraction token.
	FractionMint solanago.PublicKey
	// Total shares that may ever be minted.
	AuthorizedShares uint64
	// Shares minted so far.
	IssuedShares uint64
}

func AccountDiscriminator(name string) [8]byte {
	hash := sha256.Sum256([]byte("account:" + name))
	var out [8]byte
	copy(out[:], hash[:8])
	return out
}

func (d *FractionDetails) MarshalWithEncoder(encoder *binary.Encoder) error {
	if err := encoder.WriteBytes(FractionDetailsDiscriminator[:], false); err != nil {
		return err
	}
	if err := encoder.WriteUint8(d.Bump); err != nil {
		return err
	}
	for _, key := range []solanago.PublicKey{d.AssetMint, d.Vault, d.FractionMint} {
		if err := encoder.WriteBytes(key[:], false); err != nil {
			return err
		}
	}
	if err := encoder.WriteUint64(d.AuthorizedShares, binary.LE); err != nil {
		return err
	}
	return encoder.WriteUint64(d.IssuedShares, binary.LE)
}

func (d *FractionDetails) UnmarshalWithDecoder(decoder *binary.Decoder) (err error) {
	disc, err := decoder.ReadNBytes(8)
	if err != nil {
		return err
	}
	if !bytes.Equal(disc, FractionDetailsDiscriminator[:]) {
		return fmt.Errorf("%w: discriminator %x", ErrInvalidAccountData, disc)
	}
	if d.Bump, err = decoder.ReadUint8(); err != nil {
		return err
	}
	for _, key := range []*solanago.PublicKey{&d.AssetMint, &d.Vault, &d.FractionMint} {
		raw, err := decoder.ReadNBytes(32)
		if err != nil {
			return err
		}
		*key = solanago.PublicKeyFromBytes(raw)
	}
	if d.AuthorizedShares, err = decoder.ReadUint64(binary.LE); err != nil {
		return err
	}
	d.IssuedShares, err = decoder.ReadUint64(binary.LE)
	return err
}

// Marshal returns the on-chain representation of the ledger entry.
func (d *FractionDetails) Marshal() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Grow(FractionDetailsLen)
	if err := d.MarshalWithEncoder(binary.NewBorshEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ParseAccount_FractionDetails(data []byte) (*FractionDetails, error) {
	if len(data) < FractionDetailsLen {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrInvalidAccountData, len(data), FractionDetailsLen)
	}
	out := new(FractionDetails)
	if err := out.UnmarshalWithDecoder(binary.NewBorshDecoder(data)); err != nil {
		return nil, err
	}
	return out, nil
}
