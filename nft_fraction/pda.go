package nftfraction

import (
	solanago "github.com/gagliardetto/solana-go"

	fractiongen "github.com/krazyTry/nft-fraction-go/gen/nft_fraction"
	"github.com/krazyTry/nft-fraction-go/programs/metadata"
)

func nftVaultSeeds(fractionMint solanago.PublicKey) [][]byte {
	return [][]byte{[]byte(NftVaultSeed), fractionMint.Bytes()}
}

func fractionSeeds(vault solanago.PublicKey) [][]byte {
	return [][]byte{[]byte(FractionSeed), vault.Bytes()}
}

func withBump(seeds [][]byte, bump uint8) [][]byte {
	return append(seeds, []byte{bump})
}

// DeriveNftVaultAddress returns the escrow token account for a fraction mint.
func DeriveNftVaultAddress(fractionMint solanago.PublicKey) (solanago.PublicKey, uint8, error) {
	return solanago.FindProgramAddress(nftVaultSeeds(fractionMint), fractiongen.ProgramID)
}

// DeriveFractionAddress returns the ledger address, which is also the
// issuance authority, for a vault.
func DeriveFractionAddress(vault solanago.PublicKey) (solanago.PublicKey, uint8, error) {
	return solanago.FindProgramAddress(fractionSeeds(vault), fractiongen.ProgramID)
}

func DeriveMetadataAddress(fractionMint solanago.PublicKey) (solanago.PublicKey, error) {
	pda, _, err := metadata.DeriveMetadataAddress(fractionMint)
	return pda, err
}

// FractionAccounts holds every address derived from one fraction mint.
type FractionAccounts struct {
	FractionMint solanago.PublicKey
	Vault        solanago.PublicKey
	VaultBump    uint8
	Fraction     solanago.PublicKey
	FractionBump uint8
	Metadata     solanago.PublicKey
}

func DeriveFractionAccounts(fractionMint solanago.PublicKey) (*FractionAccounts, error) {
	return DeriveFractionAccountsFor(fractiongen.ProgramID, fractionMint)
}

// DeriveFractionAccountsFor derives the accounts of a fraction program
// deployed at programID.
func DeriveFractionAccountsFor(programID, fractionMint solanago.PublicKey) (*FractionAccounts, error) {
	vault, vaultBump, err := solanago.FindProgramAddress(nftVaultSeeds(fractionMint), programID)
	if err != nil {
		return nil, err
	}
	fraction, fractionBump, err := solanago.FindProgramAddress(fractionSeeds(vault), programID)
	if err != nil {
		return nil, err
	}
	md, err := DeriveMetadataAddress(fractionMint)
	if err != nil {
		return nil, err
	}
	return &FractionAccounts{
		FractionMint: fractionMint,
		Vault:        vault,
		VaultBump:    vaultBump,
		Fraction:     fraction,
		FractionBump: fractionBump,
		Metadata:     md,
	}, nil
}
