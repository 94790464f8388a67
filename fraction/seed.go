package fraction

import (
	solanago "github.com/gagliardetto/solana-go"

	nftfraction "github.com/krazyTry/nft-fraction-go/nft_fraction"
	"github.com/krazyTry/nft-fraction-go/programs/spltoken"
)

// SeedNftInstructions mints a single-unit, zero-decimal asset to holder. The
// returned instructions must be signed by holder and nftMint.
func SeedNftInstructions(holder, nftMint solanago.PublicKey) ([]solanago.Instruction, solanago.PublicKey, error) {
	ata, err := spltoken.FindAssociatedTokenAddress(holder, nftMint, spltoken.ProgramID)
	if err != nil {
		return nil, solanago.PublicKey{}, err
	}
	return []solanago.Instruction{
		spltoken.NewInitializeMint2Instruction(nftfraction.AssetDecimals, holder, nil, nftMint),
		spltoken.CreateAssociatedTokenAccountInstruction(holder, ata, holder, nftMint, spltoken.ProgramID),
		spltoken.NewMintToInstruction(nftfraction.VaultAssetAmount, nftMint, ata, holder),
	}, ata, nil
}
