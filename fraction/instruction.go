package fraction

import (
	solanago "github.com/gagliardetto/solana-go"

	fractiongen "github.com/krazyTry/nft-fraction-go/gen/nft_fraction"
	nftfraction "github.com/krazyTry/nft-fraction-go/nft_fraction"
	"github.com/krazyTry/nft-fraction-go/programs/metadata"
	"github.com/krazyTry/nft-fraction-go/programs/spltoken"
)

// FractionalizeNftInstruction locks the asset held in userNftAccount and
// creates the ledger for fractionMint. Both user and fractionMint must sign.
//
// Example:
//
// ix, _ := FractionalizeNftInstruction(user, nftMint, userNftAccount, fractionMint, 1000, "Fraction", "FRAC", uri)
func FractionalizeNftInstruction(
	user solanago.PublicKey,
	nftMint solanago.PublicKey,
	userNftAccount solanago.PublicKey,
	fractionMint solanago.PublicKey,
	sharesAmount uint64,
	name, symbol, uri string,
) (solanago.Instruction, error) {
	if sharesAmount == 0 {
		return nil, ErrInvalidShares
	}
	derived, err := nftfraction.DeriveFractionAccounts(fractionMint)
	if err != nil {
		return nil, err
	}
	return fractiongen.NewFractionalizeNftInstruction(
		fractiongen.FractionalizeNftArgs{
			SharesAmount: sharesAmount,
			Name:         name,
			Symbol:       symbol,
			Uri:          uri,
		},
		user,
		derived.Fraction,
		derived.Vault,
		nftMint,
		userNftAccount,
		fractionMint,
		derived.Metadata,
		spltoken.ProgramID,
		metadata.ProgramID,
		solanago.SystemProgramID,
	)
}

// MintFractionInstruction mints amount shares of fractionMint into the
// user's associated token account.
func MintFractionInstruction(user, fractionMint solanago.PublicKey, amount uint64) (solanago.Instruction, error) {
	derived, err := nftfraction.DeriveFractionAccounts(fractionMint)
	if err != nil {
		return nil, err
	}
	ata, err := spltoken.FindAssociatedTokenAddress(user, fractionMint, spltoken.ProgramID)
	if err != nil {
		return nil, err
	}
	return fractiongen.NewMintFractionInstruction(
		amount,
		user,
		derived.Fraction,
		derived.Vault,
		fractionMint,
		ata,
		spltoken.ProgramID,
		spltoken.AssociatedProgramID,
		solanago.SystemProgramID,
	)
}
