package nftfraction

import (
	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	fractiongen "github.com/krazyTry/nft-fraction-go/gen/nft_fraction"
	"github.com/krazyTry/nft-fraction-go/programs/spltoken"
	"github.com/krazyTry/nft-fraction-go/runtime"
)

func (p *Program) mintFraction(ic *runtime.InvokeContext, args *fractiongen.MintFractionArgs) error {
	if args.ShareAmount == 0 {
		return newError(ErrInvalidArgument, "share amount must be positive")
	}
	keys, err := accountKeys(ic, fractiongen.MintFractionAccountsLen)
	if err != nil {
		return err
	}
	var (
		user          = keys[fractiongen.MintFractionUser]
		fractionKey   = keys[fractiongen.MintFractionFractionAccount]
		vaultKey      = keys[fractiongen.MintFractionNftVault]
		fractionMint  = keys[fractiongen.MintFractionFractionMint]
		userTokenKey  = keys[fractiongen.MintFractionUserTokenAccount]
		tokenProgram  = keys[fractiongen.MintFractionTokenProgram]
		ataProgram    = keys[fractiongen.MintFractionAtaProgram]
		systemProgram = keys[fractiongen.MintFractionSystemProgram]
	)

	if err := requireSigner(ic, "user", user); err != nil {
		return err
	}
	for _, w := range []struct {
		name string
		key  solanago.PublicKey
	}{
		{"fraction account", fractionKey},
		{"fraction mint", fractionMint},
		{"user token account", userTokenKey},
	} {
		if err := requireWritable(ic, w.name, w.key); err != nil {
			return err
		}
	}
	if err := expectAddress("token program", tokenProgram, p.tokenProgram); err != nil {
		return err
	}
	if err := expectAddress("associated token program", ataProgram, p.ataProgram); err != nil {
		return err
	}
	if err := expectAddress("system program", systemProgram, solanago.SystemProgramID); err != nil {
		return err
	}

	derived, err := DeriveFractionAccountsFor(ic.ProgramID(), fractionMint)
	if err != nil {
		return err
	}
	if err := expectAddress("nft vault", vaultKey, derived.Vault); err != nil {
		return err
	}
	if err := expectAddress("fraction account", fractionKey, derived.Fraction); err != nil {
		return err
	}

	details, err := p.loadDetails(ic, fractionKey)
	if err != nil {
		return err
	}
	if err := expectAddress("fraction mint", fractionMint, details.FractionMint); err != nil {
		return err
	}
	if err := expectAddress("nft vault", vaultKey, details.Vault); err != nil {
		return err
	}
	if details.Bump != derived.FractionBump {
		return newError(ErrInvalidState, "stored bump %d, derived %d", details.Bump, derived.FractionBump)
	}
	vault, err := p.loadTokenAccount(ic, "nft vault", vaultKey)
	if err != nil {
		return err
	}
	if !vault.Mint.Equals(details.AssetMint) || vault.Amount != VaultAssetAmount {
		return newError(ErrInvalidState, "nft vault %s does not hold the asset", vaultKey)
	}

	if args.ShareAmount > RemainingShares(details) {
		return newError(ErrCapacityExceeded, "issued %d + requested %d > authorized %d",
			details.IssuedShares, args.ShareAmount, details.AuthorizedShares)
	}

	ata, err := spltoken.FindAssociatedTokenAddress(user, fractionMint, tokenProgram)
	if err != nil {
		return err
	}
	if err := expectAddress("user token account", userTokenKey, ata); err != nil {
		return err
	}
	exists, err := ic.Exists(userTokenKey)
	if err != nil {
		return err
	}
	if !exists {
		createIx := spltoken.CreateAssociatedTokenAccountInstruction(user, userTokenKey, user, fractionMint, tokenProgram)
		if err := ic.Invoke(createIx); err != nil {
			return err
		}
	}

	fractionSigner := withBump(fractionSeeds(vaultKey), details.Bump)
	if err := ic.Invoke(spltoken.NewMintToInstruction(args.ShareAmount, fractionMint, userTokenKey, fractionKey), fractionSigner); err != nil {
		return err
	}

	details.IssuedShares += args.ShareAmount
	raw, err := details.Marshal()
	if err != nil {
		return err
	}
	if err := ic.SetAccountData(fractionKey, raw); err != nil {
		return err
	}

	p.logger.Info("fractions minted",
		zap.Stringer("user", user),
		zap.Stringer("fraction_mint", fractionMint),
		zap.Uint64("amount", args.ShareAmount),
		zap.Uint64("issued_shares", details.IssuedShares),
		zap.Uint64("authorized_shares", details.AuthorizedShares),
	)
	return nil
}
