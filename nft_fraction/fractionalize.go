package nftfraction

import (
	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	fractiongen "github.com/krazyTry/nft-fraction-go/gen/nft_fraction"
	"github.com/krazyTry/nft-fraction-go/programs/metadata"
	"github.com/krazyTry/nft-fraction-go/programs/spltoken"
	"github.com/krazyTry/nft-fraction-go/runtime"
)

func (p *Program) fractionalizeNft(ic *runtime.InvokeContext, args *fractiongen.FractionalizeNftArgs) error {
	if err := validateFractionalizeArgs(args); err != nil {
		return err
	}
	keys, err := accountKeys(ic, fractiongen.FractionalizeNftAccountsLen)
	if err != nil {
		return err
	}
	var (
		user            = keys[fractiongen.FractionalizeNftUser]
		fractionKey     = keys[fractiongen.FractionalizeNftFractionAccount]
		vaultKey        = keys[fractiongen.FractionalizeNftNftVault]
		assetMint       = keys[fractiongen.FractionalizeNftNftMint]
		userAssetKey    = keys[fractiongen.FractionalizeNftUserNftAccount]
		fractionMint    = keys[fractiongen.FractionalizeNftFractionMint]
		metadataKey     = keys[fractiongen.FractionalizeNftFractionMetadata]
		tokenProgram    = keys[fractiongen.FractionalizeNftTokenProgram]
		metadataProgram = keys[fractiongen.FractionalizeNftTokenMetadataProgram]
		systemProgram   = keys[fractiongen.FractionalizeNftSystemProgram]
	)

	if err := requireSigner(ic, "user", user); err != nil {
		return err
	}
	if err := requireSigner(ic, "fraction mint", fractionMint); err != nil {
		return err
	}
	for _, w := range []struct {
		name string
		key  solanago.PublicKey
	}{
		{"fraction account", fractionKey},
		{"nft vault", vaultKey},
		{"user nft account", userAssetKey},
		{"fraction mint", fractionMint},
		{"fraction metadata", metadataKey},
	} {
		if err := requireWritable(ic, w.name, w.key); err != nil {
			return err
		}
	}
	if err := expectAddress("token program", tokenProgram, p.tokenProgram); err != nil {
		return err
	}
	if err := expectAddress("token metadata program", metadataProgram, p.metadataProgram); err != nil {
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
	if err := expectAddress("fraction metadata", metadataKey, derived.Metadata); err != nil {
		return err
	}

	if err := requireAbsent(ic, "fraction account", fractionKey); err != nil {
		return err
	}
	if err := requireAbsent(ic, "nft vault", vaultKey); err != nil {
		return err
	}
	if err := requireAbsent(ic, "fraction mint", fractionMint); err != nil {
		return err
	}

	asset, err := p.loadMint(ic, "nft mint", assetMint)
	if err != nil {
		return err
	}
	if asset.Decimals != AssetDecimals {
		return newError(ErrInvalidArgument, "nft mint %s has %d decimals", assetMint, asset.Decimals)
	}
	if _, err := p.loadAssetAccount(ic, userAssetKey, assetMint, user); err != nil {
		return err
	}

	vaultSigner := withBump(nftVaultSeeds(fractionMint), derived.VaultBump)
	fractionSigner := withBump(fractionSeeds(vaultKey), derived.FractionBump)

	if err := ic.Invoke(spltoken.NewInitializeMint2Instruction(FractionDecimals, fractionKey, nil, fractionMint)); err != nil {
		return err
	}
	if err := ic.Invoke(spltoken.NewInitializeAccount3Instruction(vaultKey, assetMint, fractionKey), vaultSigner); err != nil {
		return err
	}
	if err := ic.Invoke(spltoken.NewTransferInstruction(VaultAssetAmount, userAssetKey, vaultKey, user)); err != nil {
		return err
	}

	details := &FractionDetails{
		Bump:             derived.FractionBump,
		AssetMint:        assetMint,
		Vault:            vaultKey,
		FractionMint:     fractionMint,
		AuthorizedShares: args.SharesAmount,
		IssuedShares:     0,
	}
	raw, err := details.Marshal()
	if err != nil {
		return err
	}
	if err := ic.CreateAccount(fractionKey, raw, fractionSigner); err != nil {
		return err
	}

	mdIx, err := metadata.NewCreateMetadataInstruction(
		metadata.Data{Name: args.Name, Symbol: args.Symbol, Uri: args.Uri},
		metadataKey,
		fractionMint,
		fractionKey,
		user,
		fractionKey,
	)
	if err != nil {
		return err
	}
	if err := ic.Invoke(mdIx, fractionSigner); err != nil {
		return err
	}

	p.logger.Info("nft fractionalized",
		zap.Stringer("user", user),
		zap.Stringer("asset_mint", assetMint),
		zap.Stringer("fraction_mint", fractionMint),
		zap.Stringer("fraction_account", fractionKey),
		zap.Uint64("authorized_shares", args.SharesAmount),
	)
	return nil
}
