package fraction

import (
	"context"
	"errors"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/tidwall/gjson"

	fractiongen "github.com/krazyTry/nft-fraction-go/gen/nft_fraction"
	nftfraction "github.com/krazyTry/nft-fraction-go/nft_fraction"
	"github.com/krazyTry/nft-fraction-go/programs/spltoken"
	"github.com/krazyTry/nft-fraction-go/solana"
)

func (c *Client) GetFractionDetails(ctx context.Context, fractionAccount solanago.PublicKey) (*FractionDetails, error) {
	out, err := solana.GetAccountInfo(ctx, c.rpcClient, c.commitment, fractionAccount)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrFractionNotFound, fractionAccount)
		}
		return nil, err
	}
	if out == nil || out.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrFractionNotFound, fractionAccount)
	}
	if !out.Value.Owner.Equals(fractiongen.ProgramID) {
		return nil, fmt.Errorf("fraction account %s owned by %s", fractionAccount, out.Value.Owner)
	}
	return fractiongen.ParseAccount_FractionDetails(out.Value.Data.GetBinary())
}

func (c *Client) GetFractionDetailsByMint(ctx context.Context, fractionMint solanago.PublicKey) (*FractionDetails, error) {
	derived, err := nftfraction.DeriveFractionAccounts(fractionMint)
	if err != nil {
		return nil, err
	}
	return c.GetFractionDetails(ctx, derived.Fraction)
}

// GetFractionsByAssetMint lists every ledger entry created for an asset.
func (c *Client) GetFractionsByAssetMint(ctx context.Context, assetMint solanago.PublicKey) ([]ProgramAccount[FractionDetails], error) {
	opts := solana.GenProgramAccountFilter(
		c.commitment,
		fractiongen.FractionDetailsDiscriminator[:],
		solana.Filter{Owner: assetMint, Offset: fractiongen.FractionDetailsAssetMintOffset},
	)
	accounts, err := c.rpcClient.GetProgramAccountsWithOpts(ctx, fractiongen.ProgramID, opts)
	if err != nil {
		return nil, err
	}
	out := make([]ProgramAccount[FractionDetails], 0, len(accounts))
	for _, acc := range accounts {
		parsed, err := fractiongen.ParseAccount_FractionDetails(acc.Account.Data.GetBinary())
		if err != nil {
			continue
		}
		out = append(out, ProgramAccount[FractionDetails]{Pubkey: acc.Pubkey, Account: parsed})
	}
	return out, nil
}

// GetFractionBalance sums the owner's token accounts of fractionMint.
func (c *Client) GetFractionBalance(ctx context.Context, owner, fractionMint solanago.PublicKey) (uint64, error) {
	resp, err := c.rpcClient.GetTokenAccountsByOwner(ctx, owner, &rpc.GetTokenAccountsConfig{
		Mint: &fractionMint,
	}, &rpc.GetTokenAccountsOpts{
		Encoding:   solanago.EncodingJSONParsed,
		Commitment: c.commitment,
	})
	if err != nil {
		return 0, err
	}
	var total uint64
	for _, v := range resp.Value {
		raw := v.Account.Data.GetRawJSON()
		if gjson.GetBytes(raw, "parsed.info.mint").String() != fractionMint.String() {
			continue
		}
		total += gjson.GetBytes(raw, "parsed.info.tokenAmount.amount").Uint()
	}
	return total, nil
}

// GetFractionMint returns the decoded fraction mint.
func (c *Client) GetFractionMint(ctx context.Context, fractionMint solanago.PublicKey) (*solana.Token, error) {
	return solana.GetToken(ctx, c.rpcClient, c.commitment, fractionMint)
}

// UserFractionAccount is the associated token account receiving minted shares.
func UserFractionAccount(user, fractionMint solanago.PublicKey) (solanago.PublicKey, error) {
	return spltoken.FindAssociatedTokenAddress(user, fractionMint, spltoken.ProgramID)
}
