package solana

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// GenProgramAccountFilter matches accounts starting with the given discriminator,
// narrowed by optional public key filters.
func GenProgramAccountFilter(commitment rpc.CommitmentType, discriminator []byte, filters ...Filter) *rpc.GetProgramAccountsOpts {
	opt := &rpc.GetProgramAccountsOpts{
		Commitment: commitment,
		Encoding:   solana.EncodingBase64,
		Filters: []rpc.RPCFilter{
			{
				Memcmp: &rpc.RPCFilterMemcmp{
					Offset: 0,
					Bytes:  discriminator,
				},
			},
		},
	}
	for _, f := range filters {
		if f.Owner.Equals(solana.PublicKey{}) {
			continue
		}
		opt.Filters = append(opt.Filters, rpc.RPCFilter{
			Memcmp: &rpc.RPCFilterMemcmp{
				Offset: f.Offset,
				Bytes:  f.Owner[:],
			},
		})
	}
	return opt
}

func GetAccountInfo(ctx context.Context, rpcClient *rpc.Client, commitment rpc.CommitmentType, account solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	return rpcClient.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{Commitment: commitment, Encoding: solana.EncodingBase64})
}

// GetToken fetches and decodes a mint account.
func GetToken(ctx context.Context, rpcClient *rpc.Client, commitment rpc.CommitmentType, mint solana.PublicKey) (*Token, error) {
	out, err := GetAccountInfo(ctx, rpcClient, commitment, mint)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, fmt.Errorf("mint %s: %w", mint, err)
		}
		return nil, err
	}
	if out == nil || out.Value == nil {
		return nil, fmt.Errorf("mint %s: %w", mint, rpc.ErrNotFound)
	}
	token, err := new(TokenLayout).Decode(out.Value.Data.GetBinary())
	if err != nil {
		return nil, err
	}
	token.Owner = out.Value.Owner
	return token, nil
}
