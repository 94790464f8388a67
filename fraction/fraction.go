package fraction

import (
	"errors"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	nftfraction "github.com/krazyTry/nft-fraction-go/nft_fraction"
)

var (
	ErrFractionNotFound = errors.New("fraction account not found")
	ErrInvalidShares    = errors.New("authorized shares must be positive")
)

type FractionDetails = nftfraction.FractionDetails

type ProgramAccount[T any] struct {
	Pubkey  solanago.PublicKey
	Account *T
}

// Client reads fraction state over RPC and builds the program instructions.
type Client struct {
	rpcClient  *rpc.Client
	commitment rpc.CommitmentType
}

func NewClient(rpcClient *rpc.Client, commitment rpc.CommitmentType) *Client {
	if commitment == "" {
		commitment = rpc.CommitmentFinalized
	}
	return &Client{
		rpcClient:  rpcClient,
		commitment: commitment,
	}
}
