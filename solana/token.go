package solana

import (
	"bytes"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// MintLen is the size of an SPL mint account.
const MintLen = 82

// Token represents a Solana token with mint information and owner
type Token struct {
	// Optional authority used to mint new tokens
	MintAuthority *solana.PublicKey
	// Total supply of tokens
	Supply uint64
	// Number of base 10 digits to the right of the decimal place
	Decimals uint8
	// True if the mint is initialized
	IsInitialized bool
	// Optional authority to freeze token accounts
	FreezeAuthority *solana.PublicKey
	// Owner program of the mint account
	Owner solana.PublicKey
}

type mintLayout struct {
	MintAuthorityOption   uint32
	MintAuthority         solana.PublicKey
	Supply                uint64
	Decimals              uint8
	IsInitialized         bool
	FreezeAuthorityOption uint32
	FreezeAuthority       solana.PublicKey
}

// TokenLayout provides methods for decoding token data
type TokenLayout struct {
}

func (l *TokenLayout) Decode(data []byte) (*Token, error) {
	if len(data) < MintLen {
		return nil, fmt.Errorf("mint: %d bytes, want %d", len(data), MintLen)
	}
	raw := &mintLayout{}
	if err := binary.NewBinDecoder(data).Decode(raw); err != nil {
		return nil, err
	}
	return &Token{
		MintAuthority:   optionalKey(raw.MintAuthorityOption, raw.MintAuthority),
		Supply:          raw.Supply,
		Decimals:        raw.Decimals,
		IsInitialized:   raw.IsInitialized,
		FreezeAuthority: optionalKey(raw.FreezeAuthorityOption, raw.FreezeAuthority),
	}, nil
}

func (l *TokenLayout) Encode(token *Token) ([]byte, error) {
	raw := &mintLayout{
		Supply:        token.Supply,
		Decimals:      token.Decimals,
		IsInitialized: token.IsInitialized,
	}
	raw.MintAuthorityOption, raw.MintAuthority = keyOption(token.MintAuthority)
	raw.FreezeAuthorityOption, raw.FreezeAuthority = keyOption(token.FreezeAuthority)

	buf := new(bytes.Buffer)
	buf.Grow(MintLen)
	if err := binary.NewBinEncoder(buf).Encode(raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
