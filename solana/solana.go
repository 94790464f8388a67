package solana

import "github.com/gagliardetto/solana-go"

// Filter represents a memcmp filter matching a public key at an account offset
type Filter struct {
	Owner  solana.PublicKey // Public key to match
	Offset uint64           // Offset of the key inside the account data
}
