package nftfraction

import solanago "github.com/gagliardetto/solana-go"

// ProgramID is the NFT fraction program address.
var ProgramID = solanago.MustPublicKeyFromBase58("2FVnCxEJWcuxBVBZSphHPhLt3LyuXtbpDHubm4rXu1tP")

func SetProgramID(pubkey solanago.PublicKey) {
	ProgramID = pubkey
}
