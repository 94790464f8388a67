package nftfraction

import (
	fractiongen "github.com/krazyTry/nft-fraction-go/gen/nft_fraction"
)

type FractionDetails = fractiongen.FractionDetails

// FractionState is the lifecycle stage of a fractionalized asset.
type FractionState uint8

const (
	// FractionStateVaulted: no ledger exists for the fraction mint.
	FractionStateVaulted FractionState = iota
	FractionStateFractionalized
	FractionStateFullyIssued
)

func (s FractionState) String() string {
	switch s {
	case FractionStateVaulted:
		return "vaulted"
	case FractionStateFractionalized:
		return "fractionalized"
	case FractionStateFullyIssued:
		return "fully_issued"
	default:
		return "unknown"
	}
}

// StateOf maps a ledger entry to its stage. A nil entry means the ledger is
// absent.
func StateOf(d *FractionDetails) FractionState {
	switch {
	case d == nil:
		return FractionStateVaulted
	case d.IssuedShares >= d.AuthorizedShares:
		return FractionStateFullyIssued
	default:
		return FractionStateFractionalized
	}
}

// RemainingShares is how many shares may still be minted.
func RemainingShares(d *FractionDetails) uint64 {
	if d.IssuedShares >= d.AuthorizedShares {
		return 0
	}
	return d.AuthorizedShares - d.IssuedShares
}
