package fraction

import (
	"github.com/shopspring/decimal"
)

// ClaimShare is the part of the locked asset backed by balance fraction
// tokens, measured against the authorized supply.
func ClaimShare(balance uint64, details *FractionDetails) decimal.Decimal {
	if details == nil || details.AuthorizedShares == 0 {
		return decimal.Zero
	}
	return decimal.NewFromUint64(balance).Div(decimal.NewFromUint64(details.AuthorizedShares))
}

// ClaimPercent is ClaimShare in percent, rounded to two places.
func ClaimPercent(balance uint64, details *FractionDetails) decimal.Decimal {
	return ClaimShare(balance, details).Mul(decimal.NewFromInt(100)).Round(2)
}

// IssuedRatio is the part of the authorized supply already minted.
func IssuedRatio(details *FractionDetails) decimal.Decimal {
	if details == nil {
		return decimal.Zero
	}
	return ClaimShare(details.IssuedShares, details)
}
