package transaction

import (
	"github.com/shopspring/decimal"
)

// DefaultCommissionRate is the platform's share of every released escrow.
var DefaultCommissionRate = decimal.RequireFromString("0.05")

// Split is the escrow release breakdown.
type Split struct {
	Commission   int64 `json:"commission"`
	Disbursement int64 `json:"disbursementAmount"`
}

// SplitEscrow rounds amount*rate half-up to whole units and pays out the rest.
// The disbursement is always amount minus the rounded commission.
func SplitEscrow(amount int64, rate decimal.Decimal) Split {
	commission := decimal.NewFromInt(amount).Mul(rate).Round(0).IntPart()
	return Split{Commission: commission, Disbursement: amount - commission}
}
