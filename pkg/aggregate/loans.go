package aggregate

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanKind of a loan record.
type LoanKind string

const (
	Hutang  LoanKind = "hutang"  // money the user owes
	Piutang LoanKind = "piutang" // money owed to the user
)

// Loan is the minimal loan row the engine needs.
type Loan struct {
	Kind   LoanKind
	Amount decimal.Decimal
	Date   time.Time
}

// LoanTotals holds overall sums for the loan ledger. Net = Piutang - Hutang.
type LoanTotals struct {
	Hutang  decimal.Decimal `json:"hutang"`
	Piutang decimal.Decimal `json:"piutang"`
	Net     decimal.Decimal `json:"net"`
}

// ComputeLoanTotals sums loan amounts per kind, skipping malformed rows the
// same way ComputeTotals does.
func ComputeLoanTotals(loans []Loan) LoanTotals {
	t := LoanTotals{Hutang: decimal.Zero, Piutang: decimal.Zero, Net: decimal.Zero}
	for _, l := range loans {
		if l.Amount.IsNegative() || l.Date.IsZero() {
			continue
		}
		switch l.Kind {
		case Hutang:
			t.Hutang = t.Hutang.Add(l.Amount)
		case Piutang:
			t.Piutang = t.Piutang.Add(l.Amount)
		}
	}
	t.Net = t.Piutang.Sub(t.Hutang)
	return t
}
