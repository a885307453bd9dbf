package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan kinds: hutang is money the user owes, piutang is money owed to the
// user. Loans are a separate ledger and are never joined with entries.
const (
	LoanHutang  = "hutang"
	LoanPiutang = "piutang"
)

// ValidLoanKind reports whether k is one of the loan kinds.
func ValidLoanKind(k string) bool {
	return k == LoanHutang || k == LoanPiutang
}

// Loan represents a single hutang/piutang record belonging to a user.
type Loan struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint            `gorm:"index;not null"`
	Kind      string          `gorm:"size:16;not null;index"`
	Amount    decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Note      string          `gorm:"size:512"`
	Date      time.Time       `gorm:"not null;index"`
}
