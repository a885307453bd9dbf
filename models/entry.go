package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry kinds. Amounts are always stored as magnitudes; the sign of a
// movement is derived from the kind, never from the amount.
const (
	KindIncome  = "income"
	KindExpense = "expense"
)

// ValidEntryKind reports whether k is one of the entry kinds.
func ValidEntryKind(k string) bool {
	return k == KindIncome || k == KindExpense
}

// Entry represents a single income or expense record belonging to a user.
// CategoryID is nullable: a nil value means "uncategorized", which is also
// what a referencing entry falls back to when its category is deleted.
type Entry struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	UserID     uint            `gorm:"index;not null"`
	Kind       string          `gorm:"size:16;not null;index"`
	Amount     decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	CategoryID *uint           `gorm:"index"`
	Category   *Category       `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Note       string          `gorm:"size:512"`
	Date       time.Time       `gorm:"not null;index"` // date-only, stored at midnight UTC
}
