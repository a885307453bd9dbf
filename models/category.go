package models

import "time"

// Category is a user-owned label attachable to entries of the matching kind.
// A default set is cloned for every new user at registration; users manage
// their own set afterward.
type Category struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint   `gorm:"index;not null;uniqueIndex:idx_user_category"`
	Name      string `gorm:"size:128;not null;uniqueIndex:idx_user_category"`
	Kind      string `gorm:"size:16;not null;uniqueIndex:idx_user_category"`
}

// DefaultCategories is the fixed set cloned per new user. Names stay in
// Indonesian to match the frontend labels.
var DefaultCategories = []Category{
	{Name: "Gaji", Kind: KindIncome},
	{Name: "Bonus", Kind: KindIncome},
	{Name: "Lainnya", Kind: KindIncome},
	{Name: "Makanan", Kind: KindExpense},
	{Name: "Transportasi", Kind: KindExpense},
	{Name: "Belanja", Kind: KindExpense},
	{Name: "Tagihan", Kind: KindExpense},
	{Name: "Hiburan", Kind: KindExpense},
	{Name: "Kesehatan", Kind: KindExpense},
	{Name: "Lainnya", Kind: KindExpense},
}
