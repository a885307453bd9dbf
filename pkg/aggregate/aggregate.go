// Package aggregate turns a user's raw ledger rows into the summary shapes
// the dashboard renders: overall totals, a per-month income/expense trend
// and a per-category expense breakdown. Everything here is pure: callers
// fetch rows, this package only groups and sums.
package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Kind of a ledger entry.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// Uncategorized is the bucket label for entries whose category reference is
// absent or dangling (category deleted after the entry was written).
const Uncategorized = "Uncategorized"

// Entry is the minimal ledger row the engine needs. CategoryName is the
// resolved display label; empty means uncategorized.
type Entry struct {
	Kind         Kind
	Amount       decimal.Decimal
	CategoryName string
	Date         time.Time
}

// valid filters out malformed rows: a negative amount or a zero date can
// only come from a corrupt row and is excluded from every sum rather than
// aborting the batch.
func (e Entry) valid() bool {
	return !e.Amount.IsNegative() && !e.Date.IsZero()
}

// Totals holds overall sums for a set of entries. Balance may be negative.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// ComputeTotals sums amounts per kind. Empty input yields all zeros.
func ComputeTotals(entries []Entry) Totals {
	t := Totals{Income: decimal.Zero, Expense: decimal.Zero, Balance: decimal.Zero}
	for _, e := range entries {
		if !e.valid() {
			continue
		}
		switch e.Kind {
		case Income:
			t.Income = t.Income.Add(e.Amount)
		case Expense:
			t.Expense = t.Expense.Add(e.Amount)
		}
	}
	t.Balance = t.Income.Sub(t.Expense)
	return t
}

// MonthPoint is one month of the trend. Label is display-only ("Jan 2006");
// grouping always uses the structural (Year, Month) pair so that the same
// month name in different years never collides.
type MonthPoint struct {
	Year    int             `json:"year"`
	Month   time.Month      `json:"month"`
	Label   string          `json:"label"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// ComputeMonthlyTrend groups entries by calendar month of their date and
// sums income and expense separately per group. Groups appear in
// first-encounter order, so a caller that wants a chronological trend
// supplies entries sorted ascending by date (the handlers do, via the
// store's ORDER BY).
func ComputeMonthlyTrend(entries []Entry) []MonthPoint {
	type ym struct {
		y int
		m time.Month
	}
	index := map[ym]int{}
	points := []MonthPoint{}
	for _, e := range entries {
		if !e.valid() {
			continue
		}
		k := ym{e.Date.Year(), e.Date.Month()}
		i, ok := index[k]
		if !ok {
			i = len(points)
			index[k] = i
			points = append(points, MonthPoint{
				Year:    k.y,
				Month:   k.m,
				Label:   e.Date.Format("Jan 2006"),
				Income:  decimal.Zero,
				Expense: decimal.Zero,
			})
		}
		switch e.Kind {
		case Income:
			points[i].Income = points[i].Income.Add(e.Amount)
		case Expense:
			points[i].Expense = points[i].Expense.Add(e.Amount)
		}
	}
	return points
}

// Bucket is one category slice of the breakdown. Percent is the bucket's
// share of the overall sum rounded to the nearest integer, 0 for every
// bucket when the overall sum is zero.
type Bucket struct {
	Name    string          `json:"name"`
	Total   decimal.Decimal `json:"total"`
	Percent int             `json:"percent"`
}

// ComputeCategoryBreakdown filters entries to the given kind, groups them by
// category label (absent or dangling references collapse into the single
// Uncategorized bucket) and sums per group. The result is sorted descending
// by total; equal totals order by name so the output is deterministic.
func ComputeCategoryBreakdown(entries []Entry, kind Kind) []Bucket {
	totals := map[string]decimal.Decimal{}
	for _, e := range entries {
		if !e.valid() || e.Kind != kind {
			continue
		}
		name := e.CategoryName
		if name == "" {
			name = Uncategorized
		}
		totals[name] = totals[name].Add(e.Amount)
	}
	buckets := make([]Bucket, 0, len(totals))
	sum := decimal.Zero
	for name, total := range totals {
		buckets = append(buckets, Bucket{Name: name, Total: total})
		sum = sum.Add(total)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if !buckets[i].Total.Equal(buckets[j].Total) {
			return buckets[i].Total.GreaterThan(buckets[j].Total)
		}
		return buckets[i].Name < buckets[j].Name
	})
	if sum.IsPositive() {
		hundred := decimal.NewFromInt(100)
		for i := range buckets {
			p := buckets[i].Total.Mul(hundred).Div(sum)
			buckets[i].Percent = int(p.Round(0).IntPart())
		}
	}
	return buckets
}

// TopN truncates a breakdown to its n largest buckets. n <= 0 means
// unbounded. Percentages are left as computed over the full set.
func TopN(buckets []Bucket, n int) []Bucket {
	if n <= 0 || len(buckets) <= n {
		return buckets
	}
	return buckets[:n]
}
