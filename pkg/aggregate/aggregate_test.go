package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func day(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

func sample() []Entry {
	return []Entry{
		{Kind: Income, Amount: d(1000), Date: day(2024, time.January, 5)},
		{Kind: Expense, Amount: d(300), CategoryName: "Makanan", Date: day(2024, time.January, 20)},
		{Kind: Expense, Amount: d(200), CategoryName: "Makanan", Date: day(2024, time.February, 1)},
	}
}

func TestComputeTotals(t *testing.T) {
	got := ComputeTotals(sample())
	if !got.Income.Equal(d(1000)) || !got.Expense.Equal(d(500)) || !got.Balance.Equal(d(500)) {
		t.Fatalf("unexpected totals: %+v", got)
	}
}

func TestComputeTotalsEmpty(t *testing.T) {
	got := ComputeTotals(nil)
	if !got.Income.IsZero() || !got.Expense.IsZero() || !got.Balance.IsZero() {
		t.Fatalf("empty input should yield zeros, got %+v", got)
	}
}

func TestComputeTotalsBalanceIdentity(t *testing.T) {
	entries := append(sample(),
		Entry{Kind: Expense, Amount: d(9000), Date: day(2024, time.March, 3)},
	)
	got := ComputeTotals(entries)
	if !got.Balance.Equal(got.Income.Sub(got.Expense)) {
		t.Fatalf("balance != income - expense: %+v", got)
	}
	if !got.Balance.IsNegative() {
		t.Fatalf("expected negative balance, got %s", got.Balance)
	}
}

func TestComputeTotalsSkipsMalformed(t *testing.T) {
	entries := []Entry{
		{Kind: Income, Amount: d(100), Date: day(2024, time.May, 1)},
		{Kind: Income, Amount: d(-50), Date: day(2024, time.May, 2)}, // negative magnitude
		{Kind: Expense, Amount: d(40)},                               // zero date
	}
	got := ComputeTotals(entries)
	if !got.Income.Equal(d(100)) || !got.Expense.IsZero() {
		t.Fatalf("malformed rows should be excluded, got %+v", got)
	}
}

// Amounts are magnitudes, so totals can only grow as entries are appended.
func TestComputeTotalsMonotonic(t *testing.T) {
	entries := []Entry{}
	prev := ComputeTotals(entries)
	add := []Entry{
		{Kind: Income, Amount: d(10), Date: day(2024, time.May, 1)},
		{Kind: Expense, Amount: d(3), Date: day(2024, time.May, 2)},
		{Kind: Expense, Amount: d(0), Date: day(2024, time.May, 3)},
		{Kind: Income, Amount: d(7), Date: day(2024, time.May, 4)},
	}
	for _, e := range add {
		entries = append(entries, e)
		cur := ComputeTotals(entries)
		if cur.Income.LessThan(prev.Income) || cur.Expense.LessThan(prev.Expense) {
			t.Fatalf("totals decreased after append: %+v -> %+v", prev, cur)
		}
		prev = cur
	}
}

func TestMonthlyTrendGrouping(t *testing.T) {
	pts := ComputeMonthlyTrend(sample())
	if len(pts) != 2 {
		t.Fatalf("expected 2 months, got %d: %+v", len(pts), pts)
	}
	jan, feb := pts[0], pts[1]
	if jan.Label != "Jan 2024" || !jan.Income.Equal(d(1000)) || !jan.Expense.Equal(d(300)) {
		t.Fatalf("bad january point: %+v", jan)
	}
	if feb.Label != "Feb 2024" || !feb.Income.IsZero() || !feb.Expense.Equal(d(200)) {
		t.Fatalf("bad february point: %+v", feb)
	}
}

func TestMonthlyTrendSameMonthDifferentDays(t *testing.T) {
	entries := []Entry{
		{Kind: Expense, Amount: d(10), Date: day(2024, time.April, 1)},
		{Kind: Expense, Amount: d(20), Date: day(2024, time.April, 30)},
		{Kind: Income, Amount: d(5), Date: day(2024, time.April, 15)},
	}
	pts := ComputeMonthlyTrend(entries)
	if len(pts) != 1 {
		t.Fatalf("same (year,month) must collapse to one point, got %d", len(pts))
	}
	if !pts[0].Expense.Equal(d(30)) || !pts[0].Income.Equal(d(5)) {
		t.Fatalf("bad sums: %+v", pts[0])
	}
}

// Two marches from different years must stay separate points even though
// their month abbreviation reads the same.
func TestMonthlyTrendNoCrossYearCollision(t *testing.T) {
	entries := []Entry{
		{Kind: Expense, Amount: d(100), Date: day(2023, time.March, 10)},
		{Kind: Expense, Amount: d(200), Date: day(2024, time.March, 10)},
	}
	pts := ComputeMonthlyTrend(entries)
	if len(pts) != 2 {
		t.Fatalf("expected 2 points across years, got %d: %+v", len(pts), pts)
	}
	if pts[0].Year != 2023 || pts[1].Year != 2024 {
		t.Fatalf("wrong years: %+v", pts)
	}
	if pts[0].Label != "Mar 2023" || pts[1].Label != "Mar 2024" {
		t.Fatalf("wrong labels: %+v", pts)
	}
}

func TestMonthlyTrendFirstEncounterOrder(t *testing.T) {
	entries := []Entry{
		{Kind: Income, Amount: d(1), Date: day(2024, time.June, 1)},
		{Kind: Income, Amount: d(1), Date: day(2024, time.January, 1)},
		{Kind: Income, Amount: d(1), Date: day(2024, time.June, 20)},
	}
	pts := ComputeMonthlyTrend(entries)
	if len(pts) != 2 || pts[0].Month != time.June || pts[1].Month != time.January {
		t.Fatalf("expected insertion order of first encounter, got %+v", pts)
	}
}

func TestBreakdownFiltersKind(t *testing.T) {
	buckets := ComputeCategoryBreakdown(sample(), Expense)
	if len(buckets) != 1 {
		t.Fatalf("expected single bucket, got %+v", buckets)
	}
	if buckets[0].Name != "Makanan" || !buckets[0].Total.Equal(d(500)) {
		t.Fatalf("bad bucket: %+v", buckets[0])
	}
	if buckets[0].Percent != 100 {
		t.Fatalf("single bucket should be 100%%, got %d", buckets[0].Percent)
	}
}

func TestBreakdownUncategorized(t *testing.T) {
	entries := []Entry{
		{Kind: Expense, Amount: d(70), CategoryName: "", Date: day(2024, time.July, 1)},  // never categorized
		{Kind: Expense, Amount: d(30), CategoryName: "", Date: day(2024, time.July, 2)},  // category deleted
		{Kind: Expense, Amount: d(50), CategoryName: "Tagihan", Date: day(2024, time.July, 3)},
	}
	buckets := ComputeCategoryBreakdown(entries, Expense)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %+v", buckets)
	}
	if buckets[0].Name != Uncategorized || !buckets[0].Total.Equal(d(100)) {
		t.Fatalf("dangling refs must collapse into one bucket: %+v", buckets)
	}
}

func TestBreakdownMatchesTotals(t *testing.T) {
	entries := append(sample(),
		Entry{Kind: Expense, Amount: d(123), CategoryName: "Hiburan", Date: day(2024, time.March, 9)},
		Entry{Kind: Expense, Amount: d(77), Date: day(2024, time.March, 10)},
	)
	sum := decimal.Zero
	for _, b := range ComputeCategoryBreakdown(entries, Expense) {
		sum = sum.Add(b.Total)
	}
	if want := ComputeTotals(entries).Expense; !sum.Equal(want) {
		t.Fatalf("bucket sum %s != total expense %s", sum, want)
	}
}

func TestBreakdownSortAndPercent(t *testing.T) {
	entries := []Entry{
		{Kind: Expense, Amount: d(600), CategoryName: "Belanja", Date: day(2024, time.August, 1)},
		{Kind: Expense, Amount: d(300), CategoryName: "Makanan", Date: day(2024, time.August, 2)},
		{Kind: Expense, Amount: d(100), CategoryName: "Transportasi", Date: day(2024, time.August, 3)},
	}
	buckets := ComputeCategoryBreakdown(entries, Expense)
	if buckets[0].Name != "Belanja" || buckets[1].Name != "Makanan" || buckets[2].Name != "Transportasi" {
		t.Fatalf("expected descending totals, got %+v", buckets)
	}
	if buckets[0].Percent != 60 || buckets[1].Percent != 30 || buckets[2].Percent != 10 {
		t.Fatalf("bad percentages: %+v", buckets)
	}
}

func TestBreakdownZeroSumPercent(t *testing.T) {
	entries := []Entry{
		{Kind: Expense, Amount: decimal.Zero, CategoryName: "Makanan", Date: day(2024, time.September, 1)},
	}
	buckets := ComputeCategoryBreakdown(entries, Expense)
	if len(buckets) != 1 || buckets[0].Percent != 0 {
		t.Fatalf("zero overall sum must not divide, got %+v", buckets)
	}
}

func TestBreakdownIgnoresIncome(t *testing.T) {
	entries := []Entry{
		{Kind: Income, Amount: d(1000), CategoryName: "Gaji", Date: day(2024, time.October, 1)},
		{Kind: Expense, Amount: d(10), CategoryName: "Makanan", Date: day(2024, time.October, 2)},
	}
	for _, b := range ComputeCategoryBreakdown(entries, Expense) {
		if b.Name == "Gaji" {
			t.Fatalf("income entry leaked into expense breakdown: %+v", b)
		}
	}
}

func TestTopN(t *testing.T) {
	entries := []Entry{}
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for i, n := range names {
		entries = append(entries, Entry{
			Kind: Expense, Amount: d(int64(100 - i)), CategoryName: n,
			Date: day(2024, time.November, i+1),
		})
	}
	buckets := ComputeCategoryBreakdown(entries, Expense)
	top := TopN(buckets, 6)
	if len(top) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(top))
	}
	if top[0].Name != "a" || top[5].Name != "f" {
		t.Fatalf("truncation must keep the largest buckets: %+v", top)
	}
	if got := TopN(buckets, 0); len(got) != len(buckets) {
		t.Fatalf("n<=0 must be unbounded")
	}
}

func TestComputeLoanTotals(t *testing.T) {
	loans := []Loan{
		{Kind: Hutang, Amount: d(400), Date: day(2024, time.January, 1)},
		{Kind: Piutang, Amount: d(1000), Date: day(2024, time.January, 2)},
		{Kind: Piutang, Amount: d(-5), Date: day(2024, time.January, 3)}, // malformed
	}
	got := ComputeLoanTotals(loans)
	if !got.Hutang.Equal(d(400)) || !got.Piutang.Equal(d(1000)) || !got.Net.Equal(d(600)) {
		t.Fatalf("unexpected loan totals: %+v", got)
	}
}
