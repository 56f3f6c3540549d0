package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitInstallmentsSumsBack(t *testing.T) {
	totals := []int64{0, 1, 99, 100, 1000, 123456, 999999999}
	for _, total := range totals {
		for count := 1; count <= 48; count++ {
			parts := SplitInstallments(total, count)
			require.Len(t, parts, count)

			var sum int64
			for i, p := range parts {
				sum += p
				if i < count-1 {
					assert.Equal(t, parts[0], p, "all but the last part share the floor")
				}
			}
			assert.Equal(t, total, sum, "total=%d count=%d", total, count)
		}
	}
}

func TestSplitInstallmentsRejectsBadInput(t *testing.T) {
	assert.Nil(t, SplitInstallments(1000, 0))
	assert.Nil(t, SplitInstallments(1000, -1))
	assert.Nil(t, SplitInstallments(-1, 3))
}

func TestSplitInstallmentsRemainderOnLast(t *testing.T) {
	parts := SplitInstallments(1000, 3)
	assert.Equal(t, []int64{333, 333, 334}, parts)
}

func TestCalcTotals(t *testing.T) {
	items := []LineItem{
		{Name: "Armário", Quantity: 2, UnitPriceCents: 150000, TotalCents: 300000},
		{Name: "Prateleira", Quantity: 1, UnitPriceCents: 25000, TotalCents: 25000},
	}

	sub, total := CalcTotals(items, 5000)
	assert.Equal(t, int64(325000), sub)
	assert.Equal(t, int64(320000), total)

	sub, total = CalcTotals(items, 400000)
	assert.Equal(t, int64(325000), sub)
	assert.Equal(t, int64(0), total, "discount never drives the total negative")
}

func TestAddMonthsClampsDay(t *testing.T) {
	jan31 := time.Date(2024, 1, 31, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 29, 10, 30, 0, 0, time.UTC), AddMonths(jan31, 1), "leap year")

	jan31 = time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), AddMonths(jan31, 1))

	oct31 := time.Date(2024, 10, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC), AddMonths(oct31, 1))

	// Day 15 never clamps.
	d := time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 24; i++ {
		assert.Equal(t, 15, AddMonths(d, i).Day())
	}
}

func TestAddMonthsCrossesYears(t *testing.T) {
	d := time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), AddMonths(d, 2))
}

func TestMonthRange(t *testing.T) {
	from, to, err := MonthRange("2024-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), to)

	from, to, err = MonthRange("2024-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), to)

	for _, bad := range []string{"", "2024", "2024-13", "2024-00", "24-01", "abcd-ef"} {
		_, _, err := MonthRange(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2024-03", MonthKey(time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "2025-12", MonthKey(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)))
}

func TestStartOfWeek(t *testing.T) {
	// 2024-06-13 is a Thursday.
	thu := time.Date(2024, 6, 13, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), StartOfWeek(thu))

	mon := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, mon, StartOfWeek(mon))

	sun := time.Date(2024, 6, 16, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), StartOfWeek(sun))
}

func TestBuildScheduleMonthly(t *testing.T) {
	first := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	entries := BuildSchedule(100000, 3, first, MethodBoleto, false, now)
	require.Len(t, entries, 3)

	assert.Equal(t, 1, entries[0].Number)
	assert.Equal(t, first, entries[0].DueDate)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), entries[1].DueDate)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), entries[2].DueDate)

	var sum int64
	for _, e := range entries {
		sum += e.AmountCents
		assert.Equal(t, InstallmentPendente, e.Status)
		assert.Equal(t, MethodBoleto, e.Method)
		assert.Nil(t, e.PaidAt)
	}
	assert.Equal(t, int64(100000), sum)
}

func TestBuildSchedulePaidNow(t *testing.T) {
	now := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	entries := BuildSchedule(50000, 1, now, MethodPix, true, now)
	require.Len(t, entries, 1)
	assert.Equal(t, InstallmentPago, entries[0].Status)
	require.NotNil(t, entries[0].PaidAt)
	assert.Equal(t, now, *entries[0].PaidAt)
}

func TestValidateCustomInstallments(t *testing.T) {
	d1 := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	entries, err := ValidateCustomInstallments([]CustomInstallment{
		{DueDate: d1, AmountCents: 70000},
		{DueDate: d2, AmountCents: 30000},
	}, 100000)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Sorted by due date, renumbered.
	assert.Equal(t, 1, entries[0].Number)
	assert.Equal(t, d2, entries[0].DueDate)
	assert.Equal(t, int64(30000), entries[0].AmountCents)
	assert.Equal(t, 2, entries[1].Number)
	assert.Equal(t, d1, entries[1].DueDate)
}

func TestValidateCustomInstallmentsRejects(t *testing.T) {
	d := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := ValidateCustomInstallments([]CustomInstallment{{DueDate: d, AmountCents: 100}}, 100)
	assert.Error(t, err, "single entry")

	_, err = ValidateCustomInstallments([]CustomInstallment{
		{DueDate: d, AmountCents: 100},
		{DueDate: d, AmountCents: 0},
	}, 100)
	assert.Error(t, err, "non-positive amount")

	_, err = ValidateCustomInstallments([]CustomInstallment{
		{DueDate: d, AmountCents: 100},
		{AmountCents: 100},
	}, 200)
	assert.Error(t, err, "zero due date")

	_, err = ValidateCustomInstallments([]CustomInstallment{
		{DueDate: d, AmountCents: 60000},
		{DueDate: d.AddDate(0, 1, 0), AmountCents: 30000},
	}, 100000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "90000")
	assert.Contains(t, err.Error(), "100000")
}

func TestNormalizers(t *testing.T) {
	m, ok := NormalizeMode(" parcelado ")
	assert.True(t, ok)
	assert.Equal(t, ModeParcelado, m)

	_, ok = NormalizeMode("WEEKLY")
	assert.False(t, ok)

	m2, ok := NormalizeMethod("pix")
	assert.True(t, ok)
	assert.Equal(t, MethodPix, m2)

	_, ok = NormalizeMethod("CHEQUE")
	assert.False(t, ok)

	s, ok := NormalizeInstallmentStatus("pago")
	assert.True(t, ok)
	assert.Equal(t, InstallmentPago, s)

	_, ok = NormalizeInstallmentStatus("")
	assert.False(t, ok)
}

func TestRecurringBackfill(t *testing.T) {
	history := []RecurringCost{
		{GroupID: "g1", Name: "Aluguel", Type: "FIXO", Category: "Estrutura", AmountCents: 250000, YearMonth: "2024-01", Active: true},
		{GroupID: "g1", Name: "Aluguel", Type: "FIXO", Category: "Estrutura", AmountCents: 250000, YearMonth: "2024-02", Active: true},
		{GroupID: "g2", Name: "Internet", Type: "FIXO", Category: "Estrutura", AmountCents: 12000, YearMonth: "2024-03", Active: false},
	}

	out := RecurringBackfill(history, "2024-04")
	require.Len(t, out, 2)
	assert.Equal(t, "g1", out[0].GroupID)
	assert.Equal(t, "2024-03", out[0].YearMonth)
	assert.Equal(t, "2024-04", out[1].YearMonth)
	assert.Equal(t, int64(250000), out[0].AmountCents)

	// Deactivated groups never propagate.
	for _, c := range out {
		assert.NotEqual(t, "g2", c.GroupID)
	}
}

func TestRecurringBackfillIdempotent(t *testing.T) {
	history := []RecurringCost{
		{GroupID: "g1", Name: "Aluguel", AmountCents: 250000, YearMonth: "2024-01", Active: true},
	}
	first := RecurringBackfill(history, "2024-03")
	require.Len(t, first, 2)

	again := RecurringBackfill(append(history, first...), "2024-03")
	assert.Empty(t, again)
}

func TestRecurringBackfillCrossYear(t *testing.T) {
	history := []RecurringCost{
		{GroupID: "g1", Name: "Aluguel", AmountCents: 250000, YearMonth: "2024-11", Active: true},
	}
	out := RecurringBackfill(history, "2025-02")
	require.Len(t, out, 3)
	assert.Equal(t, "2024-12", out[0].YearMonth)
	assert.Equal(t, "2025-01", out[1].YearMonth)
	assert.Equal(t, "2025-02", out[2].YearMonth)
}

func TestRecurringBackfillNoGroup(t *testing.T) {
	history := []RecurringCost{
		{GroupID: "", Name: "Avulso", AmountCents: 5000, YearMonth: "2024-01", Active: true},
	}
	assert.Empty(t, RecurringBackfill(history, "2024-06"))
}

func TestFlow(t *testing.T) {
	f := NewFlow(15000, 3000)
	assert.Equal(t, int64(12000), f.BalanceCents)

	g := f.Add(NewFlow(1000, 500))
	assert.Equal(t, int64(16000), g.InCents)
	assert.Equal(t, int64(3500), g.OutCents)
	assert.Equal(t, int64(12500), g.BalanceCents)
}

func TestOpenCents(t *testing.T) {
	assert.Equal(t, int64(700), OpenCents(1000, 300))
	assert.Equal(t, int64(0), OpenCents(1000, 1000))
	assert.Equal(t, int64(0), OpenCents(1000, 1500), "over-settled clamps to zero")
}
