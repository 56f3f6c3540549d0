package billing

import "sort"

// RecurringCost is the slice of a cost row the propagation engine needs.
// Rows sharing a GroupID are occurrences of the same recurring expense,
// one per YearMonth bucket.
type RecurringCost struct {
	GroupID     string
	Name        string
	Type        string
	Category    string
	SupplierID  string
	AmountCents int64
	YearMonth   string
	Active      bool
}

// RecurringBackfill computes the occurrences missing between each active
// recurring group's latest recorded month and targetMonth (a "YYYY-MM"
// key). For every group whose newest occurrence is active and older than
// the target, one row per gap month is returned, carrying the newest
// occurrence's name, category and amount. Groups whose latest row is
// inactive stopped recurring and are skipped. The function is idempotent:
// feeding the returned rows back into history yields nothing new.
func RecurringBackfill(history []RecurringCost, targetMonth string) []RecurringCost {
	latest := make(map[string]RecurringCost)
	for _, c := range history {
		if c.GroupID == "" || c.YearMonth == "" {
			continue
		}
		if cur, ok := latest[c.GroupID]; !ok || c.YearMonth > cur.YearMonth {
			latest[c.GroupID] = c
		}
	}

	var out []RecurringCost
	for _, last := range latest {
		if !last.Active {
			continue
		}
		from, _, err := MonthRange(last.YearMonth)
		if err != nil {
			continue
		}
		for m := AddMonths(from, 1); MonthKey(m) <= targetMonth; m = AddMonths(m, 1) {
			occ := last
			occ.YearMonth = MonthKey(m)
			out = append(out, occ)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GroupID != out[j].GroupID {
			return out[i].GroupID < out[j].GroupID
		}
		return out[i].YearMonth < out[j].YearMonth
	})
	return out
}
