package models

import "sort"

// DebtDetail records the provenance of one owed amount: which item on which
// bill produced it and who the money goes to. Ordinals are 1-based and match
// the order bills and items are shown to the user.
type DebtDetail struct {
	BillNumber int
	BillName   string
	ItemNumber int
	ItemName   string
	Amount     float64
	Creditor   string
}

// Entry is one debtor's side of the ledger.
type Entry struct {
	// Owed maps creditor name to the aggregated amount this person owes them.
	Owed map[string]float64

	// Net is the total owed across all creditors.
	Net float64

	// Details lists every contributing (item, debtor) allocation in
	// (bill, item) order. The summary renderer depends on this ordering.
	Details []DebtDetail
}

// NewEntry returns an empty ledger entry.
func NewEntry() *Entry {
	return &Entry{Owed: make(map[string]float64)}
}

// Creditors returns the creditor names in first-occurrence order of Details.
// Owed is a map, so this is the only deterministic grouping order available
// to renderers.
func (e *Entry) Creditors() []string {
	seen := make(map[string]bool, len(e.Owed))
	var out []string
	for _, d := range e.Details {
		if !seen[d.Creditor] {
			seen[d.Creditor] = true
			out = append(out, d.Creditor)
		}
	}
	return out
}

// DetailsFor returns the details owed to one creditor, preserving order.
func (e *Entry) DetailsFor(creditor string) []DebtDetail {
	var out []DebtDetail
	for _, d := range e.Details {
		if d.Creditor == creditor {
			out = append(out, d)
		}
	}
	return out
}

// Settlement is the full ledger: every known person mapped to what they owe.
// Roster members always have an entry, even with zero debt; visitors appear
// once they owe something.
type Settlement map[string]*Entry

// Debtors returns everyone with a non-zero net debt, roster members first in
// roster order, then any visitors in the order their names sort.
func (s Settlement) Debtors(roster []string) []string {
	var out []string
	inRoster := make(map[string]bool, len(roster))
	for _, p := range roster {
		inRoster[p] = true
		if e, ok := s[p]; ok && e.Net > 0 {
			out = append(out, p)
		}
	}
	var visitors []string
	for p, e := range s {
		if !inRoster[p] && e.Net > 0 {
			visitors = append(visitors, p)
		}
	}
	sort.Strings(visitors)
	return append(out, visitors...)
}
