// Package settlement folds a bill collection into the pairwise debt ledger.
//
// Rounding policy: each item split is rounded to 2 decimals at the point of
// allocation using banker's (half-even) rounding, and aggregates are sums of
// those already-rounded increments. The sum of splits can therefore drift
// from a bill's printed total by up to a cent per extra participant. That
// drift is accepted behavior; do not switch to remainder-distribution
// rounding to reconcile it.
package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/vemurilakshmikanth/bill-splitter/internal/models"
)

// Compute folds bills, in order, into a Settlement ledger for the given
// roster. It is a pure function of its arguments: it never mutates the bills
// and calling it twice on the same input yields an identical ledger.
//
// Incomplete data is omitted rather than rejected, so the ledger can be
// computed speculatively at any point of the wizard:
//   - a bill without a payer contributes nothing
//   - an item without participants contributes nothing
//   - a participant who is the bill's payer never owes themselves
//
// Every roster member gets an entry even with zero debt. Debtors outside the
// roster (visitors) get entries created on demand.
func Compute(bills []models.Bill, roster []string) models.Settlement {
	ledger := make(models.Settlement, len(roster))
	for _, person := range roster {
		ledger[person] = models.NewEntry()
	}

	for billIdx, bill := range bills {
		if !bill.HasPayer() {
			continue
		}
		billNumber := billIdx + 1

		for itemIdx, item := range bill.Items {
			shares := distinct(item.Participants)
			if len(shares) == 0 {
				continue
			}
			split := Split(item.Price, len(shares))

			for _, participant := range shares {
				if participant == bill.Payer {
					continue
				}
				entry, ok := ledger[participant]
				if !ok {
					entry = models.NewEntry()
					ledger[participant] = entry
				}
				entry.Owed[bill.Payer] += split
				entry.Net += split
				entry.Details = append(entry.Details, models.DebtDetail{
					BillNumber: billNumber,
					BillName:   bill.StoreName,
					ItemNumber: itemIdx + 1,
					ItemName:   item.Name,
					Amount:     split,
					Creditor:   bill.Payer,
				})
			}
		}
	}

	// Defensive re-round: aggregates are sums of rounded increments, so this
	// only scrubs float accumulation noise.
	for _, entry := range ledger {
		entry.Net = roundCents(entry.Net)
		for creditor, amount := range entry.Owed {
			entry.Owed[creditor] = roundCents(amount)
		}
	}

	return ledger
}

// Split returns one person's share of price divided among n participants,
// rounded half-even to 2 decimals. The rounding happens here, per
// allocation, not on the remainder.
func Split(price float64, n int) float64 {
	return decimal.NewFromFloat(price).
		Div(decimal.NewFromInt(int64(n))).
		RoundBank(2).
		InexactFloat64()
}

func roundCents(v float64) float64 {
	return decimal.NewFromFloat(v).RoundBank(2).InexactFloat64()
}

// distinct returns names with duplicates removed, preserving first-occurrence
// order. Participant lists are semantically sets; a duplicated name must not
// double-charge.
func distinct(names []string) []string {
	if len(names) < 2 {
		return names
	}
	seen := make(map[string]bool, len(names))
	out := names[:0:0]
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
