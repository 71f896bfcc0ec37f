package settlement

import "github.com/vemurilakshmikanth/bill-splitter/internal/models"

// Progress reports how far item assignment has come: the number of items
// with at least one participant, and the total item count across all bills.
// Pure function of the bill collection.
func Progress(bills []models.Bill) (assigned, total int) {
	for _, bill := range bills {
		total += len(bill.Items)
		for _, item := range bill.Items {
			if item.Assigned() {
				assigned++
			}
		}
	}
	return assigned, total
}

// UnpaidBills counts bills that still have no payer. Such bills are skipped
// by Compute but count as incomplete for the wizard's gating.
func UnpaidBills(bills []models.Bill) int {
	var n int
	for _, bill := range bills {
		if !bill.HasPayer() {
			n++
		}
	}
	return n
}
