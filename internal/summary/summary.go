// Package summary renders the settlement ledger as shareable plain text.
// Everything rendered comes from the ledger's own fields plus the bill
// headers; nothing is recomputed here.
package summary

import (
	"fmt"
	"strings"

	"github.com/vemurilakshmikanth/bill-splitter/internal/models"
)

const rule = "=================================================="

// symbol maps common currency codes to their display symbol. Unknown codes
// fall back to the code itself with a space.
func symbol(currency string) string {
	switch strings.ToUpper(currency) {
	case "EUR":
		return "€"
	case "USD":
		return "$"
	case "GBP":
		return "£"
	case "INR":
		return "₹"
	default:
		if currency == "" {
			return ""
		}
		return currency + " "
	}
}

// Render produces the group summary: grand total, the bill list with payers,
// then one section per debtor grouped by creditor with per-item provenance.
// Debtors appear in roster order, then visitors; creditor groups follow the
// ledger's detail order, so the text matches how the run unfolded.
func Render(bills []models.Bill, ledger models.Settlement, roster []string, currency string) string {
	cur := symbol(currency)
	var b strings.Builder

	b.WriteString("BILL SETTLEMENT SUMMARY\n")
	b.WriteString(rule + "\n\n")

	b.WriteString("BILLS:\n")
	var grandTotal float64
	for i, bill := range bills {
		grandTotal += bill.Total
		payer := bill.Payer
		if payer == "" {
			payer = "Unknown"
		}
		fmt.Fprintf(&b, "Bill %d: %s\n", i+1, bill.StoreName)
		fmt.Fprintf(&b, "Total: %s%.2f | Paid by: %s\n\n", cur, bill.Total, payer)
	}

	fmt.Fprintf(&b, "GRAND TOTAL: %s%.2f\n", cur, grandTotal)
	b.WriteString(rule + "\n\n")

	b.WriteString("DETAILED SETTLEMENT:\n\n")
	for _, person := range ledger.Debtors(roster) {
		entry := ledger[person]
		b.WriteString(rule + "\n")
		fmt.Fprintf(&b, "%s owes: %s%.2f\n", person, cur, entry.Net)
		b.WriteString(rule + "\n\n")
		writeCreditorGroups(&b, entry, cur)
		b.WriteString("\n")
	}

	b.WriteString(rule + "\n")
	b.WriteString("Please add your amounts to Splitwise\n")
	return b.String()
}

// RenderPersonal produces the short per-person message for one debtor.
func RenderPersonal(person string, entry *models.Entry, currency string) string {
	cur := symbol(currency)
	var b strings.Builder
	fmt.Fprintf(&b, "%s owes:\n\n", person)
	writeCreditorGroups(&b, entry, cur)
	return b.String()
}

func writeCreditorGroups(b *strings.Builder, entry *models.Entry, cur string) {
	for _, creditor := range entry.Creditors() {
		fmt.Fprintf(b, "-> Pays %s: %s%.2f\n", creditor, cur, entry.Owed[creditor])
		details := entry.DetailsFor(creditor)
		fmt.Fprintf(b, "  Items (%d):\n", len(details))
		for _, d := range details {
			fmt.Fprintf(b, "  * %s - %s%.2f\n", d.ItemName, cur, d.Amount)
			fmt.Fprintf(b, "    (Bill %d: %s, Item #%d)\n", d.BillNumber, d.BillName, d.ItemNumber)
		}
		b.WriteString("\n")
	}
}
