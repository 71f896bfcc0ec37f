package summary

import (
	"strings"
	"testing"

	"github.com/vemurilakshmikanth/bill-splitter/internal/models"
	"github.com/vemurilakshmikanth/bill-splitter/internal/settlement"
)

func testLedger(t *testing.T) ([]models.Bill, models.Settlement, []string) {
	t.Helper()
	bills := []models.Bill{
		{
			StoreName: "Lidl", Total: 10.00, Currency: "EUR", Payer: "A",
			Items: []models.Item{
				{Name: "Bread", Price: 2.40, Participants: []string{"A", "B"}},
				{Name: "Milk", Price: 3.00, Participants: []string{"B", "Guest"}},
			},
		},
		{
			StoreName: "Aldi", Total: 9.00, Currency: "EUR", Payer: "B",
			Items: []models.Item{
				{Name: "Eggs", Price: 9.00, Participants: []string{"A", "B"}},
			},
		},
	}
	roster := []string{"A", "B", "C"}
	return bills, settlement.Compute(bills, roster), roster
}

func TestRender(t *testing.T) {
	bills, ledger, roster := testLedger(t)
	out := Render(bills, ledger, roster, "EUR")

	for _, want := range []string{
		"GRAND TOTAL: €19.00",
		"Bill 1: Lidl",
		"Total: €10.00 | Paid by: A",
		"Bill 2: Aldi",
		"A owes: €4.50",
		"-> Pays B: €4.50",
		"B owes: €2.70",
		"-> Pays A: €2.70",
		"Guest owes: €1.50",
		"* Milk - €1.50",
		"(Bill 1: Lidl, Item #2)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q\n%s", want, out)
		}
	}

	// Mutual debts both appear: no netting between A and B.
	if !strings.Contains(out, "A owes") || !strings.Contains(out, "B owes") {
		t.Error("mutual debts must both be listed")
	}

	// Debtor order: roster members before visitors.
	if strings.Index(out, "Guest owes") < strings.Index(out, "B owes") {
		t.Error("visitor listed before roster members")
	}

	// Zero-debt people are not listed as debtors.
	if strings.Contains(out, "C owes: €0.00") {
		t.Error("zero-net person should not get a section")
	}
}

func TestRender_UnknownPayerAndCurrency(t *testing.T) {
	bills := []models.Bill{{StoreName: "Shop", Total: 5.00}}
	ledger := settlement.Compute(bills, []string{"A"})
	out := Render(bills, ledger, []string{"A"}, "SEK")

	if !strings.Contains(out, "Paid by: Unknown") {
		t.Error("payerless bill should render Unknown payer")
	}
	if !strings.Contains(out, "SEK 5.00") {
		t.Errorf("unknown currency should fall back to its code:\n%s", out)
	}
}

func TestRenderPersonal(t *testing.T) {
	_, ledger, _ := testLedger(t)
	out := RenderPersonal("B", ledger["B"], "EUR")

	if !strings.HasPrefix(out, "B owes:") {
		t.Errorf("unexpected header:\n%s", out)
	}
	for _, want := range []string{"-> Pays A: €2.70", "* Bread - €1.20", "* Milk - €1.50"} {
		if !strings.Contains(out, want) {
			t.Errorf("personal summary missing %q\n%s", want, out)
		}
	}
}
