package settlement

import (
	"testing"

	"github.com/vemurilakshmikanth/bill-splitter/internal/models"
)

func TestProgress(t *testing.T) {
	bills := []models.Bill{
		{
			Items: []models.Item{
				{Name: "Milk", Price: 1.00, Participants: []string{"A"}},
				{Name: "Bread", Price: 2.00},
			},
		},
		{
			Items: []models.Item{
				{Name: "Eggs", Price: 3.00, Participants: []string{"A", "B"}},
			},
		},
	}

	assigned, total := Progress(bills)
	if assigned != 2 || total != 3 {
		t.Errorf("Progress = (%d, %d), want (2, 3)", assigned, total)
	}

	assigned, total = Progress(nil)
	if assigned != 0 || total != 0 {
		t.Errorf("Progress(nil) = (%d, %d), want (0, 0)", assigned, total)
	}
}

func TestUnpaidBills(t *testing.T) {
	bills := []models.Bill{
		{StoreName: "A", Payer: "Chandu"},
		{StoreName: "B"},
		{StoreName: "C"},
	}
	if got := UnpaidBills(bills); got != 2 {
		t.Errorf("UnpaidBills = %d, want 2", got)
	}
}
