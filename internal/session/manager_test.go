package session

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/vemurilakshmikanth/bill-splitter/internal/models"
	"github.com/vemurilakshmikanth/bill-splitter/internal/storage"
	"github.com/vemurilakshmikanth/bill-splitter/internal/storage/memory"
)

func newTestManager(t *testing.T) (*Manager, *models.Session) {
	t.Helper()
	m := NewManager(memory.New())
	session, err := m.Create(context.Background(), []string{"A", "B", "C"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return m, session
}

func twoBills() []models.Bill {
	return []models.Bill{
		{
			StoreName: "Lidl", Total: 10, Currency: "EUR",
			Items: []models.Item{
				{Name: "Bread", Price: 2.40},
				{Name: "Milk", Price: 1.20},
			},
		},
		{
			StoreName: "Aldi", Total: 5, Currency: "EUR",
			Items: []models.Item{
				{Name: "Eggs", Price: 3.00},
			},
		},
	}
}

func TestManager_CreateDefaults(t *testing.T) {
	m := NewManager(memory.New())
	session, err := m.Create(context.Background(), nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if session.State != models.StateUploading {
		t.Errorf("state = %s, want %s", session.State, models.StateUploading)
	}
	if !reflect.DeepEqual(session.Roster, models.DefaultRoster()) {
		t.Errorf("empty roster should fall back to the default household")
	}
	if session.ID == "" {
		t.Error("session ID not generated")
	}
}

func TestManager_AssignAndVisitors(t *testing.T) {
	m, session := newTestManager(t)
	ctx := context.Background()

	if _, err := m.AddBills(ctx, session.ID, twoBills()); err != nil {
		t.Fatalf("AddBills failed: %v", err)
	}

	got, err := m.AssignParticipants(ctx, session.ID, 1, 1, []string{"A", "B", "A"})
	if err != nil {
		t.Fatalf("AssignParticipants failed: %v", err)
	}
	want := []string{"A", "B"} // duplicate collapsed
	if !reflect.DeepEqual(got.Bills[0].Items[0].Participants, want) {
		t.Errorf("participants = %v, want %v", got.Bills[0].Items[0].Participants, want)
	}

	got, err = m.AddVisitor(ctx, session.ID, 1, 1, "  Guest ")
	if err != nil {
		t.Fatalf("AddVisitor failed: %v", err)
	}
	want = []string{"A", "B", "Guest"}
	if !reflect.DeepEqual(got.Bills[0].Items[0].Participants, want) {
		t.Errorf("participants = %v, want %v", got.Bills[0].Items[0].Participants, want)
	}

	// Adding the same visitor again is a no-op.
	got, err = m.AddVisitor(ctx, session.ID, 1, 1, "Guest")
	if err != nil {
		t.Fatalf("AddVisitor failed: %v", err)
	}
	if !reflect.DeepEqual(got.Bills[0].Items[0].Participants, want) {
		t.Errorf("duplicate visitor changed set: %v", got.Bills[0].Items[0].Participants)
	}

	if _, err := m.AddVisitor(ctx, session.ID, 1, 1, "   "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("blank visitor: err = %v, want ErrEmptyName", err)
	}
	if _, err := m.AssignParticipants(ctx, session.ID, 9, 1, []string{"A"}); !errors.Is(err, ErrBillNotFound) {
		t.Errorf("out-of-range bill: err = %v, want ErrBillNotFound", err)
	}
	if _, err := m.AssignParticipants(ctx, session.ID, 1, 9, []string{"A"}); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("out-of-range item: err = %v, want ErrItemNotFound", err)
	}
}

func TestManager_WizardFlow(t *testing.T) {
	m, session := newTestManager(t)
	ctx := context.Background()

	// Cannot leave the upload step with no bills.
	if _, err := m.Advance(ctx, session.ID); !errors.Is(err, ErrNoBills) {
		t.Fatalf("Advance: err = %v, want ErrNoBills", err)
	}

	if _, err := m.AddBills(ctx, session.ID, twoBills()); err != nil {
		t.Fatalf("AddBills failed: %v", err)
	}
	got, err := m.Advance(ctx, session.ID)
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if got.State != models.StateAssigning {
		t.Fatalf("state = %s, want %s", got.State, models.StateAssigning)
	}

	// Cannot leave assigning while items are unassigned.
	_, err = m.Advance(ctx, session.ID)
	var incomplete *IncompleteAssignmentError
	if !errors.As(err, &incomplete) {
		t.Fatalf("Advance: err = %v, want IncompleteAssignmentError", err)
	}
	if incomplete.UnassignedItems != 3 {
		t.Errorf("unassigned = %d, want 3", incomplete.UnassignedItems)
	}

	for bill, items := range map[int]int{1: 2, 2: 1} {
		for item := 1; item <= items; item++ {
			if _, err := m.AssignParticipants(ctx, session.ID, bill, item, []string{"A", "B"}); err != nil {
				t.Fatalf("AssignParticipants failed: %v", err)
			}
		}
	}
	if _, err := m.Advance(ctx, session.ID); err != nil {
		t.Fatalf("Advance to payer selection failed: %v", err)
	}

	// Cannot settle while bills lack payers.
	_, err = m.Advance(ctx, session.ID)
	if !errors.As(err, &incomplete) || incomplete.UnpaidBills != 2 {
		t.Fatalf("Advance: err = %v, want 2 unpaid bills", err)
	}

	if _, err := m.SetPayer(ctx, session.ID, 1, "A"); err != nil {
		t.Fatalf("SetPayer failed: %v", err)
	}
	if _, err := m.SetPayer(ctx, session.ID, 2, "B"); err != nil {
		t.Fatalf("SetPayer failed: %v", err)
	}
	got, err = m.Advance(ctx, session.ID)
	if err != nil {
		t.Fatalf("Advance to settled failed: %v", err)
	}
	if got.State != models.StateSettled {
		t.Fatalf("state = %s, want %s", got.State, models.StateSettled)
	}

	// No step past settled.
	var invalid *InvalidTransitionError
	if _, err := m.Advance(ctx, session.ID); !errors.As(err, &invalid) {
		t.Errorf("Advance past settled: err = %v, want InvalidTransitionError", err)
	}

	// Back walks the chain in reverse, down to uploading and no further.
	for _, want := range []models.WizardState{
		models.StatePayerSelection, models.StateAssigning, models.StateUploading,
	} {
		got, err = m.Back(ctx, session.ID)
		if err != nil {
			t.Fatalf("Back failed: %v", err)
		}
		if got.State != want {
			t.Fatalf("state = %s, want %s", got.State, want)
		}
	}
	if _, err := m.Back(ctx, session.ID); !errors.As(err, &invalid) {
		t.Errorf("Back past uploading: err = %v, want InvalidTransitionError", err)
	}
}

func TestManager_SpeculativeSettlement(t *testing.T) {
	m, session := newTestManager(t)
	ctx := context.Background()

	bills := twoBills()
	bills[0].Payer = "A"
	bills[0].Items[0].Participants = []string{"A", "B"}
	if _, err := m.AddBills(ctx, session.ID, bills); err != nil {
		t.Fatalf("AddBills failed: %v", err)
	}

	// Settlement works mid-wizard: the unassigned items and the payerless
	// second bill are just omitted.
	ledger, _, err := m.Settlement(ctx, session.ID)
	if err != nil {
		t.Fatalf("Settlement failed: %v", err)
	}
	if got := ledger["B"].Owed["A"]; got != 1.20 {
		t.Errorf("B owes A = %v, want 1.20", got)
	}
	if ledger["C"].Net != 0 {
		t.Errorf("C net = %v, want 0", ledger["C"].Net)
	}
}

func TestManager_SessionIsolation(t *testing.T) {
	m := NewManager(memory.New())
	ctx := context.Background()

	first, _ := m.Create(ctx, []string{"A"})
	second, _ := m.Create(ctx, []string{"B"})

	if _, err := m.AddBills(ctx, first.ID, twoBills()); err != nil {
		t.Fatalf("AddBills failed: %v", err)
	}

	got, err := m.Get(ctx, second.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.Bills) != 0 {
		t.Error("bills leaked across sessions")
	}

	if err := m.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := m.Get(ctx, first.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
