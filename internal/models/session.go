package models

// WizardState is one step of the settlement wizard. The interactive flow is
// upload -> assign -> pick payers -> settled, with backward transitions
// allowed at every step.
type WizardState string

const (
	StateUploading      WizardState = "uploading"
	StateAssigning      WizardState = "assigning"
	StatePayerSelection WizardState = "payer_selection"
	StateSettled        WizardState = "settled"
)

// Valid reports whether s is a known wizard state.
func (s WizardState) Valid() bool {
	switch s {
	case StateUploading, StateAssigning, StatePayerSelection, StateSettled:
		return true
	}
	return false
}

// Session is the working set for one settlement run: the live bill collection
// being edited plus the wizard position. Sessions are fully isolated from one
// another; the settlement ledger is always recomputed from Bills and never
// stored here.
type Session struct {
	// ID is the unique identifier for the session (UUID format).
	ID string

	// State is the current wizard step.
	State WizardState

	// Roster is the ordered list of default household members for this run.
	Roster []string

	// Bills is the ordered bill collection. Position defines the 1-based
	// bill number shown to users.
	Bills []Bill

	// CreatedAt is the Unix timestamp when the session was created.
	CreatedAt int64
}

// Bill returns the bill with the given 1-based number, or nil if out of range.
func (s *Session) Bill(number int) *Bill {
	if number < 1 || number > len(s.Bills) {
		return nil
	}
	return &s.Bills[number-1]
}

// People returns the roster followed by every name referenced by a bill that
// is not already on it (payers and visitor participants), in first-reference
// order. This is the full set of identities the ledger must track.
func (s *Session) People() []string {
	out := make([]string, 0, len(s.Roster))
	seen := make(map[string]bool, len(s.Roster))
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, p := range s.Roster {
		add(p)
	}
	for _, b := range s.Bills {
		add(b.Payer)
		for _, it := range b.Items {
			for _, p := range it.Participants {
				add(p)
			}
		}
	}
	return out
}
