package session

import (
	"github.com/vemurilakshmikanth/bill-splitter/internal/models"
	"github.com/vemurilakshmikanth/bill-splitter/internal/settlement"
)

// The wizard is a simple chain. Moving forward has per-step guards; moving
// back is always allowed and loses no data
// since the bill collection is the single shared model across steps.
var forward = map[models.WizardState]models.WizardState{
	models.StateUploading:      models.StateAssigning,
	models.StateAssigning:      models.StatePayerSelection,
	models.StatePayerSelection: models.StateSettled,
}

var backward = map[models.WizardState]models.WizardState{
	models.StateAssigning:      models.StateUploading,
	models.StatePayerSelection: models.StateAssigning,
	models.StateSettled:        models.StatePayerSelection,
}

// advance moves the session one step forward, enforcing the step's guard.
func advance(s *models.Session) error {
	next, ok := forward[s.State]
	if !ok {
		return &InvalidTransitionError{From: s.State, To: s.State}
	}

	switch s.State {
	case models.StateUploading:
		if len(s.Bills) == 0 {
			return ErrNoBills
		}
	case models.StateAssigning:
		if assigned, total := settlement.Progress(s.Bills); assigned < total {
			return &IncompleteAssignmentError{UnassignedItems: total - assigned}
		}
	case models.StatePayerSelection:
		if unpaid := settlement.UnpaidBills(s.Bills); unpaid > 0 {
			return &IncompleteAssignmentError{UnpaidBills: unpaid}
		}
	}

	s.State = next
	return nil
}

// back moves the session one step backward.
func back(s *models.Session) error {
	prev, ok := backward[s.State]
	if !ok {
		return &InvalidTransitionError{From: s.State, To: s.State}
	}
	s.State = prev
	return nil
}
