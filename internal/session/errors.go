package session

import (
	"errors"
	"fmt"

	"github.com/vemurilakshmikanth/bill-splitter/internal/models"
)

var (
	// ErrNoBills is returned when leaving the upload step with nothing uploaded.
	ErrNoBills = errors.New("no bills uploaded yet")

	// ErrBillNotFound is returned for an out-of-range bill number.
	ErrBillNotFound = errors.New("bill number out of range")

	// ErrItemNotFound is returned for an out-of-range item number.
	ErrItemNotFound = errors.New("item number out of range")

	// ErrEmptyName is returned when a participant or payer name is blank.
	ErrEmptyName = errors.New("name must not be empty")
)

// IncompleteAssignmentError reports why the wizard cannot move to the settled
// step yet. It is a caller-level guard: the settlement engine itself never
// raises it and will happily compute a speculative ledger that just omits the
// incomplete pieces.
type IncompleteAssignmentError struct {
	UnassignedItems int
	UnpaidBills     int
}

func (e *IncompleteAssignmentError) Error() string {
	return fmt.Sprintf("settlement incomplete: %d items unassigned, %d bills without payer",
		e.UnassignedItems, e.UnpaidBills)
}

// InvalidTransitionError reports an illegal wizard move.
type InvalidTransitionError struct {
	From models.WizardState
	To   models.WizardState
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move from %s to %s", e.From, e.To)
}
