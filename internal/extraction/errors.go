package extraction

import "fmt"

// ExtractionError reports that the extraction service's output could not be
// turned into a bill. It carries the raw text so the user can see what the
// service actually returned. One bad image never aborts the batch: the caller
// reports the failure and moves on.
type ExtractionError struct {
	// Raw is the original service output, before any fence stripping.
	Raw string

	// Reason describes what was wrong with the output.
	Reason string

	// Err is the underlying parse error, if any.
	Err error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction output rejected: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("extraction output rejected: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
