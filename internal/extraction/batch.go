package extraction

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/vemurilakshmikanth/bill-splitter/internal/models"
)

// File is one uploaded bill image.
type File struct {
	Name string
	Data []byte
}

// Failure records a per-file extraction failure. The Raw text, when the
// failure came from the normalizer, is surfaced to the user for diagnosis.
type Failure struct {
	Filename string
	Err      error
}

// ExtractAll runs extraction for every file, each in isolation: one bad image
// or flaky call never aborts the others. At most limit calls run at a time
// (limit <= 0 means one at a time).
//
// Returned bills keep the input file order, which later becomes the 1-based
// bill numbering, so the order must not depend on completion timing.
func ExtractAll(ctx context.Context, client Client, files []File, limit int) ([]models.Bill, []Failure) {
	if limit <= 0 {
		limit = 1
	}

	type slot struct {
		bill *models.Bill
		err  error
	}
	slots := make([]slot, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, file := range files {
		g.Go(func() error {
			// Failures land in the slot, not the group: returning an error
			// here would cancel the sibling extractions.
			bill, err := extractOne(ctx, client, file)
			slots[i] = slot{bill: bill, err: err}
			return nil
		})
	}
	g.Wait()

	var bills []models.Bill
	var failures []Failure
	for i, s := range slots {
		if s.err != nil {
			slog.Warn("bill extraction failed", "file", files[i].Name, "error", s.err)
			failures = append(failures, Failure{Filename: files[i].Name, Err: s.err})
			continue
		}
		bills = append(bills, *s.bill)
	}
	return bills, failures
}

func extractOne(ctx context.Context, client Client, file File) (*models.Bill, error) {
	raw, err := client.Extract(ctx, file.Data, MediaTypeFor(file.Name))
	if err != nil {
		return nil, err
	}
	bill, err := Normalize(raw)
	if err != nil {
		return nil, err
	}
	bill.Filename = file.Name
	return bill, nil
}
