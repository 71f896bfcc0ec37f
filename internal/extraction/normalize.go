// Package extraction turns bill photos into canonical Bill records via an
// external vision model, and validates the model's free-form text output.
package extraction

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vemurilakshmikanth/bill-splitter/internal/models"
)

// billPayload is the canonical on-the-wire shape the extraction service is
// prompted to produce. Pointers distinguish missing fields from zero values.
type billPayload struct {
	StoreName *string       `json:"store_name"`
	Date      string        `json:"date"`
	Total     *float64      `json:"total"`
	Currency  *string       `json:"currency"`
	Items     []itemPayload `json:"items"`
}

type itemPayload struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

// Normalize validates raw extraction output and produces a Bill. The model
// may wrap its JSON in a fenced code block (with or without a language tag)
// or return it bare; both are tolerated. On malformed output it returns an
// *ExtractionError carrying the raw text.
//
// The returned bill has no payer and every item starts with an empty
// participant set; assignment happens later in the wizard.
func Normalize(raw string) (*models.Bill, error) {
	text := stripFence(raw)

	var payload billPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, &ExtractionError{Raw: raw, Reason: "output is not a JSON object", Err: err}
	}

	switch {
	case payload.StoreName == nil:
		return nil, &ExtractionError{Raw: raw, Reason: "missing store_name"}
	case payload.Total == nil:
		return nil, &ExtractionError{Raw: raw, Reason: "missing total"}
	case payload.Currency == nil:
		return nil, &ExtractionError{Raw: raw, Reason: "missing currency"}
	case payload.Items == nil:
		return nil, &ExtractionError{Raw: raw, Reason: "missing items"}
	}

	bill := &models.Bill{
		StoreName: *payload.StoreName,
		Date:      payload.Date,
		Total:     *payload.Total,
		Currency:  *payload.Currency,
		Items:     make([]models.Item, 0, len(payload.Items)),
	}
	for i, item := range payload.Items {
		if item.Name == nil || item.Price == nil {
			return nil, &ExtractionError{
				Raw:    raw,
				Reason: fmt.Sprintf("items[%d] is missing name or price", i),
			}
		}
		bill.Items = append(bill.Items, models.Item{
			Name:  *item.Name,
			Price: *item.Price,
		})
	}
	return bill, nil
}

// stripFence extracts the JSON body from the first well-formed fenced code
// block, preferring a block explicitly tagged json. Without a closing fence,
// or without any fence at all, the whole (trimmed) string is returned.
func stripFence(s string) string {
	if body, ok := between(s, "```json"); ok {
		return body
	}
	if body, ok := between(s, "```"); ok {
		// A generic fence may still carry a language tag on the opening
		// line; drop it if that line holds no JSON.
		if nl := strings.IndexByte(body, '\n'); nl >= 0 {
			first := body[:nl]
			if first != "" && !strings.ContainsAny(first, "{[") {
				return strings.TrimSpace(body[nl+1:])
			}
		}
		return body
	}
	return strings.TrimSpace(s)
}

// between returns the trimmed text between the first occurrence of open and
// the next closing triple-backtick fence. A missing closing fence is
// tolerated: everything after the opening delimiter is taken.
func between(s, open string) (string, bool) {
	start := strings.Index(s, open)
	if start < 0 {
		return "", false
	}
	rest := s[start+len(open):]
	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest), true
}
