package extraction

import (
	"errors"
	"strings"
	"testing"
)

const validJSON = `{
	"store_name": "Lidl",
	"date": "2026-01-17",
	"total": 45.80,
	"currency": "EUR",
	"items": [
		{"name": "Bread", "price": 2.40},
		{"name": "Milk", "price": 1.15}
	]
}`

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		reason  string
	}{
		{name: "bare JSON", raw: validJSON},
		{name: "json-tagged fence", raw: "Here is the bill:\n```json\n" + validJSON + "\n```\nDone."},
		{name: "generic fence", raw: "```\n" + validJSON + "\n```"},
		{name: "generic fence with language tag", raw: "```text\n" + validJSON + "\n```"},
		{name: "unterminated fence", raw: "```json\n" + validJSON},
		{name: "not JSON at all", raw: "I could not read this receipt.", wantErr: true, reason: "not a JSON object"},
		{name: "missing store_name", raw: `{"total": 1, "currency": "EUR", "items": []}`, wantErr: true, reason: "store_name"},
		{name: "missing total", raw: `{"store_name": "X", "currency": "EUR", "items": []}`, wantErr: true, reason: "total"},
		{name: "missing currency", raw: `{"store_name": "X", "total": 1, "items": []}`, wantErr: true, reason: "currency"},
		{name: "missing items", raw: `{"store_name": "X", "total": 1, "currency": "EUR"}`, wantErr: true, reason: "items"},
		{name: "malformed item", raw: `{"store_name": "X", "total": 1, "currency": "EUR", "items": [{"name": "Bread"}]}`, wantErr: true, reason: "items[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bill, err := Normalize(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				var extErr *ExtractionError
				if !errors.As(err, &extErr) {
					t.Fatalf("error is %T, want *ExtractionError", err)
				}
				if extErr.Raw != tt.raw {
					t.Error("ExtractionError must carry the original raw text")
				}
				if tt.reason != "" && !strings.Contains(extErr.Reason, tt.reason) {
					t.Errorf("reason %q does not mention %q", extErr.Reason, tt.reason)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
			if bill.StoreName != "Lidl" || bill.Currency != "EUR" || bill.Total != 45.80 {
				t.Errorf("bill header mismatch: %+v", bill)
			}
			if len(bill.Items) != 2 || bill.Items[0].Name != "Bread" || bill.Items[1].Price != 1.15 {
				t.Errorf("items mismatch: %+v", bill.Items)
			}
			if bill.HasPayer() {
				t.Error("normalized bill must start without a payer")
			}
			for _, item := range bill.Items {
				if item.Assigned() {
					t.Error("normalized items must start with empty participants")
				}
			}
		})
	}
}

func TestNormalize_DateOptional(t *testing.T) {
	bill, err := Normalize(`{"store_name": "X", "total": 1, "currency": "EUR", "items": []}`)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if bill.Date != "" {
		t.Errorf("date = %q, want empty passthrough", bill.Date)
	}
}

func TestStripFence_PrefersJSONTag(t *testing.T) {
	raw := "```\nnot json\n```\n```json\n{\"a\":1}\n```"
	if got := stripFence(raw); got != `{"a":1}` {
		t.Errorf("stripFence = %q, want the json-tagged block", got)
	}
}

func TestMediaTypeFor(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"bill.png", "image/png"},
		{"BILL.PNG", "image/png"},
		{"bill.jpg", "image/jpeg"},
		{"bill.jpeg", "image/jpeg"},
		{"weird.webp", "image/jpeg"},
	}
	for _, tt := range tests {
		if got := MediaTypeFor(tt.filename); got != tt.want {
			t.Errorf("MediaTypeFor(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
