package models

import "strings"

// Bill represents one uploaded receipt after extraction.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// StoreName is the merchant name as extracted from the receipt.
	StoreName string

	// Date is the receipt date as extracted, passed through verbatim.
	// It is informational only and may be empty.
	Date string

	// Total is the receipt's printed total. Informational only: it is not
	// required to equal the sum of item prices, and the settlement never
	// reconciles against it.
	Total float64

	// Currency is the extracted currency code (e.g. "EUR"). The whole run
	// is interpreted as a single currency; no conversion happens.
	Currency string

	// Payer is the person who fronted the money for the entire bill.
	// Empty means not yet chosen; such a bill contributes nothing to the
	// settlement.
	Payer string

	// Filename is the name of the uploaded image this bill came from.
	Filename string

	// Items are the receipt lines in extraction order.
	Items []Item

	// CreatedAt is the Unix timestamp when the bill was added to the session.
	CreatedAt int64
}

// HasPayer reports whether a payer has been chosen for this bill.
func (b *Bill) HasPayer() bool {
	return b.Payer != ""
}

// Item represents a single priced line on a bill.
type Item struct {
	// Name is the item description from the receipt.
	Name string

	// Price is the item's price. Non-negative; split evenly across the
	// participants when the item has any.
	Price float64

	// Participants are the people sharing this item. Order-preserving for
	// display, but semantically a set: use AddParticipant to keep it
	// duplicate-free. Empty means the item is still unassigned.
	Participants []string
}

// Assigned reports whether at least one participant shares this item.
func (i *Item) Assigned() bool {
	return len(i.Participants) > 0
}

// AddParticipant appends name to the participant set. It trims surrounding
// whitespace and reports whether the set changed; empty names and duplicates
// are rejected so one person can never be charged twice for the same item.
func (i *Item) AddParticipant(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for _, p := range i.Participants {
		if p == name {
			return false
		}
	}
	i.Participants = append(i.Participants, name)
	return true
}

// SetParticipants replaces the participant set, dropping empty names and
// duplicates while preserving first-occurrence order.
func (i *Item) SetParticipants(names []string) {
	i.Participants = i.Participants[:0]
	for _, n := range names {
		i.AddParticipant(n)
	}
	if len(i.Participants) == 0 {
		i.Participants = nil
	}
}
