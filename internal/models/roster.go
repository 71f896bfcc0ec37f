package models

// defaultRoster is the fixed household. Order matters: the assignment UI and
// the summary both list people in this order.
var defaultRoster = []string{
	"Chandu", "Jaffer", "Lucky", "Indra", "Neeraj",
	"Shyam", "Amrit", "Jai", "Talan", "Chandu Dadi",
}

// DefaultRoster returns a copy of the default household roster.
func DefaultRoster() []string {
	out := make([]string, len(defaultRoster))
	copy(out, defaultRoster)
	return out
}
