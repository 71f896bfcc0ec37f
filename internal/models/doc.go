// Package models defines the core domain models for the bill splitter.
//
// # Models
//
//   - Bill: one uploaded receipt with a payer and a sequence of priced items
//   - Item: a single line on a bill, shared by a set of participants
//   - Settlement: the computed ledger of who owes whom, with provenance
//   - Session: the working set for one settlement run, driven by a wizard FSM
//
// People are identified by open, case-sensitive name strings. The household
// roster is a fixed ordered list, but ad-hoc "visitor" names can appear in any
// item's participant set, so nothing in these models enumerates people as a
// closed type.
//
// # Design principles
//
//  1. Participant lists preserve insertion order for display but behave as
//     sets: adding a duplicate name is a no-op.
//  2. Bills are numbered 1-based by their position in the session's list;
//     that ordinal is user-facing provenance and must stay stable.
//  3. The Settlement ledger is a derived view. It is recomputed from the
//     bills and holds no independent mutable state.
package models
