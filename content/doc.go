// Package content implements the document content state for marginalia.
//
// A State is an immutable value: blocks of text (one per logical line), the
// entity attached to each rune, zero-width entity pins, the entity map, and
// the cursor/selection. Every mutation returns a new State and leaves the
// receiver untouched, so holders can read and replace the current state
// through plain accessor functions.
//
// Coordinates are 0-based (Row, Col) in runes.
// Ranges are half-open selections in document coordinates: [Start, End).
package content
