package repositories

import "errors"

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a conditional update finds the record in a
// state that no longer satisfies the update's precondition (for example a
// second pickup verification, or closing an already-closed payment).
var ErrConflict = errors.New("record state conflict")
