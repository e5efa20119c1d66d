package store

import "errors"

// ErrNotLoaded is returned when a mutation targets a row the store has not
// fetched. Callers should reload the relevant collection first.
var ErrNotLoaded = errors.New("store: row not loaded")
