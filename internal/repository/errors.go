package repository

import "errors"

// ErrNotFound is returned when a requested contact does not exist in the store.
var ErrNotFound = errors.New("contact not found")
