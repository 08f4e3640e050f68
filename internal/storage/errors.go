// ABOUTME: Common storage errors
// ABOUTME: Enables consistent error handling across storage implementations

package storage

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrNoDataset is returned when no timeline dataset has been loaded yet.
var ErrNoDataset = errors.New("no dataset loaded")
