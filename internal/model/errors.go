package model

import "errors"

var (
	// ErrNotFound is returned when a referenced id does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrActiveSessionExists rejects starting a session while one is active.
	ErrActiveSessionExists = errors.New("an active session already exists")

	// ErrLastCategory rejects deleting the only remaining category, which
	// would leave menu items without a category to fall back to.
	ErrLastCategory = errors.New("cannot delete the last category")
)
