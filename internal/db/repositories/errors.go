package repositories

import "errors"

// ErrSingletonExists is returned when inserting a second row into a
// single-row table (church info, head pastor, giving info).
var ErrSingletonExists = errors.New("record already exists for singleton table")
