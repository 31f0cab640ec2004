package repository

import "errors"

// ErrNotFound is returned when a requested record, or the collection that
// would hold it, does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateID is returned by Append when a record with the same id is
// already stored.
var ErrDuplicateID = errors.New("duplicate id")
