package models

import "errors"

// ErrDuplicate is returned by the store when an insert hits a unique key.
var ErrDuplicate = errors.New("record already exists")

// DuplicateError names the column whose unique key an insert collided with.
// It matches ErrDuplicate under errors.Is.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return ErrDuplicate.Error() + ": " + e.Field
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// DuplicateField returns the column behind a duplicate error, or "" when err
// is not one.
func DuplicateField(err error) string {
	var dup *DuplicateError
	if errors.As(err, &dup) {
		return dup.Field
	}
	return ""
}
