package scene

import (
	"errors"
	"fmt"
)

// Error represents a scene graph mutation failure.
//
// Mutation errors include:
//   - Not found: an operation named an object id that does not exist
//   - Mixed parents: GroupObjects was given non-sibling objects
//   - Not a group: UngroupObject was given a non-group object
//   - Duplicate id: an insert would reuse an existing id
//
// Error includes structured fields so callers can branch on the failure
// category without string matching.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// ObjectID identifies the offending object, when there is one.
	ObjectID string
}

// ErrorCode categorizes scene graph errors.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a referenced object id does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeMixedParents indicates GroupObjects input spans several parents.
	ErrCodeMixedParents ErrorCode = "MIXED_PARENTS"

	// ErrCodeNotGroup indicates an ungroup target is not a group object.
	ErrCodeNotGroup ErrorCode = "NOT_A_GROUP"

	// ErrCodeDuplicateID indicates an insert would collide with a live id.
	ErrCodeDuplicateID ErrorCode = "DUPLICATE_ID"

	// ErrCodeEmptyInput indicates an operation was given no object ids.
	ErrCodeEmptyInput ErrorCode = "EMPTY_INPUT"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.ObjectID != "" {
		return fmt.Sprintf("%s: %s (object=%s)", e.Code, e.Message, e.ObjectID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNotFound returns true if the error is a missing-object error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == ErrCodeNotFound
	}
	return false
}

// IsMixedParents returns true if the error is a non-sibling grouping error.
func IsMixedParents(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == ErrCodeMixedParents
	}
	return false
}

// NewNotFound creates an Error for a missing object id.
func NewNotFound(id string) *Error {
	return &Error{
		Code:     ErrCodeNotFound,
		Message:  "object does not exist",
		ObjectID: id,
	}
}

// NewMixedParents creates an Error for a grouping request spanning parents.
func NewMixedParents(id string) *Error {
	return &Error{
		Code:     ErrCodeMixedParents,
		Message:  "grouped objects must share the same parent",
		ObjectID: id,
	}
}

// NewNotGroup creates an Error for ungrouping a non-group object.
func NewNotGroup(id string) *Error {
	return &Error{
		Code:     ErrCodeNotGroup,
		Message:  "object is not a group",
		ObjectID: id,
	}
}

// NewDuplicateID creates an Error for an id collision on insert.
func NewDuplicateID(id string) *Error {
	return &Error{
		Code:     ErrCodeDuplicateID,
		Message:  "object id already exists",
		ObjectID: id,
	}
}

// NewEmptyInput creates an Error for an operation given no ids.
func NewEmptyInput(op string) *Error {
	return &Error{
		Code:    ErrCodeEmptyInput,
		Message: fmt.Sprintf("%s requires at least one object id", op),
	}
}
