package wiki

import (
	"errors"
	"fmt"
)

// Sentinel errors for wiki operations
var (
	ErrInvalidTitle        = errors.New("invalid title")
	ErrStoreUnavailable    = errors.New("page store unavailable")
	ErrPageAlreadyExists   = errors.New("page already exists")
	ErrGenericNotFound     = errors.New("not found")
	ErrSpecialPageNotFound = errors.New("special page does not exist")
	ErrBadFormToken        = errors.New("form token is missing or expired, please resubmit the form")
)

// MalformedTitleError reports why a title could not be parsed.
// It matches ErrInvalidTitle with errors.Is.
type MalformedTitleError struct {
	Text   string
	Reason string
}

func (e *MalformedTitleError) Error() string {
	return fmt.Sprintf("invalid title %q: %s", e.Text, e.Reason)
}

func (e *MalformedTitleError) Unwrap() error {
	return ErrInvalidTitle
}

func malformed(text, reason string) error {
	return &MalformedTitleError{Text: text, Reason: reason}
}
