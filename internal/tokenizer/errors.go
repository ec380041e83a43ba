package tokenizer

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrConfigNotFound      = errors.New("tokenizer config not found")
	ErrInvalidConfig       = errors.New("invalid tokenizer config")
	ErrMalformedLabel      = errors.New("malformed vocabulary label")
	ErrMissingSpecialToken = errors.New("special token missing from vocabulary")
	ErrDuplicateTokenID    = errors.New("duplicate token ID in vocabulary")
	ErrDuplicateToken      = errors.New("duplicate token in vocabulary")
)

// LabelError provides detailed information about a label that could not be decoded.
type LabelError struct {
	Label  string // Label as it appears in the config artifact
	Reason string // What is wrong with it
}

// Error implements the error interface.
func (e *LabelError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrMalformedLabel, e.Label, e.Reason)
}

// Unwrap makes errors.Is(err, ErrMalformedLabel) hold.
func (e *LabelError) Unwrap() error {
	return ErrMalformedLabel
}
