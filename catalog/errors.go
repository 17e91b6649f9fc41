package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound means every source answered and none held the record.
var ErrNotFound = errors.New("not found")

// SourceUnavailable wraps a failed fetch or query against a source.
type SourceUnavailable struct {
	Source string
	Err    error
}

func (e *SourceUnavailable) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("source unavailable: %v", e.Err)
	}
	return fmt.Sprintf("source %s unavailable: %v", e.Source, e.Err)
}

func (e *SourceUnavailable) Unwrap() error {
	return e.Err
}

// Unavailable wraps err for source. Nil stays nil.
func Unavailable(source string, err error) error {
	if err == nil {
		return nil
	}

	var already *SourceUnavailable
	if errors.As(err, &already) {
		return err
	}

	return &SourceUnavailable{Source: source, Err: err}
}

// IsNotFound reports whether err is a not found condition.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnavailable reports whether err came from a failing source.
func IsUnavailable(err error) bool {
	var target *SourceUnavailable
	return errors.As(err, &target)
}
