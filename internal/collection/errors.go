package collection

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateID       = errors.New("duplicate card id")
	ErrNegativeQuantity  = errors.New("negative quantity")
	ErrMissingName       = errors.New("card name is empty")
	ErrUnsupportedSource = errors.New("unsupported collection source")
)

// LoadError reports that the collection could not be loaded. The UI treats it
// as an empty/error state rather than a fatal condition.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("load collection from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func loadError(src Source, err error) error {
	if err == nil {
		return nil
	}
	var le *LoadError
	if errors.As(err, &le) {
		return err
	}
	name := "<nil source>"
	if src != nil {
		name = src.Describe()
	}
	return &LoadError{Source: name, Err: err}
}
