package subview

import (
	"errors"
	"fmt"
)

var (
	// ErrNameConflict is returned by Register when the name already maps to a
	// live child.
	ErrNameConflict = errors.New("name is taken")
	// ErrNotFound is returned by Destroy when the name has no live child.
	ErrNotFound = errors.New("subview does not exist")
	// ErrInvalidName is returned by Register for an empty name.
	ErrInvalidName = errors.New("name must not be empty")
	// ErrNilComponent is returned by Register when the factory builds nothing.
	ErrNilComponent = errors.New("factory returned a nil component")
)

// NameError records a registry operation that failed for a specific name.
type NameError struct {
	// Op is the registry operation ("register" or "destroy").
	Op string
	// Name is the offending child name.
	Name string
	// Err is one of the sentinel errors of this package.
	Err error
}

func (e *NameError) Error() string {
	switch {
	case errors.Is(e.Err, ErrNameConflict):
		return fmt.Sprintf("subview: name %q is taken", e.Name)
	case errors.Is(e.Err, ErrNotFound):
		return fmt.Sprintf("subview: view %q doesn't exist", e.Name)
	}
	return fmt.Sprintf("subview: %s %q: %v", e.Op, e.Name, e.Err)
}

func (e *NameError) Unwrap() error {
	return e.Err
}
