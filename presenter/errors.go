package presenter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidDeclaration is wrapped by every DeclarationError.
	ErrInvalidDeclaration = errors.New("invalid presenter declaration")
	// ErrUndefinedMethod is returned when a name is sent to an instance that
	// neither declares nor forwards it.
	ErrUndefinedMethod = errors.New("undefined presenter method")
	// ErrArgumentMismatch is returned when a resolved member cannot accept the
	// arguments it was called with.
	ErrArgumentMismatch = errors.New("argument mismatch")
)

// DeclarationError describes a malformed declaration statement.
type DeclarationError struct {
	// Presenter is the name of the type being declared.
	Presenter string
	// Names are the attribute, slot or method names of the statement.
	Names []string
	// Reason is the human-readable description.
	Reason string
}

// Error implements error.
func (e *DeclarationError) Error() string {
	if len(e.Names) == 0 {
		return fmt.Sprintf("%s: %s", e.Presenter, e.Reason)
	}

	return fmt.Sprintf("%s: %s: %s", e.Presenter, strings.Join(e.Names, ", "), e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidDeclaration) hold.
func (e *DeclarationError) Unwrap() error {
	return ErrInvalidDeclaration
}
