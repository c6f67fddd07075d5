package routes

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDeclaration is matched by every error describing a structurally
// invalid route declaration. A bootstrap that receives it must refuse to
// start.
var ErrInvalidDeclaration = errors.New("invalid route declaration")

// DeclarationError describes why a single declaration was rejected.
type DeclarationError struct {
	Method  string
	Pattern string
	Name    string
	Reason  string
	Err     error
}

func (e *DeclarationError) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrInvalidDeclaration.Error())
	if e.Name != "" {
		fmt.Fprintf(&sb, " %s", e.Name)
	}
	fmt.Fprintf(&sb, " (%s %q): %s", e.Method, e.Pattern, e.Reason)
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

// Is reports true for ErrInvalidDeclaration.
func (e *DeclarationError) Is(target error) bool {
	return target == ErrInvalidDeclaration
}

func (e *DeclarationError) Unwrap() error {
	return e.Err
}
