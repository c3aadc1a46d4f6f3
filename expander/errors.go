package expander

import (
	"fmt"
	"strings"

	"github.com/titpetric/sassgo/ast"
)

// ErrUndefinedMixin is the error kind names UndefinedMixin.
type ErrUndefinedMixin struct{ Name string }

func (e ErrUndefinedMixin) Error() string { return fmt.Sprintf("undefined mixin %q", e.Name) }

// ErrRecursionLimitExceeded reports that mixin/function/@include call
// depth exceeded its configured limit, carrying the call stack
// (mixin/function names, innermost last) for diagnostics.
type ErrRecursionLimitExceeded struct{ Stack []string }

func (e ErrRecursionLimitExceeded) Error() string {
	return fmt.Sprintf("recursion limit exceeded: %s", strings.Join(e.Stack, " -> "))
}

// ErrInvalidSass is InvalidSass: a statement used somewhere
// the language doesn't permit it (e.g. @content with no enclosing
// mixin, @extend outside a style rule).
type ErrInvalidSass struct{ Message string }

func (e ErrInvalidSass) Error() string { return e.Message }

// ErrImportNotFound reports that every importer in the chain returned
// NotFound.
type ErrImportNotFound struct{ Requested string }

func (e ErrImportNotFound) Error() string {
	return fmt.Sprintf("can't find stylesheet to import: %q", e.Requested)
}

// ErrImportError reports that an importer reported a hard failure
// rather than NotFound.
type ErrImportError struct{ Requested, Message string }

func (e ErrImportError) Error() string {
	return fmt.Sprintf("error importing %q: %s", e.Requested, e.Message)
}

// ErrUserError is UserError, raised by an explicit
// @error statement.
type ErrUserError struct {
	Message string
	State   ast.ParserState
}

func (e ErrUserError) Error() string { return e.Message }

// ErrMissingArgument is MissingArgument.
type ErrMissingArgument struct{ Callee, Param string }

func (e ErrMissingArgument) Error() string {
	return fmt.Sprintf("%s: missing argument $%s", e.Callee, e.Param)
}

// ErrInvalidArgument is InvalidArgument.
type ErrInvalidArgument struct{ Callee, Message string }

func (e ErrInvalidArgument) Error() string { return fmt.Sprintf("%s: %s", e.Callee, e.Message) }
