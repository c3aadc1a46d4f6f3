package sassgo

import (
	"errors"
	"fmt"

	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/evaluator"
	"github.com/titpetric/sassgo/expander"
	"github.com/titpetric/sassgo/extend"
	"github.com/titpetric/sassgo/selector"
	"github.com/titpetric/sassgo/units"
	"github.com/titpetric/sassgo/value"
)

// ErrorKind classifies a compilation failure's taxonomy into an enum,
// since sassgo's failure modes are considerably richer than a simple
// found-or-not distinction.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidSass
	KindUndefinedVariable
	KindUndefinedMixin
	KindUndefinedFunction
	KindMissingArgument
	KindInvalidArgument
	KindDivisionByZero
	KindIncompatibleUnits
	KindDuplicateKey
	KindNotCallable
	KindNestedParentInPlaceholder
	KindUnsatisfiedExtend
	KindRecursionLimitExceeded
	KindImportNotFound
	KindImportError
	KindUserError
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidSass:
		return "InvalidSass"
	case KindUndefinedVariable:
		return "UndefinedVariable"
	case KindUndefinedMixin:
		return "UndefinedMixin"
	case KindUndefinedFunction:
		return "UndefinedFunction"
	case KindMissingArgument:
		return "MissingArgument"
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindDivisionByZero:
		return "DivisionByZero"
	case KindIncompatibleUnits:
		return "IncompatibleUnits"
	case KindDuplicateKey:
		return "DuplicateKey"
	case KindNotCallable:
		return "NotCallable"
	case KindNestedParentInPlaceholder:
		return "NestedParentInPlaceholder"
	case KindUnsatisfiedExtend:
		return "UnsatisfiedExtend"
	case KindRecursionLimitExceeded:
		return "RecursionLimitExceeded"
	case KindImportNotFound:
		return "ImportNotFound"
	case KindImportError:
		return "ImportError"
	case KindUserError:
		return "UserError"
	default:
		return "Unknown"
	}
}

// Error wraps a failure from any layer of the pipeline with the kind
// enum, a source location when one is available, and the call stack
// active when it was raised ("errors carry a kind, a
// source location, and the active call stack. It implements error's
// Unwrap so errors.Is/errors.As still reach the concrete sentinel
// beneath (units.ErrIncompatibleUnits, value.ErrDivisionByZero, ...),
// following the standard fmt.Errorf("...: %w", err) wrapping idiom.
type Error struct {
	Kind  ErrorKind
	State ast.ParserState
	Stack []expander.Frame
	Err   error
}

func (e *Error) Error() string {
	if e.State.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.State.File, e.State.Line, e.State.Column, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// classify maps a raw error from any package into the  Error
// envelope by type-switching over every typed sentinel the pipeline can
// raise; an error that matches none of them is wrapped as KindUnknown
// rather than dropped, so the caller always gets a classified Error.
func classify(err error) *Error {
	if err == nil {
		return nil
	}
	var sassErr *Error
	if errors.As(err, &sassErr) {
		return sassErr
	}

	kind := KindUnknown
	state := ast.ParserState{}
	var stack []expander.Frame

	switch e := err.(type) {
	case evaluator.ErrUndefinedVariable:
		kind = KindUndefinedVariable
	case expander.ErrUndefinedMixin:
		kind = KindUndefinedMixin
	case expander.ErrMissingArgument:
		kind = KindMissingArgument
	case expander.ErrInvalidArgument:
		kind = KindInvalidArgument
	case expander.ErrInvalidSass:
		kind = KindInvalidSass
	case expander.ErrImportNotFound:
		kind = KindImportNotFound
	case expander.ErrImportError:
		kind = KindImportError
	case expander.ErrUserError:
		kind = KindUserError
		state = e.State
	case expander.ErrRecursionLimitExceeded:
		kind = KindRecursionLimitExceeded
		for _, name := range e.Stack {
			stack = append(stack, expander.Frame{Name: name})
		}
	case value.ErrDivisionByZero:
		kind = KindDivisionByZero
	case *value.ErrDuplicateKey:
		kind = KindDuplicateKey
	case *value.ErrNotCallable:
		kind = KindNotCallable
	case selector.ErrNestedParentInPlaceholder:
		kind = KindNestedParentInPlaceholder
	case *units.ErrIncompatibleUnits:
		kind = KindIncompatibleUnits
	case extend.UnsatisfiedExtend:
		kind = KindUnsatisfiedExtend
	}

	return &Error{Kind: kind, State: state, Stack: stack, Err: err}
}
