// Package sassgo is the root entry point of the Sass-to-CSS evaluator
// core: it wires the environment, evaluator, expander, and extend
// packages into a single Compile call, a thin pipeline wrapper around
// parse -> expand -> return, minus the parsing and CSS emission
// themselves, since both the source lexer/parser and the output
// renderer are external collaborators.
package sassgo

import (
	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/env"
	"github.com/titpetric/sassgo/evaluator"
	"github.com/titpetric/sassgo/expander"
	"github.com/titpetric/sassgo/functions"
	"github.com/titpetric/sassgo/value"
)

// Warning is one @warn/@debug emission captured during compilation, in
// addition to whatever Options.Logger was also sent it live; kept on
// Result so a caller that didn't bring its own Logger can still inspect
// what fired.
type Warning struct {
	Message string
	Debug   bool
	State   ast.ParserState
}

// Result is what a successful Compile call produces: the expanded,
// output-eligible CSS tree
// ready for the external emitter, plus warnings and any unsatisfied
// non-optional @extend.
type Result struct {
	Tree               []ast.Stmt
	Warnings           []Warning
	UnsatisfiedExtends []error
}

// capturingLogger wraps the configured Logger so every @warn/@debug is
// both forwarded live and collected into Result.Warnings.
type capturingLogger struct {
	inner    Logger
	warnings *[]Warning
}

func (c capturingLogger) Warn(msg string, state ast.ParserState) {
	*c.warnings = append(*c.warnings, Warning{Message: msg, State: state})
	c.inner.Warn(msg, state)
}

func (c capturingLogger) Debug(msg string, state ast.ParserState) {
	*c.warnings = append(*c.warnings, Warning{Message: msg, Debug: true, State: state})
	c.inner.Debug(msg, state)
}

// Compile expands an already-parsed stylesheet (parsing is
// an external collaborator) against a fresh global environment seeded
// with the standard built-in function library plus any host functions
// from Options.Functions, producing the output-eligible CSS tree an
// external emitter can serialize.
func Compile(stylesheet []ast.Stmt, opts Options) (*Result, error) {
	registry := functions.Builder{
		Seed: opts.Seed,
	}.Build()
	for name, fn := range opts.Functions {
		registry[name] = fn
	}

	var warnings []Warning
	logger := capturingLogger{inner: opts.logger(), warnings: &warnings}

	ex := expander.New()
	ex.Builtins = evaluator.Builtins(registry.Lookup)
	ex.Logger = logger
	ex.Parse = opts.Parse
	ex.CurrentFile = opts.Filename
	ex.RecursionLimit = opts.RecursionLimit
	ex.WhileLimit = opts.WhileLimit
	if len(opts.Importers) > 0 {
		ex.Importers = importResolverAdapter{chain: opts.Importers}
	}

	root := env.NewGlobal()
	tree, unsatisfied, err := ex.Expand(stylesheet, root)
	if err != nil {
		return nil, classify(err)
	}

	return &Result{Tree: tree, Warnings: warnings, UnsatisfiedExtends: unsatisfied}, nil
}

// CallFunction invokes a value.Func the way the introspection built-in
// call() needs to. Its signature matches Builder.CallFunction, but
// Compile does not install it there: the Builder it builds sets only
// Seed, so call() sees a nil hook.
func CallFunction(fn value.Value, positional []value.Value, named map[string]value.Value) (value.Value, error) {
	f, ok := fn.(value.Func)
	if !ok {
		return nil, &value.ErrNotCallable{Name: fn.String()}
	}
	return f.Call(positional, named)
}
