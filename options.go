package sassgo

import (
	"log"

	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/expander"
	"github.com/titpetric/sassgo/functions"
	"github.com/titpetric/sassgo/importer"
)

// Logger receives @warn/@debug diagnostics. The default implementation
// writes through the standard library's log package with bare
// log.Printf calls, generalized into an injectable interface so a host
// can capture warnings instead of letting them hit stderr.
type Logger interface {
	Warn(msg string, state ast.ParserState)
	Debug(msg string, state ast.ParserState)
}

// stdLogger is the zero-configuration default.
type stdLogger struct{ l *log.Logger }

func newStdLogger() *stdLogger { return &stdLogger{l: log.Default()} }

func (s *stdLogger) Warn(msg string, state ast.ParserState) {
	s.l.Printf("WARNING: %s%s", msg, locationSuffix(state))
}

func (s *stdLogger) Debug(msg string, state ast.ParserState) {
	s.l.Printf("DEBUG: %s%s", msg, locationSuffix(state))
}

func locationSuffix(state ast.ParserState) string {
	if state.File == "" {
		return ""
	}
	return " (" + state.File + ")"
}

// Options configures one Compile call: entry filename, import
// resolution, host-supplied functions, and warning/debug logging.
type Options struct {
	// Filename is the entry stylesheet's path, used to resolve its own
	// relative @import requests and reported in error locations.
	Filename string

	// IncludePaths lists extra search directories. Compile does not read
	// it and builds no importer from it; directories are searched only
	// by an importer.FS in Importers whose Roots field lists them.
	IncludePaths []string

	// Importers is the ordered resolution chain for @import. If empty,
	// every non-literal @import fails with ImportNotFound.
	Importers importer.Chain

	// Parse re-enters the external parser to turn imported source text
	// into a statement tree. Required for @import of real stylesheets;
	// the entry stylesheet is always supplied already parsed, since
	// parsing is outside this module's scope.
	Parse func(source, syntax string) ([]ast.Stmt, error)

	// Functions are additional built-ins layered on top of the standard
	// library, consulted
	// before the standard registry.
	Functions functions.Registry

	// Logger receives @warn/@debug output; defaults to stdLogger.
	Logger Logger

	// Seed drives the PRNG backing random()/random($limit), making output reproducible for golden-file tests.
	Seed int64

	// RecursionLimit caps mixin/function/@include call depth; zero means the package default (1024).
	RecursionLimit int
	// WhileLimit caps @while iterations; zero means the
	// package default (512).
	WhileLimit int
}

func (o Options) logger() Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return newStdLogger()
}

// importResolverAdapter adapts an importer.Chain into expander.ImportResolver;
// the two packages define structurally parallel but distinct Result
// types (expander's Syntax field is a plain string) to avoid importer
// depending on expander for a handful of constants.
type importResolverAdapter struct {
	chain importer.Chain
}

func (a importResolverAdapter) Resolve(requested, base string) expander.ImportResult {
	r := a.chain.Resolve(requested, base)
	switch r.Kind {
	case importer.Resolved:
		return expander.ImportResult{
			Kind:         expander.ImportResolved,
			AbsolutePath: r.AbsolutePath,
			SourceText:   r.SourceText,
			Syntax:       string(r.Syntax),
		}
	case importer.Passthrough:
		return expander.ImportResult{Kind: expander.ImportPassthrough, Literal: r.Literal}
	case importer.Error:
		return expander.ImportResult{Kind: expander.ImportFailed, Message: r.Message}
	default:
		return expander.ImportResult{Kind: expander.ImportNotFound}
	}
}
