// Package importer resolves @import requests against a filesystem,
// generalizing always-a-single-fs.FS Importer into the
// Resolved/Passthrough/Error/NotFound chain contract 
// hands to a host, so several importers (filesystem, in-memory,
// network) can be tried in order for one request.
package importer

import (
	"io/fs"
	"path"
	"strings"
)

// Syntax names the grammar a Resolved result's source text is written
// in, since @import can splice either SCSS or the indented syntax
//.
type Syntax string

const (
	SyntaxSCSS     Syntax = "scss"
	SyntaxIndented Syntax = "sass"
)

// ResultKind discriminates Result, four outcomes for one
// importer's attempt at one @import request.
type ResultKind int

const (
	// NotFound means this importer doesn't claim the request; a Chain
	// tries the next importer, and only raises a not-found error once
	// every importer in the chain has returned NotFound.
	NotFound ResultKind = iota
	// Resolved means the request maps to real source text to parse.
	Resolved
	// Passthrough means the request should be emitted as a literal CSS
	// @import rather than spliced in.  also detects several
	// forms of this (url(...), .css, media-qualified) before the chain
	// even runs; Passthrough lets an importer claim additional cases
	// the host recognizes (a CDN path, say) that the generic heuristic
	// wouldn't catch.
	Passthrough
	// Error means this importer claims the request but failed to
	// resolve it, distinct from NotFound so the chain doesn't silently
	// try the next importer against a request one of them already
	// owns but couldn't serve.
	Error
)

// Result is what one Importer reports for one @import request.
type Result struct {
	Kind ResultKind

	AbsolutePath string // Resolved: canonical path, used as the parse-cache key
	SourceText   string // Resolved: the file's contents
	Syntax       Syntax // Resolved: which grammar to parse SourceText as

	Literal string // Passthrough: the literal CSS import statement to emit

	Message string // Error: human-readable failure reason
}

// Importer resolves one @import request against a base path (the
// importing file's own absolute path, or "" for the entry stylesheet),
// 
type Importer interface {
	Resolve(requested, base string) Result
}

// Chain tries each Importer in order and returns the first result that
// isn't NotFound (importers form an ordered chain, first
// non-NotFound result wins).
type Chain []Importer

func (c Chain) Resolve(requested, base string) Result {
	for _, imp := range c {
		if r := imp.Resolve(requested, base); r.Kind != NotFound {
			return r
		}
	}
	return Result{Kind: NotFound}
}

// FS is a filesystem-backed Importer. A request is resolved relative
// to base's own directory first, then against each of Roots in order,
// trying the Sass partial-file convention ("_name.scss" preferred over
// "name.scss") and both the SCSS and indented extensions before
// giving up.
type FS struct {
	FSys  fs.FS
	Roots []string
}

func (f FS) Resolve(requested, base string) Result {
	for _, dir := range f.searchDirs(base) {
		if abs, syntax, ok := f.find(dir, requested); ok {
			text, err := fs.ReadFile(f.FSys, abs)
			if err != nil {
				return Result{Kind: Error, Message: err.Error()}
			}
			return Result{Kind: Resolved, AbsolutePath: abs, SourceText: string(text), Syntax: syntax}
		}
	}
	return Result{Kind: NotFound}
}

func (f FS) searchDirs(base string) []string {
	dirs := []string{"."}
	if base != "" {
		dirs = []string{path.Dir(base)}
	}
	return append(dirs, f.Roots...)
}

// find checks every (partial-prefix, extension) combination Sass
// recognizes for one candidate directory.
func (f FS) find(dir, requested string) (abs string, syntax Syntax, ok bool) {
	reqDir, base := path.Split(requested)
	names := []string{"_" + base, base}
	exts := []struct {
		suffix string
		syntax Syntax
	}{
		{".scss", SyntaxSCSS},
		{".sass", SyntaxIndented},
	}

	for _, name := range names {
		for _, ext := range exts {
			candidate := name
			if !strings.HasSuffix(candidate, ext.suffix) {
				candidate += ext.suffix
			}
			full := path.Join(dir, reqDir, candidate)
			if info, err := fs.Stat(f.FSys, full); err == nil && !info.IsDir() {
				return full, ext.syntax, true
			}
		}
	}
	return "", "", false
}
