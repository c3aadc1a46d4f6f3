// Package env implements the lexically-scoped environment a stylesheet
// evaluates against: a stack of scopes, each holding insertion-ordered
// variable/mixin/function tables and a pointer to its static-chain
// parent.
package env

import "github.com/titpetric/sassgo/value"

// Kind distinguishes the three scope flavors names.
type Kind int

const (
	// Global is the single root scope.
	Global Kind = iota
	// Lexical scopes are function/mixin bodies: they close over their
	// definition-site static chain, not the caller's.
	Lexical
	// Block scopes are transparent to !default: @if/@each/@for/@while
	// bodies push one of these so assignments without !global still
	// land in the nearest non-block ancestor when the variable already
	// exists there.
	Block
)

type entry struct {
	key string
	val value.Value
}

// table is an insertion-ordered name -> value.Value map, giving
// variable declaration order explicit tracking rather than relying on
// Go's unordered map iteration.
type table struct {
	index map[string]int
	items []entry
}

func newTable() *table {
	return &table{index: make(map[string]int)}
}

func (t *table) get(name string) (value.Value, bool) {
	if i, ok := t.index[name]; ok {
		return t.items[i].val, true
	}
	return nil, false
}

func (t *table) set(name string, v value.Value) {
	if i, ok := t.index[name]; ok {
		t.items[i].val = v
		return
	}
	t.index[name] = len(t.items)
	t.items = append(t.items, entry{key: name, val: v})
}

func (t *table) keys() []string {
	out := make([]string, len(t.items))
	for i, e := range t.items {
		out[i] = e.key
	}
	return out
}

// Scope is one frame of the environment's static chain.
type Scope struct {
	kind   Kind
	parent *Scope

	vars      *table
	mixins    *table
	functions *table
}

// NewGlobal creates the root scope for a fresh compilation.
func NewGlobal() *Scope {
	return &Scope{kind: Global, vars: newTable(), mixins: newTable(), functions: newTable()}
}

// PushLexical opens a new lexical scope (function/mixin body) whose
// static parent is s — not necessarily the caller's scope, since Sass
// mixins/functions close over their definition site.
func (s *Scope) PushLexical() *Scope {
	return &Scope{kind: Lexical, parent: s, vars: newTable(), mixins: newTable(), functions: newTable()}
}

// PushBlock opens a transparent block scope (@if/@each/@for/@while body).
func (s *Scope) PushBlock() *Scope {
	return &Scope{kind: Block, parent: s, vars: newTable(), mixins: newTable(), functions: newTable()}
}

// Parent returns s's static-chain parent, or nil for the global scope.
func (s *Scope) Parent() *Scope { return s.parent }

// Kind reports which of Global/Lexical/Block s is.
func (s *Scope) Kind() Kind { return s.kind }

// Root walks the static chain to the global scope.
func (s *Scope) Root() *Scope {
	cur := s
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// GetVar performs lexical lookup: this scope, then every ancestor up
// to and including the global scope.
func (s *Scope) GetVar(name string) (value.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars.get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// GetVarLocal performs local-only lookup (this scope's own table).
func (s *Scope) GetVarLocal(name string) (value.Value, bool) {
	return s.vars.get(name)
}

// SetVar assigns name in the nearest scope (s or an ancestor) whose own
// table already defines it, or, if no scope defines it, creates it in
// the nearest non-block scope — this is the default (no
// !global/!default flag) assignment semantics: block scopes are
// transparent, so `@if { $x: 1 }` updates an existing outer $x in
// place rather than shadowing it.
func (s *Scope) SetVar(name string, v value.Value) {
	if owner := s.findOwner(name); owner != nil {
		owner.vars.set(name, v)
		return
	}
	s.nearestNonBlock().vars.set(name, v)
}

// SetVarGlobal assigns name in the root scope ($x !global).
func (s *Scope) SetVarGlobal(name string, v value.Value) {
	s.Root().vars.set(name, v)
}

// SetVarDefault assigns name only if it is currently undefined or Null
// in the resolved target scope ($x !default). The target is the same
// one plain SetVar would pick.
func (s *Scope) SetVarDefault(name string, v value.Value) {
	target := s.findOwner(name)
	if target == nil {
		target = s.nearestNonBlock()
	}
	if existing, ok := target.vars.get(name); ok {
		if _, isNull := existing.(value.Null); !isNull {
			return
		}
	}
	target.vars.set(name, v)
}

// findOwner returns the nearest ancestor scope (including s) whose own
// table already defines name, or nil if none does.
func (s *Scope) findOwner(name string) *Scope {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.vars.get(name); ok {
			return cur
		}
	}
	return nil
}

// nearestNonBlock walks up past Block scopes to find where a fresh
// local variable should actually be declared.
func (s *Scope) nearestNonBlock() *Scope {
	cur := s
	for cur.kind == Block && cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// GetMixin performs lexical lookup for a mixin definition.
func (s *Scope) GetMixin(name string) (value.Callable, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.mixins.get(name); ok {
			if c, ok := v.(value.Func); ok {
				return c.Fn, true
			}
		}
	}
	return nil, false
}

// SetMixin declares a mixin in s's own table.
func (s *Scope) SetMixin(name string, c value.Callable) {
	s.mixins.set(name, value.Func{Name: name, Fn: c})
}

// GetFunction performs lexical lookup for a user-defined function.
func (s *Scope) GetFunction(name string) (value.Callable, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.functions.get(name); ok {
			if c, ok := v.(value.Func); ok {
				return c.Fn, true
			}
		}
	}
	return nil, false
}

// SetFunction declares a user-defined function in s's own table.
func (s *Scope) SetFunction(name string, c value.Callable) {
	s.functions.set(name, value.Func{Name: name, Fn: c})
}

// VarNames returns the names visible to s, in the order each was first
// declared along the static chain from global outward to s (used by
// introspection builtins like global-variable-exists()/keywords()-
// adjacent debugging, and by tests asserting declaration order).
func (s *Scope) VarNames() []string {
	var chain []*Scope
	for cur := s; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	seen := make(map[string]bool)
	var out []string
	for i := len(chain) - 1; i >= 0; i-- {
		for _, k := range chain[i].vars.keys() {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	return out
}
