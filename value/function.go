package value

// Callable is implemented by whatever owns a function's actual body
// (package env's mixin/function definitions, or a built-in from package
// functions). Kept as a narrow interface here so the value model doesn't
// need to import the environment or evaluator packages.
type Callable interface {
	Call(positional []Value, named map[string]Value) (Value, error)
}

// Func is the Function value variant: a reference to a user-defined or
// built-in function, plus the "was declared as a plain CSS function"
// flag requires (set for names that fall through to a
// pass-through CSS function call rather than resolving to a definition).
type Func struct {
	Name      string
	Fn        Callable
	PureCSS   bool
}

func (f Func) Type() Type   { return TypeFunction }
func (f Func) Truthy() bool { return true }
func (f Func) String() string {
	return "get-function(\"" + f.Name + "\")"
}
func (f Func) Equal(other Value) bool {
	of, ok := other.(Func)
	return ok && f.Name == of.Name
}

// Call invokes the underlying callable, or fails if this Func is a bare
// pass-through reference with no body (e.g. produced by get-function()
// for an undefined CSS function name kept only for later error
// reporting).
func (f Func) Call(positional []Value, named map[string]Value) (Value, error) {
	if f.Fn == nil {
		return nil, &ErrNotCallable{Name: f.Name}
	}
	return f.Fn.Call(positional, named)
}

// ErrNotCallable is raised calling a Func with no backing Callable.
type ErrNotCallable struct{ Name string }

func (e *ErrNotCallable) Error() string { return "function " + e.Name + " has no definition" }
