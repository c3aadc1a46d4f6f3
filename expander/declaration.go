package expander

import (
	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/env"
)

// expandDeclaration evaluates a property's name and value. A dotted
// prefix from an enclosing nested-declaration block (e.g.
// "font: { family: sans; }" -> "font-family: sans") is threaded in by
// the caller, not read off the tree, since flattening can nest
// arbitrarily deep.
func (ex *Expander) expandDeclaration(st ast.Stmt, scope *env.Scope, prefix string) ([]ast.Stmt, flow, error) {
	ev := ex.evaluator(scope)
	name, err := ev.Interpolate(st.PropName.Parts)
	if err != nil {
		return nil, flow{}, err
	}
	full := name
	if prefix != "" {
		full = prefix + "-" + name
	}

	var out []ast.Stmt
	if st.PropValue != nil {
		v, err := ev.Eval(*st.PropValue)
		if err != nil {
			return nil, flow{}, err
		}
		lit := ast.NewLiteral(v, st.State)
		out = append(out, ast.Stmt{
			Kind:       ast.StmtDeclaration,
			PropName:   ast.SchemaValue{Resolved: full},
			PropValue:  &lit,
			Important:  st.Important,
			CustomProp: st.CustomProp,
			State:      st.State,
		})
	}

	for _, child := range st.Body {
		if child.Kind != ast.StmtDeclaration {
			produced, fl, err := ex.expandStmt(child, scope)
			if err != nil {
				return nil, flow{}, err
			}
			out = append(out, produced...)
			if fl.kind == flowReturn {
				return out, fl, nil
			}
			continue
		}
		produced, fl, err := ex.expandDeclaration(child, scope, full)
		if err != nil {
			return nil, flow{}, err
		}
		out = append(out, produced...)
		if fl.kind == flowReturn {
			return out, fl, nil
		}
	}
	return out, flow{}, nil
}

// expandAssignment implements three assignment flags:
// plain (nearest scope already defining it, else the nearest non-block
// scope), !global (root
// scope, creating it there if it doesn't already exist anywhere), and
// !default (only if currently undefined or null).
func (ex *Expander) expandAssignment(st ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	ev := ex.evaluator(scope)
	v, err := ev.Eval(*st.AssignValue)
	if err != nil {
		return nil, flow{}, err
	}
	switch {
	case st.AssignGlobal:
		scope.SetVarGlobal(st.AssignName, v)
	case st.AssignDefault:
		scope.SetVarDefault(st.AssignName, v)
	default:
		scope.SetVar(st.AssignName, v)
	}
	return nil, flow{}, nil
}
