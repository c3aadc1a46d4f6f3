// Command sassgo is a minimal demonstration of the evaluator core:
// since lexing/parsing an actual .scss file is an external collaborator
//, this builds a small statement tree directly with the
// ast package's constructors and runs it through sassgo.Compile,
// printing the resulting output-eligible tree. A host wiring a real
// front end only needs to supply Options.Parse and hand Compile its
// parsed entry stylesheet instead.
package main

import (
	"fmt"
	"os"

	"github.com/titpetric/sassgo"
	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/value"
)

func main() {
	result, err := sassgo.Compile(demoStylesheet(), sassgo.Options{Filename: "demo.scss"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "sassgo: %v\n", err)
		os.Exit(1)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "sassgo: %s\n", w.Message)
	}
	printTree(result.Tree, 0)
}

// demoStylesheet hand-builds the tree a parser would produce for:
//
//	$base: 10px;
//	.card {
//	  width: $base * 2;
//	  &:hover { color: red; }
//	}
func demoStylesheet() []ast.Stmt {
	assign := ast.Stmt{
		Kind:        ast.StmtAssignment,
		AssignName:  "base",
		AssignValue: exprPtr(ast.NewLiteral(value.NewNumberUnit(10, "px"), ast.ParserState{})),
	}

	width := ast.Stmt{
		Kind:     ast.StmtDeclaration,
		PropName: ast.SchemaValue{Parts: []ast.SchemaPart{{Literal: "width"}}},
		PropValue: exprPtr(ast.NewBinary(ast.OpMul,
			ast.NewVariable("base", ast.ParserState{}),
			ast.NewLiteral(value.NewNumber(2), ast.ParserState{}),
			ast.ParserState{})),
	}

	hover := ast.Stmt{
		Kind:     ast.StmtRuleset,
		Selector: ast.SelectorSchema{Parts: []ast.SchemaPart{{Literal: "&:hover"}}},
		Body: []ast.Stmt{{
			Kind:      ast.StmtDeclaration,
			PropName:  ast.SchemaValue{Parts: []ast.SchemaPart{{Literal: "color"}}},
			PropValue: exprPtr(ast.NewLiteral(value.NewRGBA(255, 0, 0, 1), ast.ParserState{})),
		}},
	}

	card := ast.Stmt{
		Kind:     ast.StmtRuleset,
		Selector: ast.SelectorSchema{Parts: []ast.SchemaPart{{Literal: ".card"}}},
		Body:     []ast.Stmt{width, hover},
	}

	return []ast.Stmt{assign, card}
}

func exprPtr(e ast.Expr) *ast.Expr { return &e }

func printTree(stmts []ast.Stmt, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	for _, st := range stmts {
		switch st.Kind {
		case ast.StmtRuleset:
			fmt.Printf("%s%s {\n", indent, st.Selector.Resolved.String())
			printTree(st.Body, depth+1)
			fmt.Printf("%s}\n", indent)
		case ast.StmtDeclaration:
			v, _ := st.PropValue.Literal.(value.Value)
			fmt.Printf("%s%s: %s;\n", indent, st.PropName.Resolved, v.String())
		default:
			printTree(st.Body, depth)
		}
	}
}
