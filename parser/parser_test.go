package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/marcuscaisey/lox/ast"
	"github.com/marcuscaisey/lox/parser"
)

func sprintProgram(t *testing.T, stmts []ast.Stmt) string {
	t.Helper()
	var parts []string
	for _, stmt := range stmts {
		parts = append(parts, ast.Sprint(stmt))
	}
	return strings.Join(parts, "\n")
}

// Every accepted program round-trips to the same AST shape under the
// canonical pretty-printer: parsing the same source twice gives identical
// s-expressions.
func TestParseIsDeterministic(t *testing.T) {
	const src = `
class Greeter {
	init(name) { this.name = name; }
	greet() { print "hi " + this.name; }
}
var g = Greeter("world");
g.greet();
`
	stmts1, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse returned error: %s", err)
	}
	stmts2, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse returned error: %s", err)
	}
	got1, got2 := sprintProgram(t, stmts1), sprintProgram(t, stmts2)
	if got1 != got2 {
		t.Errorf("pretty-printed ASTs differ between identical parses:\n%s\n---\n%s", got1, got2)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3;", "(BinaryExpr\n  (LiteralExpr\n    1)\n  +\n  (BinaryExpr\n    (LiteralExpr\n      2)\n    *\n    (LiteralExpr\n      3)))"},
		{"- - 1;", "(UnaryExpr\n  -\n  (UnaryExpr\n    -\n    (LiteralExpr\n      1)))"},
		{"!!true;", "(UnaryExpr\n  !\n  (UnaryExpr\n    !\n    (LiteralExpr\n      true)))"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			stmts, err := parser.Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse returned error: %s", err)
			}
			exprStmt := stmts[0].(*ast.ExprStmt)
			got := ast.Sprint(exprStmt.Expr)
			if got != tt.want {
				t.Errorf("got\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

// Assignment is right-associative: `a = b = c` binds as `a = (b = c)`.
func TestAssignmentIsRightAssociative(t *testing.T) {
	stmts, err := parser.Parse("a = b = c;")
	if err != nil {
		t.Fatalf("Parse returned error: %s", err)
	}
	outer, ok := stmts[0].(*ast.ExprStmt).Expr.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("top-level expression is %T, want *ast.AssignExpr", stmts[0].(*ast.ExprStmt).Expr)
	}
	if outer.Name.Lexeme != "a" {
		t.Errorf("outer assignment target = %s, want a", outer.Name.Lexeme)
	}
	inner, ok := outer.Value.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("assigned value is %T, want *ast.AssignExpr", outer.Value)
	}
	if inner.Name.Lexeme != "b" {
		t.Errorf("inner assignment target = %s, want b", inner.Name.Lexeme)
	}
}

func TestInvalidAssignmentTarget(t *testing.T) {
	_, err := parser.Parse("1 = 2;")
	if err == nil {
		t.Fatal("Parse returned no error for an invalid assignment target")
	}
}

func paramList(n int) string {
	params := make([]string, n)
	for i := range params {
		params[i] = fmt.Sprintf("p%d", i)
	}
	return strings.Join(params, ", ")
}

func TestParameterCountLimit(t *testing.T) {
	src255 := fmt.Sprintf("fun f(%s) {}", paramList(255))
	if _, err := parser.Parse(src255); err != nil {
		t.Errorf("255 parameters rejected: %s", err)
	}

	src256 := fmt.Sprintf("fun f(%s) {}", paramList(256))
	if _, err := parser.Parse(src256); err == nil {
		t.Error("256 parameters accepted, want a parse error")
	}
}

func TestArgumentCountLimit(t *testing.T) {
	src255 := fmt.Sprintf("f(%s);", paramList(255))
	if _, err := parser.Parse(src255); err != nil {
		t.Errorf("255 arguments rejected: %s", err)
	}

	src256 := fmt.Sprintf("f(%s);", paramList(256))
	if _, err := parser.Parse(src256); err == nil {
		t.Error("256 arguments accepted, want a parse error")
	}
}

// for (init; cond; incr) body desugars to a block at parse time.
func TestForStmtDesugarsToWhile(t *testing.T) {
	stmts, err := parser.Parse("for (var i = 0; i < 10; i = i + 1) print i;")
	if err != nil {
		t.Fatalf("Parse returned error: %s", err)
	}
	block, ok := stmts[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("for statement is %T, want *ast.BlockStmt", stmts[0])
	}
	if _, ok := block.Stmts[0].(*ast.VarStmt); !ok {
		t.Errorf("first statement in desugared block is %T, want *ast.VarStmt", block.Stmts[0])
	}
	whileStmt, ok := block.Stmts[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("second statement in desugared block is %T, want *ast.WhileStmt", block.Stmts[1])
	}
	body, ok := whileStmt.Body.(*ast.BlockStmt)
	if !ok {
		t.Fatalf("while body is %T, want *ast.BlockStmt", whileStmt.Body)
	}
	if len(body.Stmts) != 2 {
		t.Errorf("desugared while body has %d statements, want 2 (original body + increment)", len(body.Stmts))
	}
}

func TestClassWithSuperclass(t *testing.T) {
	stmts, err := parser.Parse("class B < A {}")
	if err != nil {
		t.Fatalf("Parse returned error: %s", err)
	}
	classStmt := stmts[0].(*ast.ClassStmt)
	if classStmt.Superclass == nil {
		t.Fatal("Superclass is nil, want a *ast.VariableExpr naming A")
	}
	if got := classStmt.Superclass.Name.Lexeme; got != "A" {
		t.Errorf("superclass name = %s, want A", got)
	}
}
