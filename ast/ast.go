// Package ast defines the types used to represent the abstract syntax tree
// of a Lox program.
package ast

import "github.com/marcuscaisey/lox/token"

// Node is implemented by every Expr and Stmt.
type Node interface {
	Pos() token.Position
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// LiteralExpr is a literal number, string, boolean, or nil.
//
// Value holds a float64, string, bool, or nil.
type LiteralExpr struct {
	Token token.Token
	Value any
}

func (e *LiteralExpr) Pos() token.Position { return e.Token.Start }
func (*LiteralExpr) exprNode()             {}

// GroupingExpr is a parenthesised expression.
type GroupingExpr struct {
	LeftParen token.Position
	Expr      Expr
}

func (e *GroupingExpr) Pos() token.Position { return e.LeftParen }
func (*GroupingExpr) exprNode()             {}

// UnaryExpr is a prefix operator applied to a single operand: `!x`, `-x`.
type UnaryExpr struct {
	Op      token.Token
	Operand Expr
}

func (e *UnaryExpr) Pos() token.Position { return e.Op.Start }
func (*UnaryExpr) exprNode()             {}

// BinaryExpr is an arithmetic or comparison operator applied to two
// operands.
type BinaryExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (e *BinaryExpr) Pos() token.Position { return e.Left.Pos() }
func (*BinaryExpr) exprNode()             {}

// LogicalExpr is `and` or `or`, which short-circuit and yield an operand
// value rather than a coerced boolean.
type LogicalExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (e *LogicalExpr) Pos() token.Position { return e.Left.Pos() }
func (*LogicalExpr) exprNode()             {}

// VariableExpr reads the value bound to an identifier.
//
// ID is a unique identity for this syntactic occurrence, assigned by the
// parser; the resolver keys its scope-depth map by ID rather than by Name,
// since the same name can appear at many unrelated reference sites.
type VariableExpr struct {
	ID   int
	Name token.Token
}

func (e *VariableExpr) Pos() token.Position { return e.Name.Start }
func (*VariableExpr) exprNode()             {}

// AssignExpr assigns Value to the variable Name.
type AssignExpr struct {
	ID    int
	Name  token.Token
	Value Expr
}

func (e *AssignExpr) Pos() token.Position { return e.Name.Start }
func (*AssignExpr) exprNode()             {}

// CallExpr calls Callee with Args.
type CallExpr struct {
	Callee Expr
	Paren  token.Position
	Args   []Expr
}

func (e *CallExpr) Pos() token.Position { return e.Callee.Pos() }
func (*CallExpr) exprNode()             {}

// GetExpr reads a property of an object.
type GetExpr struct {
	Object Expr
	Name   token.Token
}

func (e *GetExpr) Pos() token.Position { return e.Object.Pos() }
func (*GetExpr) exprNode()             {}

// SetExpr assigns Value to a property of an object.
type SetExpr struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

func (e *SetExpr) Pos() token.Position { return e.Object.Pos() }
func (*SetExpr) exprNode()             {}

// ThisExpr reads the instance bound to the enclosing method call.
type ThisExpr struct {
	ID    int
	Token token.Token
}

func (e *ThisExpr) Pos() token.Position { return e.Token.Start }
func (*ThisExpr) exprNode()             {}

// SuperExpr reads Method from the enclosing class's superclass, bound to the
// current instance.
type SuperExpr struct {
	ID     int
	Token  token.Token
	Method token.Token
}

func (e *SuperExpr) Pos() token.Position { return e.Token.Start }
func (*SuperExpr) exprNode()             {}

// ExprStmt is an expression evaluated for its side effects, its value
// discarded.
type ExprStmt struct {
	Expr Expr
}

func (s *ExprStmt) Pos() token.Position { return s.Expr.Pos() }
func (*ExprStmt) stmtNode()             {}

// PrintStmt prints the formatted value of Expr followed by a newline.
type PrintStmt struct {
	Keyword token.Position
	Expr    Expr
}

func (s *PrintStmt) Pos() token.Position { return s.Keyword }
func (*PrintStmt) stmtNode()             {}

// VarStmt declares Name in the current scope, optionally binding it to the
// value of Initializer.
type VarStmt struct {
	Keyword     token.Position
	Name        token.Token
	Initializer Expr // nil if absent
}

func (s *VarStmt) Pos() token.Position { return s.Keyword }
func (*VarStmt) stmtNode()             {}

// BlockStmt is a brace-delimited sequence of statements executed in a new
// child scope.
type BlockStmt struct {
	LeftBrace token.Position
	Stmts     []Stmt
}

func (s *BlockStmt) Pos() token.Position { return s.LeftBrace }
func (*BlockStmt) stmtNode()             {}

// IfStmt executes Then if Cond is truthy, otherwise Else (which may be nil).
type IfStmt struct {
	Keyword token.Position
	Cond    Expr
	Then    Stmt
	Else    Stmt // nil if absent
}

func (s *IfStmt) Pos() token.Position { return s.Keyword }
func (*IfStmt) stmtNode()             {}

// WhileStmt executes Body repeatedly while Cond is truthy.
type WhileStmt struct {
	Keyword token.Position
	Cond    Expr
	Body    Stmt
}

func (s *WhileStmt) Pos() token.Position { return s.Keyword }
func (*WhileStmt) stmtNode()             {}

// FunctionStmt declares a named function (or, when nested inside a
// ClassStmt, a method).
type FunctionStmt struct {
	Keyword token.Position
	Name    token.Token
	Params  []token.Token
	Body    []Stmt
}

func (s *FunctionStmt) Pos() token.Position { return s.Keyword }
func (*FunctionStmt) stmtNode()             {}

// ReturnStmt unwinds to the enclosing call site with the value of Value, or
// nil if Value is absent.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr // nil if absent
}

func (s *ReturnStmt) Pos() token.Position { return s.Keyword.Start }
func (*ReturnStmt) stmtNode()             {}

// ClassStmt declares a class, optionally inheriting from Superclass.
type ClassStmt struct {
	Keyword    token.Position
	Name       token.Token
	Superclass *VariableExpr // nil if absent
	Methods    []*FunctionStmt
}

func (s *ClassStmt) Pos() token.Position { return s.Keyword }
func (*ClassStmt) stmtNode()             {}
