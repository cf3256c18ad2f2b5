// Package resolver performs the static analysis pass between parsing and
// evaluation: it pre-computes the lexical scope depth of every variable,
// this, and super reference, and rejects a fixed catalogue of semantic
// errors before the program runs.
package resolver

import (
	"github.com/marcuscaisey/lox/ast"
	"github.com/marcuscaisey/lox/loxerr"
	"github.com/marcuscaisey/lox/token"
)

// funcType tracks whether the resolver is currently inside a function body,
// and if so what kind, so that return-related rules can be enforced.
type funcType int

const (
	funcNone funcType = iota
	funcFunction
	funcMethod
	funcInitializer
)

// classType tracks whether the resolver is currently inside a class body,
// and if so whether that class has a superclass, so that this/super rules
// can be enforced.
type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// scope maps a name to whether it has finished being defined: false means
// "declared, initializer still being resolved", true means "ready for use".
type scope map[string]bool

// Resolve walks stmts, recording a scope depth for every Variable, Assign,
// This, and Super expression in the returned map (keyed by the expression's
// ID, since an identifier's text alone collides across unrelated reference
// sites). An expression absent from the map refers to a global.
//
// If any semantic error is found, Resolve keeps looking for more and
// returns every one it collected, joined into a single error.
func Resolve(stmts []ast.Stmt) (map[int]int, error) {
	r := &resolver{depths: make(map[int]int)}
	r.resolveStmts(stmts)
	return r.depths, r.errs.Err()
}

type resolver struct {
	scopes   []scope
	depths   map[int]int
	curFunc  funcType
	curClass classType
	errs     loxerr.List
}

func (r *resolver) errorf(pos token.Position, format string, args ...any) {
	r.errs = append(r.errs, loxerr.Newf(loxerr.ResolveError, pos, format, args...))
}

func (r *resolver) beginScope() { r.scopes = append(r.scopes, scope{}) }
func (r *resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = false
}

func (r *resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveRef records the scope depth of a reference to name at the given ID,
// if it resolves to a local. A reference left out of the map is global.
func (r *resolver) resolveRef(id int, name string) {
	for depth := 0; depth < len(r.scopes); depth++ {
		scope := r.scopes[len(r.scopes)-1-depth]
		if _, ok := scope[name]; ok {
			r.depths[id] = depth
			return
		}
	}
}

func (r *resolver) resolveStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		r.resolveStmt(stmt)
	}
}

func (r *resolver) resolveStmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.VarStmt:
		r.declare(stmt.Name)
		if stmt.Initializer != nil {
			r.resolveExpr(stmt.Initializer)
		}
		r.define(stmt.Name)

	case *ast.FunctionStmt:
		r.declare(stmt.Name)
		r.define(stmt.Name)
		r.resolveFunction(stmt, funcFunction)

	case *ast.ClassStmt:
		r.resolveClass(stmt)

	case *ast.ExprStmt:
		r.resolveExpr(stmt.Expr)

	case *ast.PrintStmt:
		r.resolveExpr(stmt.Expr)

	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(stmt.Stmts)
		r.endScope()

	case *ast.IfStmt:
		r.resolveExpr(stmt.Cond)
		r.resolveStmt(stmt.Then)
		if stmt.Else != nil {
			r.resolveStmt(stmt.Else)
		}

	case *ast.WhileStmt:
		r.resolveExpr(stmt.Cond)
		r.resolveStmt(stmt.Body)

	case *ast.ReturnStmt:
		if r.curFunc == funcNone {
			r.errorf(stmt.Pos(), "can't return from top-level code")
		}
		if stmt.Value != nil {
			if r.curFunc == funcInitializer {
				r.errorf(stmt.Value.Pos(), "can't return a value from an initializer")
			}
			r.resolveExpr(stmt.Value)
		}

	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *resolver) resolveFunction(fn *ast.FunctionStmt, typ funcType) {
	enclosingFunc := r.curFunc
	r.curFunc = typ
	defer func() { r.curFunc = enclosingFunc }()

	r.beginScope()
	defer r.endScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
}

func (r *resolver) resolveClass(stmt *ast.ClassStmt) {
	enclosingClass := r.curClass
	r.curClass = classClass
	defer func() { r.curClass = enclosingClass }()

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Superclass != nil {
		if stmt.Superclass.Name.Lexeme == stmt.Name.Lexeme {
			r.errorf(stmt.Superclass.Pos(), "a class can't inherit from itself")
		} else {
			r.curClass = classSubclass
			r.resolveExpr(stmt.Superclass)
		}
	}

	if stmt.Superclass != nil {
		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
		defer r.endScope()
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true
	defer r.endScope()

	for _, method := range stmt.Methods {
		methodType := funcMethod
		if method.Name.Lexeme == "init" {
			methodType = funcInitializer
		}
		r.resolveFunction(method, methodType)
	}
}

func (r *resolver) resolveExpr(expr ast.Expr) {
	switch expr := expr.(type) {
	case *ast.LiteralExpr:

	case *ast.GroupingExpr:
		r.resolveExpr(expr.Expr)

	case *ast.UnaryExpr:
		r.resolveExpr(expr.Operand)

	case *ast.BinaryExpr:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)

	case *ast.LogicalExpr:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)

	case *ast.VariableExpr:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][expr.Name.Lexeme]; ok && !defined {
				r.errorf(expr.Pos(), "can't read local variable %s in its own initializer", expr.Name.Lexeme)
			}
		}
		r.resolveRef(expr.ID, expr.Name.Lexeme)

	case *ast.AssignExpr:
		r.resolveExpr(expr.Value)
		r.resolveRef(expr.ID, expr.Name.Lexeme)

	case *ast.CallExpr:
		r.resolveExpr(expr.Callee)
		for _, arg := range expr.Args {
			r.resolveExpr(arg)
		}

	case *ast.GetExpr:
		r.resolveExpr(expr.Object)

	case *ast.SetExpr:
		r.resolveExpr(expr.Value)
		r.resolveExpr(expr.Object)

	case *ast.ThisExpr:
		if r.curClass == classNone {
			r.errorf(expr.Pos(), "can't use 'this' outside of a class")
			return
		}
		r.resolveRef(expr.ID, "this")

	case *ast.SuperExpr:
		switch r.curClass {
		case classNone:
			r.errorf(expr.Pos(), "can't use 'super' outside of a class")
			return
		case classClass:
			r.errorf(expr.Pos(), "can't use 'super' in a class with no superclass")
			return
		}
		r.resolveRef(expr.ID, "super")

	default:
		panic("resolver: unhandled expression type")
	}
}
