// Package interpreter walks a resolved abstract syntax tree, producing the
// program's side effects: printed output, and any runtime diagnostic.
package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/marcuscaisey/lox/ast"
	"github.com/marcuscaisey/lox/loxerr"
	"github.com/marcuscaisey/lox/token"
)

// stmtResult is the evaluator's statement-boundary control signal. It is
// deliberately its own sum type, distinct from the error channel: a Return
// unwinds through arbitrary block/if/while nesting to the enclosing call,
// and runtime errors unwind separately via panic/recover. Folding Return
// into the error channel would make it observable to error handling that
// should never see it, and there isn't any here, but keeping the two
// channels apart is what makes that true by construction.
type stmtResult interface {
	isStmtResult()
}

// stmtNone means the statement ran to completion with no pending unwind.
type stmtNone struct{}

func (stmtNone) isStmtResult() {}

// stmtReturn carries a `return` statement's value up to the call that
// should receive it.
type stmtReturn struct{ value value }

func (stmtReturn) isStmtResult() {}

// Interpreter executes Lox programs. A single Interpreter's global
// environment and clock epoch persist across calls to Interpret, so that a
// REPL session can build up state line by line.
type Interpreter struct {
	globals *environment
	depths  map[int]int
	Stdout  io.Writer
}

// New creates an Interpreter with a fresh global environment pre-populated
// with the native function library.
func New() *Interpreter {
	globals := newEnvironment()
	defineBuiltins(globals)
	return &Interpreter{globals: globals, Stdout: os.Stdout}
}

// Interpret executes stmts using depths as the resolution map computed by
// the resolver. It returns the first runtime error encountered, if any.
func (in *Interpreter) Interpret(stmts []ast.Stmt, depths map[int]int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*loxerr.Error)
			if !ok {
				panic(r)
			}
			err = e
		}
	}()

	in.depths = depths
	for _, stmt := range stmts {
		in.execStmt(stmt, in.globals)
	}
	return nil
}

func (in *Interpreter) execStmt(stmt ast.Stmt, env *environment) stmtResult {
	switch stmt := stmt.(type) {
	case *ast.VarStmt:
		if stmt.Initializer != nil {
			env.define(stmt.Name.Lexeme, in.evalExpr(stmt.Initializer, env))
		} else {
			env.declare(stmt.Name.Lexeme)
		}
		return stmtNone{}

	case *ast.FunctionStmt:
		env.define(stmt.Name.Lexeme, &loxFunction{decl: stmt, closure: env})
		return stmtNone{}

	case *ast.ClassStmt:
		return in.execClassStmt(stmt, env)

	case *ast.ExprStmt:
		in.evalExpr(stmt.Expr, env)
		return stmtNone{}

	case *ast.PrintStmt:
		v := in.evalExpr(stmt.Expr, env)
		fmt.Fprintln(in.Stdout, formatValue(v))
		return stmtNone{}

	case *ast.BlockStmt:
		return in.execBlock(stmt.Stmts, env.child())

	case *ast.IfStmt:
		if isTruthy(in.evalExpr(stmt.Cond, env)) {
			return in.execStmt(stmt.Then, env)
		} else if stmt.Else != nil {
			return in.execStmt(stmt.Else, env)
		}
		return stmtNone{}

	case *ast.WhileStmt:
		for isTruthy(in.evalExpr(stmt.Cond, env)) {
			if result := in.execStmt(stmt.Body, env); !isNone(result) {
				return result
			}
		}
		return stmtNone{}

	case *ast.ReturnStmt:
		var v value = nilValue{}
		if stmt.Value != nil {
			v = in.evalExpr(stmt.Value, env)
		}
		return stmtReturn{value: v}

	default:
		panic(fmt.Sprintf("interpreter: unhandled statement type %T", stmt))
	}
}

// execBlock executes stmts in env (a fresh child environment already
// created by the caller) and stops early if one of them unwinds with a
// return.
func (in *Interpreter) execBlock(stmts []ast.Stmt, env *environment) stmtResult {
	for _, stmt := range stmts {
		if result := in.execStmt(stmt, env); !isNone(result) {
			return result
		}
	}
	return stmtNone{}
}

func isNone(result stmtResult) bool {
	_, ok := result.(stmtNone)
	return ok
}

func (in *Interpreter) execClassStmt(stmt *ast.ClassStmt, env *environment) stmtResult {
	var superclass *loxClass
	if stmt.Superclass != nil {
		superVal := in.evalExpr(stmt.Superclass, env)
		sc, ok := superVal.(*loxClass)
		if !ok {
			panic(loxerr.New(loxerr.RuntimeError, stmt.Superclass.Pos(), "superclass must be a class"))
		}
		superclass = sc
	}

	env.declare(stmt.Name.Lexeme)

	methodEnv := env
	if superclass != nil {
		methodEnv = env.child()
		methodEnv.define("super", superclass)
	}

	methods := make(map[string]*loxFunction, len(stmt.Methods))
	for _, methodDecl := range stmt.Methods {
		methods[methodDecl.Name.Lexeme] = &loxFunction{
			decl:          methodDecl,
			closure:       methodEnv,
			isInitializer: methodDecl.Name.Lexeme == "init",
		}
	}

	class := &loxClass{name: stmt.Name.Lexeme, superclass: superclass, methods: methods}
	env.assign(stmt.Name, class)
	return stmtNone{}
}

func (in *Interpreter) evalExpr(expr ast.Expr, env *environment) value {
	switch expr := expr.(type) {
	case *ast.LiteralExpr:
		return literalValue(expr)

	case *ast.GroupingExpr:
		return in.evalExpr(expr.Expr, env)

	case *ast.UnaryExpr:
		return in.evalUnary(expr, env)

	case *ast.BinaryExpr:
		return in.evalBinary(expr, env)

	case *ast.LogicalExpr:
		left := in.evalExpr(expr.Left, env)
		if expr.Op.Type == token.Or {
			if isTruthy(left) {
				return left
			}
			return in.evalExpr(expr.Right, env)
		}
		if !isTruthy(left) {
			return left
		}
		return in.evalExpr(expr.Right, env)

	case *ast.VariableExpr:
		return in.lookUp(expr.ID, expr.Name, env)

	case *ast.AssignExpr:
		v := in.evalExpr(expr.Value, env)
		if distance, ok := in.depths[expr.ID]; ok {
			env.assignAt(distance, expr.Name, v)
		} else {
			in.globals.assign(expr.Name, v)
		}
		return v

	case *ast.CallExpr:
		return in.evalCall(expr, env)

	case *ast.GetExpr:
		return in.evalGet(expr, env)

	case *ast.SetExpr:
		return in.evalSet(expr, env)

	case *ast.ThisExpr:
		return in.lookUp(expr.ID, expr.Token, env)

	case *ast.SuperExpr:
		return in.evalSuper(expr, env)

	default:
		panic(fmt.Sprintf("interpreter: unhandled expression type %T", expr))
	}
}

func literalValue(expr *ast.LiteralExpr) value {
	switch v := expr.Value.(type) {
	case nil:
		return nilValue{}
	case bool:
		return boolValue(v)
	case float64:
		return numberValue(v)
	case string:
		return stringValue(v)
	default:
		panic(fmt.Sprintf("interpreter: unhandled literal payload %T", v))
	}
}

// lookUp resolves a Variable/This/Super reference using the resolution map:
// locals are early-bound to a specific ancestor environment, globals are
// late-bound, looked up in the global environment at the time of the read
// rather than at the time of the reference's declaration.
func (in *Interpreter) lookUp(id int, tok token.Token, env *environment) value {
	if distance, ok := in.depths[id]; ok {
		return env.getAt(distance, tok)
	}
	return in.globals.get(tok)
}

func (in *Interpreter) evalUnary(expr *ast.UnaryExpr, env *environment) value {
	operand := in.evalExpr(expr.Operand, env)
	switch expr.Op.Lexeme {
	case "!":
		return boolValue(!isTruthy(operand))
	case "-":
		n, ok := operand.(numberValue)
		if !ok {
			panic(loxerr.Newf(loxerr.RuntimeError, expr.Pos(), "operand must be a number, got %s", typeName(operand)))
		}
		return -n
	default:
		panic("interpreter: unhandled unary operator " + expr.Op.Lexeme)
	}
}

func (in *Interpreter) evalBinary(expr *ast.BinaryExpr, env *environment) value {
	left := in.evalExpr(expr.Left, env)
	right := in.evalExpr(expr.Right, env)

	switch expr.Op.Lexeme {
	case "==":
		return boolValue(valuesEqual(left, right))
	case "!=":
		return boolValue(!valuesEqual(left, right))
	case "+":
		if l, ok := left.(numberValue); ok {
			if r, ok := right.(numberValue); ok {
				return l + r
			}
		}
		if l, ok := left.(stringValue); ok {
			if r, ok := right.(stringValue); ok {
				return l + r
			}
		}
		panic(loxerr.New(loxerr.RuntimeError, expr.Pos(), "operands must be two numbers or two strings"))
	case "-":
		l, r := numberOperands(expr, left, right)
		return l - r
	case "*":
		l, r := numberOperands(expr, left, right)
		return l * r
	case "/":
		l, r := numberOperands(expr, left, right)
		if r == 0 {
			panic(loxerr.New(loxerr.RuntimeError, expr.Pos(), "division by zero"))
		}
		return l / r
	case "<":
		l, r := numberOperands(expr, left, right)
		return boolValue(l < r)
	case "<=":
		l, r := numberOperands(expr, left, right)
		return boolValue(l <= r)
	case ">":
		l, r := numberOperands(expr, left, right)
		return boolValue(l > r)
	case ">=":
		l, r := numberOperands(expr, left, right)
		return boolValue(l >= r)
	default:
		panic("interpreter: unhandled binary operator " + expr.Op.Lexeme)
	}
}

func numberOperands(expr *ast.BinaryExpr, left, right value) (numberValue, numberValue) {
	l, lok := left.(numberValue)
	r, rok := right.(numberValue)
	if !lok || !rok {
		panic(loxerr.New(loxerr.RuntimeError, expr.Pos(), "operands must be numbers"))
	}
	return l, r
}

func (in *Interpreter) evalCall(expr *ast.CallExpr, env *environment) value {
	callee := in.evalExpr(expr.Callee, env)
	args := make([]value, len(expr.Args))
	for i, arg := range expr.Args {
		args[i] = in.evalExpr(arg, env)
	}

	fn, ok := callee.(callable)
	if !ok {
		panic(loxerr.New(loxerr.RuntimeError, expr.Pos(), "can only call functions and classes"))
	}
	if len(args) != fn.arity() {
		panic(loxerr.Newf(loxerr.RuntimeError, expr.Pos(), "expected %d arguments but got %d", fn.arity(), len(args)))
	}
	return fn.call(in, args)
}

func (in *Interpreter) evalGet(expr *ast.GetExpr, env *environment) value {
	obj := in.evalExpr(expr.Object, env)
	inst, ok := obj.(*loxInstance)
	if !ok {
		panic(loxerr.New(loxerr.RuntimeError, expr.Pos(), "only instances have properties"))
	}
	v, ok := inst.property(expr.Name.Lexeme)
	if !ok {
		panic(loxerr.Newf(loxerr.RuntimeError, expr.Name.Start, "undefined property '%s'", expr.Name.Lexeme))
	}
	return v
}

func (in *Interpreter) evalSet(expr *ast.SetExpr, env *environment) value {
	obj := in.evalExpr(expr.Object, env)
	inst, ok := obj.(*loxInstance)
	if !ok {
		panic(loxerr.New(loxerr.RuntimeError, expr.Pos(), "only instances have properties"))
	}
	v := in.evalExpr(expr.Value, env)
	inst.setProperty(expr.Name.Lexeme, v)
	return v
}

func (in *Interpreter) evalSuper(expr *ast.SuperExpr, env *environment) value {
	distance := in.depths[expr.ID]
	superclass := env.getAt(distance, expr.Token).(*loxClass)
	// The scope holding `this` is always exactly one level inside the scope
	// holding `super`, because the resolver opens them as nested scopes in
	// that order around every method body.
	inst := env.ancestor(distance - 1).getNamed("this").(*loxInstance)
	method, ok := superclass.findMethod(expr.Method.Lexeme)
	if !ok {
		panic(loxerr.Newf(loxerr.RuntimeError, expr.Method.Start, "undefined property '%s'", expr.Method.Lexeme))
	}
	return method.bind(inst)
}
