package interpreter

import (
	"fmt"
	"strconv"

	"github.com/marcuscaisey/lox/ast"
)

// value is any Lox runtime value. It is deliberately a marker interface:
// type switches, not methods, dispatch most behaviour (operator application,
// truthiness, formatting), mirroring the tagged union in the data model this
// interpreter implements.
type value interface {
	isValue()
}

// nilValue is Lox's nil.
type nilValue struct{}

func (nilValue) isValue() {}

type boolValue bool

func (boolValue) isValue() {}

type numberValue float64

func (numberValue) isValue() {}

type stringValue string

func (stringValue) isValue() {}

// isTruthy implements Lox's truthiness rule: nil and false are falsey,
// everything else (including 0 and "") is truthy.
func isTruthy(v value) bool {
	switch v := v.(type) {
	case nilValue:
		return false
	case boolValue:
		return bool(v)
	default:
		return true
	}
}

// valuesEqual implements Lox's equality rule: different variants are never
// equal, nil == nil is true, and numbers use IEEE-754 equality (so NaN !=
// NaN, and 0 == -0).
func valuesEqual(a, b value) bool {
	switch a := a.(type) {
	case nilValue:
		_, ok := b.(nilValue)
		return ok
	case boolValue:
		b, ok := b.(boolValue)
		return ok && a == b
	case numberValue:
		b, ok := b.(numberValue)
		return ok && float64(a) == float64(b)
	case stringValue:
		b, ok := b.(stringValue)
		return ok && a == b
	default:
		return a == b // *loxFunction, *loxClass, *loxInstance: identity equality
	}
}

// formatValue renders v the way `print` does.
func formatValue(v value) string {
	switch v := v.(type) {
	case nilValue:
		return "nil"
	case boolValue:
		if v {
			return "true"
		}
		return "false"
	case numberValue:
		return strconv.FormatFloat(float64(v), 'f', -1, 64)
	case stringValue:
		return string(v)
	case *nativeFunction:
		return fmt.Sprintf("<fn %s>", v.name)
	case *loxFunction:
		return fmt.Sprintf("<fn %s>", v.decl.Name.Lexeme)
	case *loxClass:
		return v.name
	case *loxInstance:
		return fmt.Sprintf("%s instance", v.class.name)
	default:
		panic(fmt.Sprintf("interpreter: unformattable value %T", v))
	}
}

// typeName names v's runtime type for error messages.
func typeName(v value) string {
	switch v.(type) {
	case nilValue:
		return "nil"
	case boolValue:
		return "boolean"
	case numberValue:
		return "number"
	case stringValue:
		return "string"
	case *nativeFunction, *loxFunction:
		return "function"
	case *loxClass:
		return "class"
	case *loxInstance:
		return "instance"
	default:
		return "value"
	}
}

// callable is implemented by every value which can appear as the callee of
// a CallExpr: native functions, Lox functions, and classes (instantiation).
type callable interface {
	value
	arity() int
	call(in *Interpreter, args []value) value
}

// nativeFunction wraps a Go function as a Lox callable, used for clock and
// any other member of the standard library.
type nativeFunction struct {
	name string
	n    int
	fn   func(in *Interpreter, args []value) value
}

func (*nativeFunction) isValue()        {}
func (f *nativeFunction) arity() int    { return f.n }
func (f *nativeFunction) call(in *Interpreter, args []value) value {
	return f.fn(in, args)
}

// loxFunction is a user-defined function or method. Its closure is the
// environment active at the point the `fun` statement (or, for a method,
// its class declaration) was executed, giving it access to whatever locals
// were in scope there.
type loxFunction struct {
	decl          *ast.FunctionStmt
	closure       *environment
	isInitializer bool
}

func (*loxFunction) isValue() {}

func (f *loxFunction) arity() int { return len(f.decl.Params) }

func (f *loxFunction) call(in *Interpreter, args []value) value {
	env := f.closure.child()
	for i, param := range f.decl.Params {
		env.define(param.Lexeme, args[i])
	}
	result := in.execBlock(f.decl.Body, env)
	if f.isInitializer {
		return f.closure.getNamed("this")
	}
	if ret, ok := result.(stmtReturn); ok {
		return ret.value
	}
	return nilValue{}
}

// bind returns a copy of f whose closure additionally binds `this` to inst,
// used to turn an unbound method into a value that can be called on its
// own.
func (f *loxFunction) bind(inst *loxInstance) *loxFunction {
	env := f.closure.child()
	env.define("this", inst)
	return &loxFunction{decl: f.decl, closure: env, isInitializer: f.isInitializer}
}

// loxClass is a class value: its constructor (instantiation via call),
// method table, and optional superclass.
type loxClass struct {
	name       string
	superclass *loxClass
	methods    map[string]*loxFunction
}

func (*loxClass) isValue() {}

// findMethod searches c and its superclass chain for an unbound method
// named name.
func (c *loxClass) findMethod(name string) (*loxFunction, bool) {
	if m, ok := c.methods[name]; ok {
		return m, true
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil, false
}

func (c *loxClass) arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.arity()
	}
	return 0
}

func (c *loxClass) call(in *Interpreter, args []value) value {
	inst := &loxInstance{class: c, fields: make(map[string]value)}
	if init, ok := c.findMethod("init"); ok {
		init.bind(inst).call(in, args)
	}
	return inst
}

// loxInstance is an instance of a loxClass: a mutable per-instance field
// map plus a pointer back to its class for method lookup. Two values
// referring to the same instance observe each other's field writes.
type loxInstance struct {
	class  *loxClass
	fields map[string]value
}

func (*loxInstance) isValue() {}

// property looks name up on inst: fields win over methods. The returned
// method, if any, is bound to inst.
func (inst *loxInstance) property(name string) (value, bool) {
	if v, ok := inst.fields[name]; ok {
		return v, true
	}
	if m, ok := inst.class.findMethod(name); ok {
		return m.bind(inst), true
	}
	return nil, false
}

func (inst *loxInstance) setProperty(name string, v value) {
	inst.fields[name] = v
}
