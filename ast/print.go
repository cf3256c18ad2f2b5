package ast

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/marcuscaisey/lox/token"
)

// Sprint formats a Node as a canonical, indented s-expression. Two programs
// which parse to the same AST shape always produce the same string, making
// this suitable as a round-trip check on the parser.
func Sprint(node Node) string {
	return sprint(reflect.ValueOf(node), 0)
}

func sprint(v reflect.Value, depth int) string {
	if v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "nil"
		}
	}
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}

	switch node := v.Interface().(type) {
	case token.Token:
		return node.Lexeme
	case *LiteralExpr:
		return sexpr("LiteralExpr", depth, fmt.Sprint(node.Value))
	}

	t := v.Type()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
		v = v.Elem()
	}
	if t.Kind() != reflect.Struct {
		return fmt.Sprint(v.Interface())
	}

	var children []string
	for i := range t.NumField() {
		field := t.Field(i)
		// Position fields only carry diagnostic locations, and a parser-
		// assigned ID only exists to key the resolver's map: neither is
		// part of the program's observable shape.
		if field.Type == reflect.TypeOf(token.Position{}) || field.Name == "ID" {
			continue
		}
		fv := v.Field(i)
		switch fv.Kind() {
		case reflect.Slice:
			for j := range fv.Len() {
				children = append(children, sprint(fv.Index(j), depth+1))
			}
		default:
			children = append(children, sprint(fv, depth+1))
		}
	}

	return sexpr(t.Name(), depth, children...)
}

func sexpr(name string, depth int, children ...string) string {
	var b strings.Builder
	fmt.Fprint(&b, "(", name)
	for _, child := range children {
		fmt.Fprint(&b, "\n", strings.Repeat("  ", depth+1), child)
	}
	fmt.Fprint(&b, ")")
	return b.String()
}
