// Package eval is the evaluator: a loop that rewrites the pending expression
// and environment for every form in tail position, so tail calls run in
// constant Go stack.
package eval

import (
	"fmt"
	"sort"

	"github.com/bshepherdson/mal/printer"
	. "github.com/bshepherdson/mal/types"
)

type form int

const (
	formCall form = iota
	formDef
	formLet
	formDo
	formIf
	formFn
)

var specialForms = map[string]form{
	"def!": formDef,
	"let*": formLet,
	"do":   formDo,
	"if":   formIf,
	"fn*":  formFn,
}

func Eval(ast *Data, env *Env) (*Data, error) {
	for {
		if ast.List == nil {
			return evalAST(ast, env)
		}

		list := *ast.List
		if len(list) == 0 {
			return ast, nil
		}

		sf := formCall
		if list[0].Symbol != nil {
			sf = specialForms[*list[0].Symbol]
		}

		switch sf {
		case formDef:
			if len(list) != 3 {
				return nil, Malformed("def!", "expected 2 arguments, got %d", len(list)-1)
			}
			if list[1].Symbol == nil {
				return nil, Malformed("def!", "first parameter must be a symbol")
			}

			evald, err := Eval(list[2], env)
			if err != nil {
				return nil, err
			}
			env.Set(*list[1].Symbol, evald)
			return evald, nil

		case formLet:
			if len(list) != 3 {
				return nil, Malformed("let*", "expected bindings and a body, got %d forms", len(list)-1)
			}
			if !list[1].IsSeq() {
				return nil, Malformed("let*", "bindings must be a list")
			}

			bindings := list[1].Seq()
			if len(bindings)%2 != 0 {
				return nil, Malformed("let*", "bindings must come in pairs; found %d", len(bindings))
			}

			letEnv := NewEnv(env)
			for i := 0; i < len(bindings); i += 2 {
				if bindings[i].Symbol == nil {
					return nil, Malformed("let*", "left-hand binding must be a symbol")
				}

				evald, err := Eval(bindings[i+1], letEnv)
				if err != nil {
					return nil, err
				}
				letEnv.Set(*bindings[i].Symbol, evald)
			}

			ast = list[2]
			env = letEnv
			continue

		case formDo:
			if len(list) == 1 {
				return Nil, nil
			}
			if _, err := evalList(list[1:len(list)-1], env); err != nil {
				return nil, err
			}
			ast = list[len(list)-1]
			continue

		case formIf:
			if len(list) != 3 && len(list) != 4 {
				return nil, Malformed("if", "expected 2 or 3 arguments, got %d", len(list)-1)
			}

			cond, err := Eval(list[1], env)
			if err != nil {
				return nil, err
			}
			if cond.Truthy() {
				ast = list[2]
				continue
			}
			if len(list) == 3 {
				return Nil, nil
			}
			ast = list[3]
			continue

		case formFn:
			if len(list) != 3 {
				return nil, Malformed("fn*", "expected parameters and a body, got %d forms", len(list)-1)
			}
			if !list[1].IsSeq() {
				return nil, Malformed("fn*", "parameters must be a list")
			}
			return &Data{Closure: &Closure{Env: env, Params: list[1], Body: list[2]}}, nil
		}

		evald, err := evalAST(ast, env)
		if err != nil {
			return nil, err
		}

		elist := *evald.List
		f := elist[0]
		switch {
		case f.Native != nil:
			return f.Native(elist[1:])

		case f.Closure != nil:
			fnEnv := NewEnv(f.Closure.Env)
			if err := fnEnv.Bind(f.Closure.Params, elist[1:]); err != nil {
				return nil, err
			}
			ast = f.Closure.Body
			env = fnEnv
			continue // TCO
		}
		return nil, fmt.Errorf("%w: %s", ErrNotCallable, printer.PrintStr(f, true))
	}
}

// evalAST evaluates ast without treating it as a special form or call: symbols
// are looked up and the members of collections are evaluated with Eval.
func evalAST(ast *Data, env *Env) (*Data, error) {
	switch {
	case ast.Symbol != nil:
		return env.Get(*ast.Symbol)

	case ast.List != nil:
		evald, err := evalList(*ast.List, env)
		if err != nil {
			return nil, err
		}
		return NewList(evald...), nil

	case ast.Vector != nil:
		evald, err := evalList(*ast.Vector, env)
		if err != nil {
			return nil, err
		}
		return NewVector(evald...), nil

	case ast.Map != nil:
		// Sorted so side effects and errors happen in a fixed order.
		keys := make([]string, 0, len(*ast.Map))
		for k := range *ast.Map {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		m := make(map[string]*Data, len(keys))
		for _, k := range keys {
			evald, err := Eval((*ast.Map)[k], env)
			if err != nil {
				return nil, err
			}
			m[k] = evald
		}
		return NewMap(m), nil
	}

	return ast, nil
}

func evalList(list []*Data, env *Env) ([]*Data, error) {
	ret := make([]*Data, 0, len(list))
	for _, expr := range list {
		evald, err := Eval(expr, env)
		if err != nil {
			return nil, err
		}

		ret = append(ret, evald)
	}
	return ret, nil
}

// Apply calls a native function or closure with already evaluated arguments.
func Apply(f *Data, args []*Data) (*Data, error) {
	switch {
	case f.Native != nil:
		return f.Native(args)
	case f.Closure != nil:
		fnEnv := NewEnv(f.Closure.Env)
		if err := fnEnv.Bind(f.Closure.Params, args); err != nil {
			return nil, err
		}
		return Eval(f.Closure.Body, fnEnv)
	}
	return nil, fmt.Errorf("%w: %s", ErrNotCallable, printer.PrintStr(f, true))
}
