package eval

import (
	"fmt"

	"github.com/bshepherdson/mal/core"
	"github.com/bshepherdson/mal/printer"
	"github.com/bshepherdson/mal/reader"
	. "github.com/bshepherdson/mal/types"
)

// Prelude holds the functions defined in mal itself.
var Prelude = []string{
	"(def! not (fn* (a) (if a false true)))",
	"(def! load-file (fn* (f) (eval (read-string (str \"(do \" (slurp f) \"\\nnil)\")))))",
}

// NewRootEnv builds the top-level environment: every native from core, plus
// eval and apply, plus the Prelude.
func NewRootEnv() (*Env, error) {
	env := NewEnv(nil)
	for key, val := range core.NS {
		env.Set(key, &Data{Native: val})
	}

	env.Set("eval", &Data{Native: func(args []*Data) (*Data, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: eval expects 1 argument, got %d", ErrArity, len(args))
		}
		return Eval(args[0], env)
	}})
	env.Set("apply", &Data{Native: apply})

	if err := LoadPrelude(env, Prelude); err != nil {
		return nil, err
	}
	return env, nil
}

// LoadPrelude evaluates each source string in env, in order.
func LoadPrelude(env *Env, sources []string) error {
	for _, src := range sources {
		forms, err := reader.ReadAll(src)
		if err != nil {
			return fmt.Errorf("prelude %q: %w", src, err)
		}
		for _, f := range forms {
			if _, err := Eval(f, env); err != nil {
				return fmt.Errorf("prelude %q: %w", src, err)
			}
		}
	}
	return nil
}

// (apply f a b [c d]) calls f with a, b, c and d.
func apply(args []*Data) (*Data, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("%w: apply expects a function", ErrArity)
	}

	callArgs := []*Data{}
	if len(args) > 1 {
		last := args[len(args)-1]
		if !last.IsSeq() {
			return nil, fmt.Errorf("%w: last argument to apply must be a list", ErrType)
		}
		callArgs = append(callArgs, args[1:len(args)-1]...)
		callArgs = append(callArgs, last.Seq()...)
	}
	return Apply(args[0], callArgs)
}

// Rep reads one form from input, evaluates it in env and prints the result
// readably.
func Rep(input string, env *Env) (string, error) {
	form, err := reader.ReadStr(input)
	if err != nil {
		return "", err
	}

	evald, err := Eval(form, env)
	if err != nil {
		return "", err
	}
	return printer.PrintStr(evald, true), nil
}
