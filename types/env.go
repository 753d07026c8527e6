package types

import "fmt"

// Variadic is the parameter marker that gathers the remaining arguments into
// a list bound to the single symbol after it.
const Variadic = "&"

type Env struct {
	data  map[string]*Data
	outer *Env
}

func NewEnv(outer *Env) *Env {
	return &Env{map[string]*Data{}, outer}
}

// Set binds key in e itself, shadowing any binding in an outer scope.
func (e *Env) Set(key string, value *Data) {
	e.data[key] = value
}

// Find returns the innermost scope that binds key, or nil.
func (e *Env) Find(key string) *Env {
	for s := e; s != nil; s = s.outer {
		if _, ok := s.data[key]; ok {
			return s
		}
	}
	return nil
}

func (e *Env) Get(key string) (*Data, error) {
	s := e.Find(key)
	if s == nil {
		return nil, fmt.Errorf("'%s' %w", key, ErrNotFound)
	}
	return s.data[key], nil
}

// Bind sets each symbol of the parameter list params to the matching
// argument. A "& rest" tail collects whatever arguments remain as a list.
func (e *Env) Bind(params *Data, args []*Data) error {
	if !params.IsSeq() {
		return Malformed("fn*", "parameters must be a list")
	}

	ps := params.Seq()
	fixed := 0
	rest := ""
	for i, p := range ps {
		if p.Symbol == nil {
			return Malformed("fn*", "parameter must be a symbol")
		}
		if p.IsSymbol(Variadic) {
			if i != len(ps)-2 || ps[i+1].Symbol == nil {
				return Malformed("fn*", "exactly 1 symbol must follow %s", Variadic)
			}
			rest = *ps[i+1].Symbol
			break
		}
		fixed++
	}

	if len(args) < fixed || (rest == "" && len(args) != fixed) {
		return arityError(fixed, len(args), rest != "")
	}

	for i := 0; i < fixed; i++ {
		e.Set(*ps[i].Symbol, args[i])
	}
	if rest != "" {
		tail := make([]*Data, len(args)-fixed)
		copy(tail, args[fixed:])
		e.Set(rest, NewList(tail...))
	}
	return nil
}

func arityError(want, got int, variadic bool) error {
	plural := "s"
	if want == 1 {
		plural = ""
	}
	if variadic {
		return fmt.Errorf("%w: function requires %d or more argument%s; got %d", ErrArity, want, plural, got)
	}
	return fmt.Errorf("%w: function requires %d argument%s; got %d", ErrArity, want, plural, got)
}
