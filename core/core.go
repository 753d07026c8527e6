package core

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bshepherdson/mal/printer"
	"github.com/bshepherdson/mal/reader"
	"github.com/bshepherdson/mal/types"
)

// Out receives everything prn and println write.
var Out io.Writer = os.Stdout

var NS = map[string]types.NativeFn{
	"+": plus,
	"-": minus,
	"*": times,
	"/": div,

	// Output
	"pr-str":  prStr,
	"str":     str,
	"prn":     prn,
	"println": println,

	// Lists and vectors
	"list":    list,
	"list?":   listQ,
	"vector":  vector,
	"vector?": vectorQ,
	"empty?":  emptyQ,
	"count":   count,
	"cons":    cons,
	"concat":  concat,
	"nth":     nth,
	"first":   first,
	"rest":    rest,

	// Input
	"read-string": readString,
	"slurp":       slurp,

	// Maps
	"hash-map": hashMap,
	"map?":     mapQ,
	"get":      get,

	// Predicates
	"nil?":    is(func(d *types.Data) bool { return d == types.Nil }),
	"true?":   is(func(d *types.Data) bool { return d == types.True }),
	"false?":  is(func(d *types.Data) bool { return d == types.False }),
	"symbol?": is(func(d *types.Data) bool { return d.Symbol != nil }),
	"string?": is(func(d *types.Data) bool { return d.String != nil }),
	"number?": is(func(d *types.Data) bool { return d.Number != nil }),
	"fn?":     is((*types.Data).IsCallable),

	// Comparisons
	"=":  equal,
	"<":  compare("<", func(x, y int) bool { return x < y }),
	"<=": compare("<=", func(x, y int) bool { return x <= y }),
	">":  compare(">", func(x, y int) bool { return x > y }),
	">=": compare(">=", func(x, y int) bool { return x >= y }),
}

// Expects two Number arguments; fails otherwise.
func prepNumbers(args []*types.Data, op string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("%w: expected 2 args to %s, got %d", types.ErrArity, op, len(args))
	}

	if args[0].Number == nil || args[1].Number == nil {
		return 0, 0, fmt.Errorf("%w: arguments to %s must be numbers", types.ErrType, op)
	}
	return *args[0].Number, *args[1].Number, nil
}

func plus(args []*types.Data) (*types.Data, error) {
	x, y, err := prepNumbers(args, "+")
	if err != nil {
		return nil, err
	}
	return types.Num(x + y), nil
}

func minus(args []*types.Data) (*types.Data, error) {
	x, y, err := prepNumbers(args, "-")
	if err != nil {
		return nil, err
	}
	return types.Num(x - y), nil
}

func times(args []*types.Data) (*types.Data, error) {
	x, y, err := prepNumbers(args, "*")
	if err != nil {
		return nil, err
	}
	return types.Num(x * y), nil
}

func div(args []*types.Data) (*types.Data, error) {
	x, y, err := prepNumbers(args, "/")
	if err != nil {
		return nil, err
	}
	if y == 0 {
		return nil, types.ErrDivideByZero
	}
	return types.Num(x / y), nil
}

// Output
func printList(args []*types.Data, readable bool, sep string) string {
	strs := []string{}
	for _, expr := range args {
		strs = append(strs, printer.PrintStr(expr, readable))
	}

	return strings.Join(strs, sep)
}

func prStr(args []*types.Data) (*types.Data, error) {
	return types.Str(printList(args, true, " ")), nil
}

func str(args []*types.Data) (*types.Data, error) {
	return types.Str(printList(args, false, "")), nil
}

func prn(args []*types.Data) (*types.Data, error) {
	fmt.Fprintln(Out, printList(args, true, " "))
	return types.Nil, nil
}

func println(args []*types.Data) (*types.Data, error) {
	fmt.Fprintln(Out, printList(args, false, " "))
	return types.Nil, nil
}

// Lists
func list(args []*types.Data) (*types.Data, error) {
	members := make([]*types.Data, len(args))
	copy(members, args)
	return types.NewList(members...), nil
}

func listQ(args []*types.Data) (*types.Data, error) {
	return types.Bool(len(args) >= 1 && args[0].List != nil), nil
}

func vector(args []*types.Data) (*types.Data, error) {
	members := make([]*types.Data, len(args))
	copy(members, args)
	return types.NewVector(members...), nil
}

func vectorQ(args []*types.Data) (*types.Data, error) {
	return types.Bool(len(args) >= 1 && args[0].Vector != nil), nil
}

func emptyQ(args []*types.Data) (*types.Data, error) {
	if len(args) == 0 || !args[0].IsSeq() {
		return nil, fmt.Errorf("%w: empty? expects a list", types.ErrType)
	}
	return types.Bool(len(args[0].Seq()) == 0), nil
}

func count(args []*types.Data) (*types.Data, error) {
	if len(args) == 0 || (!args[0].IsSeq() && args[0] != types.Nil) {
		return nil, fmt.Errorf("%w: count expects a list", types.ErrType)
	}
	return types.Num(len(args[0].Seq())), nil
}

func cons(args []*types.Data) (*types.Data, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: cons expects two arguments", types.ErrArity)
	}
	if !args[1].IsSeq() {
		return nil, fmt.Errorf("%w: second argument to cons must be a list", types.ErrType)
	}

	out := []*types.Data{args[0]}
	out = append(out, args[1].Seq()...)
	return types.NewList(out...), nil
}

func concat(args []*types.Data) (*types.Data, error) {
	out := []*types.Data{}
	for _, a := range args {
		if !a.IsSeq() {
			return nil, fmt.Errorf("%w: concat expects all args to be lists", types.ErrType)
		}
		out = append(out, a.Seq()...)
	}
	return types.NewList(out...), nil
}

func nth(args []*types.Data) (*types.Data, error) {
	if len(args) != 2 || !args[0].IsSeq() || args[1].Number == nil {
		return nil, fmt.Errorf("%w: nth expects a list and number", types.ErrType)
	}
	idx := *args[1].Number
	seq := args[0].Seq()
	if idx < 0 || idx >= len(seq) {
		return nil, fmt.Errorf("nth: index %d out of bounds", idx)
	}
	return seq[idx], nil
}

func first(args []*types.Data) (*types.Data, error) {
	if len(args) != 1 || (args[0] != types.Nil && !args[0].IsSeq()) {
		return nil, fmt.Errorf("%w: first expects a list", types.ErrType)
	}

	seq := args[0].Seq()
	if len(seq) == 0 {
		return types.Nil, nil
	}
	return seq[0], nil
}

func rest(args []*types.Data) (*types.Data, error) {
	if len(args) != 1 || (args[0] != types.Nil && !args[0].IsSeq()) {
		return nil, fmt.Errorf("%w: rest expects a list", types.ErrType)
	}

	seq := args[0].Seq()
	if len(seq) == 0 {
		return types.NewList(), nil
	}
	out := make([]*types.Data, len(seq)-1)
	copy(out, seq[1:])
	return types.NewList(out...), nil
}

// Input
func readString(args []*types.Data) (*types.Data, error) {
	if len(args) != 1 || args[0].String == nil {
		return nil, fmt.Errorf("%w: read-string expects a single string arg", types.ErrType)
	}
	return reader.ReadStr(*args[0].String)
}

func slurp(args []*types.Data) (*types.Data, error) {
	if len(args) != 1 || args[0].String == nil {
		return nil, fmt.Errorf("%w: slurp expects a single filename as a string", types.ErrType)
	}

	contents, err := os.ReadFile(*args[0].String)
	if err != nil {
		return nil, fmt.Errorf("slurp failed to read the file: %w", err)
	}
	return types.Str(string(contents)), nil
}

// Maps
func hashMap(args []*types.Data) (*types.Data, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("%w: hash-map expects key/value pairs", types.ErrArity)
	}

	m := map[string]*types.Data{}
	for i := 0; i < len(args); i += 2 {
		if args[i].String == nil {
			return nil, fmt.Errorf("%w: hash-map keys must be strings", types.ErrType)
		}
		m[*args[i].String] = args[i+1]
	}
	return types.NewMap(m), nil
}

func mapQ(args []*types.Data) (*types.Data, error) {
	return types.Bool(len(args) >= 1 && args[0].Map != nil), nil
}

func get(args []*types.Data) (*types.Data, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: get expects a map and a key", types.ErrArity)
	}
	if args[0] == types.Nil {
		return types.Nil, nil
	}
	if args[0].Map == nil || args[1].String == nil {
		return nil, fmt.Errorf("%w: get expects a map and a string key", types.ErrType)
	}

	if v, ok := (*args[0].Map)[*args[1].String]; ok {
		return v, nil
	}
	return types.Nil, nil
}

func is(pred func(*types.Data) bool) types.NativeFn {
	return func(args []*types.Data) (*types.Data, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: predicate expects 1 argument, got %d", types.ErrArity, len(args))
		}
		return types.Bool(pred(args[0])), nil
	}
}

// Comparisons
func equal(args []*types.Data) (*types.Data, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: = expects exactly 2 arguments", types.ErrArity)
	}
	return types.Bool(Equal(args[0], args[1])), nil
}

// Equal compares structurally. A list and a vector with equal members are
// equal; functions are equal only to themselves.
func Equal(x, y *types.Data) bool {
	switch {
	case x.Number != nil && y.Number != nil:
		return *x.Number == *y.Number
	case x.Symbol != nil && y.Symbol != nil:
		return *x.Symbol == *y.Symbol
	case x.String != nil && y.String != nil:
		return *x.String == *y.String
	case x.Special != 0 && y.Special != 0:
		return x.Special == y.Special
	case x.Closure != nil && y.Closure != nil:
		return x.Closure == y.Closure
	case x.Native != nil && y.Native != nil:
		return x == y

	case x.IsSeq() && y.IsSeq():
		xs, ys := x.Seq(), y.Seq()
		if len(xs) != len(ys) {
			return false
		}
		for i, xv := range xs {
			if !Equal(xv, ys[i]) {
				return false
			}
		}
		return true

	case x.Map != nil && y.Map != nil:
		if len(*x.Map) != len(*y.Map) {
			return false
		}
		for k, xv := range *x.Map {
			yv, ok := (*y.Map)[k]
			if !ok || !Equal(xv, yv) {
				return false
			}
		}
		return true
	}

	return false // Type mismatch
}

func compare(op string, cmp func(x, y int) bool) types.NativeFn {
	return func(args []*types.Data) (*types.Data, error) {
		x, y, err := prepNumbers(args, op)
		if err != nil {
			return nil, err
		}
		return types.Bool(cmp(x, y)), nil
	}
}
