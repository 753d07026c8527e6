package core

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bshepherdson/mal/types"
)

func call(t *testing.T, name string, args ...*types.Data) *types.Data {
	t.Helper()
	fn, ok := NS[name]
	if !ok {
		t.Fatalf("no native %q", name)
	}
	d, err := fn(args)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return d
}

func callErr(t *testing.T, name string, args ...*types.Data) error {
	t.Helper()
	_, err := NS[name](args)
	if err == nil {
		t.Fatalf("%s should fail", name)
	}
	return err
}

func TestArithmetic(t *testing.T) {
	n := types.Num
	tests := []struct {
		op   string
		x, y int
		want int
	}{
		{"+", 1, 2, 3},
		{"-", 1, 2, -1},
		{"*", 4, 5, 20},
		{"/", 7, 2, 3},
	}
	for _, tt := range tests {
		if got := call(t, tt.op, n(tt.x), n(tt.y)); *got.Number != tt.want {
			t.Errorf("(%s %d %d) = %d; want %d", tt.op, tt.x, tt.y, *got.Number, tt.want)
		}
	}

	if err := callErr(t, "/", n(1), n(0)); !errors.Is(err, types.ErrDivideByZero) {
		t.Errorf("(/ 1 0) err = %v", err)
	}
	if err := callErr(t, "+", n(1), types.Str("x")); !errors.Is(err, types.ErrType) {
		t.Errorf(`(+ 1 "x") err = %v`, err)
	}
	if err := callErr(t, "+", n(1)); !errors.Is(err, types.ErrArity) {
		t.Errorf("(+ 1) err = %v", err)
	}
}

func TestComparisons(t *testing.T) {
	n := types.Num
	if call(t, "<", n(1), n(2)) != types.True || call(t, "<=", n(2), n(2)) != types.True {
		t.Error("< / <= wrong")
	}
	if call(t, ">", n(1), n(2)) != types.False || call(t, ">=", n(1), n(2)) != types.False {
		t.Error("> / >= wrong")
	}
}

func TestEqual(t *testing.T) {
	n := types.Num
	same := [][2]*types.Data{
		{n(1), n(1)},
		{types.Str("a"), types.Str("a")},
		{types.Nil, types.Nil},
		{types.NewList(n(1), n(2)), types.NewVector(n(1), n(2))},
		{types.NewMap(map[string]*types.Data{"a": n(1)}), types.NewMap(map[string]*types.Data{"a": n(1)})},
	}
	for _, p := range same {
		if !Equal(p[0], p[1]) {
			t.Errorf("expected %+v = %+v", p[0], p[1])
		}
	}

	different := [][2]*types.Data{
		{n(1), n(2)},
		{n(1), types.Str("1")},
		{types.Nil, types.False},
		{types.NewList(n(1)), types.NewList(n(1), n(2))},
		{types.Str("a"), types.Sym("a")},
	}
	for _, p := range different {
		if Equal(p[0], p[1]) {
			t.Errorf("expected %+v != %+v", p[0], p[1])
		}
	}
}

func TestCollections(t *testing.T) {
	n := types.Num
	l := call(t, "list", n(1), n(2))
	if l.List == nil || len(*l.List) != 2 {
		t.Fatalf("list = %+v", l)
	}
	if call(t, "list?", l) != types.True || call(t, "vector?", l) != types.False {
		t.Error("list? / vector? wrong")
	}
	v := call(t, "vector", n(1))
	if v.Vector == nil || call(t, "vector?", v) != types.True {
		t.Errorf("vector = %+v", v)
	}
	if *call(t, "count", l).Number != 2 || *call(t, "count", types.Nil).Number != 0 {
		t.Error("count wrong")
	}
	if call(t, "empty?", types.NewVector()) != types.True || call(t, "empty?", l) != types.False {
		t.Error("empty? wrong")
	}

	m := call(t, "hash-map", types.Str("a"), n(1))
	if call(t, "map?", m) != types.True {
		t.Error("map? wrong")
	}
	if got := call(t, "get", m, types.Str("a")); *got.Number != 1 {
		t.Errorf("get = %+v", got)
	}
	if call(t, "get", m, types.Str("b")) != types.Nil || call(t, "get", types.Nil, types.Str("a")) != types.Nil {
		t.Error("get of a missing key should be nil")
	}
}

func TestOutput(t *testing.T) {
	var buf bytes.Buffer
	old := Out
	Out = &buf
	defer func() { Out = old }()

	call(t, "prn", types.Str("a"), types.Num(1))
	call(t, "println", types.Str("a"), types.Num(1))
	if got, want := buf.String(), "\"a\" 1\na 1\n"; got != want {
		t.Fatalf("output = %q; want %q", got, want)
	}

	if got := call(t, "pr-str", types.Str("a"), types.Str("b")); *got.String != `"a" "b"` {
		t.Errorf("pr-str = %q", *got.String)
	}
	if got := call(t, "str", types.Str("a"), types.Num(1)); *got.String != "a1" {
		t.Errorf("str = %q", *got.String)
	}
}

func TestPredicates(t *testing.T) {
	if call(t, "nil?", types.Nil) != types.True || call(t, "nil?", types.False) != types.False {
		t.Error("nil? wrong")
	}
	if call(t, "fn?", &types.Data{Native: list}) != types.True || call(t, "fn?", types.Num(1)) != types.False {
		t.Error("fn? wrong")
	}
	if call(t, "symbol?", types.Sym("a")) != types.True || call(t, "string?", types.Sym("a")) != types.False {
		t.Error("symbol? / string? wrong")
	}
}

func TestSequences(t *testing.T) {
	n := types.Num
	l := types.NewList(n(1), n(2), n(3))

	if got := call(t, "cons", n(0), types.NewVector(n(1))); got.List == nil || len(*got.List) != 2 {
		t.Errorf("cons = %+v", got)
	}
	if got := call(t, "concat", l, types.NewVector(n(4)), types.NewList()); len(got.Seq()) != 4 || got.List == nil {
		t.Errorf("concat = %+v", got)
	}
	if got := call(t, "nth", l, n(2)); *got.Number != 3 {
		t.Errorf("nth = %+v", got)
	}
	callErr(t, "nth", l, n(3))
	if got := call(t, "first", l); *got.Number != 1 {
		t.Errorf("first = %+v", got)
	}
	if call(t, "first", types.Nil) != types.Nil || call(t, "first", types.NewList()) != types.Nil {
		t.Error("first of nil or () should be nil")
	}
	if got := call(t, "rest", l); len(*got.List) != 2 || len(*l.List) != 3 {
		t.Errorf("rest = %+v", got)
	}
	if got := call(t, "rest", types.Nil); got.List == nil || len(*got.List) != 0 {
		t.Errorf("rest of nil = %+v", got)
	}
}

func TestReadStringAndSlurp(t *testing.T) {
	got := call(t, "read-string", types.Str("(+ 1 [2])"))
	if got.List == nil || len(*got.List) != 3 || (*got.List)[2].Vector == nil {
		t.Errorf("read-string = %+v", got)
	}

	path := filepath.Join(t.TempDir(), "in.mal")
	if err := os.WriteFile(path, []byte("(def! x 1)"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := call(t, "slurp", types.Str(path)); *got.String != "(def! x 1)" {
		t.Errorf("slurp = %q", *got.String)
	}
	callErr(t, "slurp", types.Str(filepath.Join(t.TempDir(), "missing")))
}
