package types

// NativeFn is a function implemented in Go. It receives its arguments already
// evaluated.
type NativeFn func(args []*Data) (*Data, error)

// Closure is a function defined with fn*. Params is the parameter list as it
// was read (a List or Vector of symbols).
type Closure struct {
	Env    *Env
	Params *Data
	Body   *Data
}

const (
	specialNil = iota + 1
	specialTrue
	specialFalse
)

// Data is every value the interpreter handles. Exactly one field is set.
type Data struct {
	Special int
	Number  *int
	String  *string
	Symbol  *string
	List    *[]*Data
	Vector  *[]*Data
	Map     *map[string]*Data
	Native  NativeFn
	Closure *Closure
}

var Nil = &Data{Special: specialNil}
var True = &Data{Special: specialTrue}
var False = &Data{Special: specialFalse}

func Num(n int) *Data {
	return &Data{Number: &n}
}

func Str(s string) *Data {
	return &Data{String: &s}
}

func Sym(name string) *Data {
	return &Data{Symbol: &name}
}

func NewList(members ...*Data) *Data {
	if members == nil {
		members = []*Data{}
	}
	return &Data{List: &members}
}

func NewVector(members ...*Data) *Data {
	if members == nil {
		members = []*Data{}
	}
	return &Data{Vector: &members}
}

func NewMap(m map[string]*Data) *Data {
	if m == nil {
		m = map[string]*Data{}
	}
	return &Data{Map: &m}
}

func Bool(b bool) *Data {
	if b {
		return True
	}
	return False
}

// IsSeq reports whether d is a List or a Vector.
func (d *Data) IsSeq() bool {
	return d.List != nil || d.Vector != nil
}

// Seq returns the members of a List or Vector, or nil for anything else.
func (d *Data) Seq() []*Data {
	if d.List != nil {
		return *d.List
	}
	if d.Vector != nil {
		return *d.Vector
	}
	return nil
}

// Truthy is false only for nil and false.
func (d *Data) Truthy() bool {
	return d != Nil && d != False
}

func (d *Data) IsCallable() bool {
	return d.Native != nil || d.Closure != nil
}

// IsSymbol reports whether d is the symbol name.
func (d *Data) IsSymbol(name string) bool {
	return d.Symbol != nil && *d.Symbol == name
}
