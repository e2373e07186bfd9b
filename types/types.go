package types

import (
	"fmt"
	"strings"
)

type Kind int

const (
	UnresolvedKind Kind = iota
	NumKind
	StrKind
	BoolKind
	UnitKind
	ErrorKind
	FuncKind
	PairKind
	ListKind
	RefKind
)

var kindNames = [...]string{
	UnresolvedKind: "Unresolved",
	NumKind:        "Num",
	StrKind:        "Str",
	BoolKind:       "Bool",
	UnitKind:       "Unit",
	ErrorKind:      "Error",
	FuncKind:       "Func",
	PairKind:       "Pair",
	ListKind:       "List",
	RefKind:        "Ref",
}

func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Type is the interface for all types in the language. The set of
// implementations is closed: only this package defines them.
type Type interface {
	String() string
	Kind() Kind
	typeNode()
}

// Common concrete types for readability. These are value-typed
// singletons and compare equal with ==.
var (
	Number  Type = Num{}
	String  Type = Str{}
	Boolean Type = Bool{}
	UnitT   Type = Unit{}
	ErrorT  Type = Error{}
	Unknown Type = Unresolved{}
)

// Unresolved is the placeholder element type of an empty list whose
// element type was not written down.
type Unresolved struct{}

func (Unresolved) Kind() Kind     { return UnresolvedKind }
func (Unresolved) String() string { return "?" }
func (Unresolved) typeNode()      {}

type Num struct{}

func (Num) Kind() Kind     { return NumKind }
func (Num) String() string { return "num" }
func (Num) typeNode()      {}

type Str struct{}

func (Str) Kind() Kind     { return StrKind }
func (Str) String() string { return "str" }
func (Str) typeNode()      {}

type Bool struct{}

func (Bool) Kind() Kind     { return BoolKind }
func (Bool) String() string { return "bool" }
func (Bool) typeNode()      {}

type Unit struct{}

func (Unit) Kind() Kind     { return UnitKind }
func (Unit) String() string { return "unit" }
func (Unit) typeNode()      {}

// Error is the type of an ill-typed expression. It absorbs: any
// compound expression with an Error operand is itself an Error. Msg is
// informational only and does not take part in equality.
type Error struct {
	Msg string
}

func (Error) Kind() Kind { return ErrorKind }
func (e Error) String() string {
	if e.Msg == "" {
		return "error"
	}
	return "error: " + e.Msg
}
func (Error) typeNode() {}

// Errorf builds an Error type carrying a formatted message.
func Errorf(format string, args ...any) Error {
	return Error{Msg: fmt.Sprintf(format, args...)}
}

type Func struct {
	Params []Type
	Return Type
}

func (f Func) Kind() Kind { return FuncKind }
func (f Func) String() string {
	if len(f.Params) == 0 {
		return fmt.Sprintf("(-> %s)", f.Return)
	}
	return fmt.Sprintf("(%s -> %s)", typesStr(f.Params), f.Return)
}
func (Func) typeNode() {}

type Pair struct {
	Left  Type
	Right Type
}

func (p Pair) Kind() Kind { return PairKind }
func (p Pair) String() string {
	return fmt.Sprintf("(pair %s %s)", p.Left, p.Right)
}
func (Pair) typeNode() {}

type List struct {
	Elem Type
}

func (l List) Kind() Kind { return ListKind }
func (l List) String() string {
	return fmt.Sprintf("(list %s)", l.Elem)
}
func (List) typeNode() {}

// Ref is the type of a mutable reference cell holding an Elem.
type Ref struct {
	Elem Type
}

func (r Ref) Kind() Kind { return RefKind }
func (r Ref) String() string {
	return fmt.Sprintf("(ref %s)", r.Elem)
}
func (Ref) typeNode() {}

func typesStr(types []Type) string {
	if len(types) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, t := range types {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(t.String())
	}
	return sb.String()
}

func IsNum(t Type) bool   { return t.Kind() == NumKind }
func IsStr(t Type) bool   { return t.Kind() == StrKind }
func IsBool(t Type) bool  { return t.Kind() == BoolKind }
func IsUnit(t Type) bool  { return t.Kind() == UnitKind }
func IsError(t Type) bool { return t.Kind() == ErrorKind }
func IsFunc(t Type) bool  { return t.Kind() == FuncKind }
func IsPair(t Type) bool  { return t.Kind() == PairKind }
func IsList(t Type) bool  { return t.Kind() == ListKind }
func IsRef(t Type) bool   { return t.Kind() == RefKind }

// AnyError returns the first Error among ts.
func AnyError(ts ...Type) (Error, bool) {
	for _, t := range ts {
		if e, ok := t.(Error); ok {
			return e, true
		}
	}
	return Error{}, false
}

// Contains reports whether a type of kind k occurs anywhere inside t,
// t itself included.
func Contains(t Type, k Kind) bool {
	if t.Kind() == k {
		return true
	}
	switch tt := t.(type) {
	case Func:
		for _, p := range tt.Params {
			if Contains(p, k) {
				return true
			}
		}
		return Contains(tt.Return, k)
	case Pair:
		return Contains(tt.Left, k) || Contains(tt.Right, k)
	case List:
		return Contains(tt.Elem, k)
	case Ref:
		return Contains(tt.Elem, k)
	}
	return false
}
