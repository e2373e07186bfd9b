package types

import "fmt"

// TypeEqual performs structural equality on types with a dispatcher by Kind.
// Unresolved only equals Unresolved here; see Compatible for the
// placeholder-aware relation.
func TypeEqual(a, b Type) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	cmp := typeComparer(a.Kind())
	return cmp(a, b, TypeEqual)
}

// Compatible is TypeEqual except that Unresolved matches any type at any
// depth. With no placeholder on either side the two relations agree.
func Compatible(a, b Type) bool {
	if a.Kind() == UnresolvedKind || b.Kind() == UnresolvedKind {
		return true
	}
	if a.Kind() != b.Kind() {
		return false
	}
	cmp := typeComparer(a.Kind())
	return cmp(a, b, Compatible)
}

type relation func(a, b Type) bool

func typeComparer(k Kind) func(a, b Type, rel relation) bool {
	switch k {
	case UnresolvedKind, NumKind, StrKind, BoolKind, UnitKind, ErrorKind:
		return eqNullary
	case FuncKind:
		return eqFunc
	case PairKind:
		return eqPair
	case ListKind:
		return eqList
	case RefKind:
		return eqRef
	default:
		return func(a, b Type, rel relation) bool { panic(fmt.Sprintf("TypeEqual: unhandled kind %v", k)) }
	}
}

func eqNullary(a, b Type, rel relation) bool { return true }

func eqFunc(a, b Type, rel relation) bool {
	af := a.(Func)
	bf := b.(Func)
	if len(af.Params) != len(bf.Params) {
		return false
	}
	for i := range af.Params {
		if !rel(af.Params[i], bf.Params[i]) {
			return false
		}
	}
	return rel(af.Return, bf.Return)
}

func eqPair(a, b Type, rel relation) bool {
	ap := a.(Pair)
	bp := b.(Pair)
	return rel(ap.Left, bp.Left) && rel(ap.Right, bp.Right)
}

func eqList(a, b Type, rel relation) bool {
	return rel(a.(List).Elem, b.(List).Elem)
}

func eqRef(a, b Type, rel relation) bool {
	return rel(a.(Ref).Elem, b.(Ref).Elem)
}

// Join returns the more resolved of two compatible types, filling
// Unresolved placeholders of one side from the other. Callers must check
// Compatible first.
func Join(a, b Type) Type {
	if a.Kind() == UnresolvedKind {
		return b
	}
	if b.Kind() == UnresolvedKind {
		return a
	}
	switch at := a.(type) {
	case Func:
		bt := b.(Func)
		params := make([]Type, len(at.Params))
		for i := range at.Params {
			params[i] = Join(at.Params[i], bt.Params[i])
		}
		return Func{Params: params, Return: Join(at.Return, bt.Return)}
	case Pair:
		bt := b.(Pair)
		return Pair{Left: Join(at.Left, bt.Left), Right: Join(at.Right, bt.Right)}
	case List:
		return List{Elem: Join(at.Elem, b.(List).Elem)}
	case Ref:
		return Ref{Elem: Join(at.Elem, b.(Ref).Elem)}
	}
	return a
}
