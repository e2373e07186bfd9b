package types

var baseTypes = map[string]Type{
	"num":  Number,
	"str":  String,
	"bool": Boolean,
	"unit": UnitT,
}

var reservedTypeNames = []string{
	"num",
	"str",
	"bool",
	"unit",
	"pair",
	"list",
	"ref",
	"->",
}

var reservedTypeSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(reservedTypeNames))
	for _, t := range reservedTypeNames {
		m[t] = struct{}{}
	}
	return m
}()

// ReservedTypeNames returns a copy of source-level reserved type names.
func ReservedTypeNames() []string {
	return append([]string(nil), reservedTypeNames...)
}

// IsReservedTypeName reports whether name is reserved for built-in types.
func IsReservedTypeName(name string) bool {
	_, ok := reservedTypeSet[name]
	return ok
}

// LookupName resolves a base type name such as "num".
func LookupName(name string) (Type, bool) {
	t, ok := baseTypes[name]
	return t, ok
}
