package checker

import (
	"fmt"

	"github.com/thiremani/typelang/types"
)

type EvalPolicy int

const (
	// EvalReject types every eval as an error.
	EvalReject EvalPolicy = iota
	// EvalDynamic accepts eval of a str and trusts it to produce EvalType.
	EvalDynamic
)

func (p EvalPolicy) String() string {
	switch p {
	case EvalReject:
		return "reject"
	case EvalDynamic:
		return "dynamic"
	}
	return fmt.Sprintf("EvalPolicy(%d)", int(p))
}

// ParseEvalPolicy maps the configuration spelling of a policy.
func ParseEvalPolicy(s string) (EvalPolicy, error) {
	switch s {
	case "", "reject":
		return EvalReject, nil
	case "dynamic":
		return EvalDynamic, nil
	}
	return EvalReject, fmt.Errorf("unknown eval policy %q (want reject or dynamic)", s)
}

type Options struct {
	// ReadType is the declared type of (read).
	ReadType types.Type
	Eval     EvalPolicy
	// EvalType is the assumed result of eval under EvalDynamic.
	EvalType types.Type
}

func DefaultOptions() Options {
	return Options{
		ReadType: types.String,
		Eval:     EvalReject,
		EvalType: types.String,
	}
}

// Validate rejects option sets the checker cannot honour.
func (o Options) Validate() error {
	if o.ReadType == nil {
		return fmt.Errorf("read type must be set")
	}
	if types.Contains(o.ReadType, types.ErrorKind) || types.Contains(o.ReadType, types.UnresolvedKind) {
		return fmt.Errorf("read type %s is not a concrete type", o.ReadType)
	}
	if o.Eval == EvalDynamic {
		if o.EvalType == nil {
			return fmt.Errorf("eval policy dynamic needs a result type")
		}
		if types.Contains(o.EvalType, types.ErrorKind) || types.Contains(o.EvalType, types.UnresolvedKind) {
			return fmt.Errorf("eval result type %s is not a concrete type", o.EvalType)
		}
	}
	return nil
}
