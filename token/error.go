package token

// CompileError is a diagnostic anchored at a source token. Err optionally
// classifies the diagnostic so callers can match it with errors.Is/As.
type CompileError struct {
	Token Token
	Msg   string
	Err   error
}

func (ce *CompileError) Error() string {
	return ce.Token.Pos() + ": " + ce.Msg
}

func (ce *CompileError) Unwrap() error {
	return ce.Err
}
