package sqlfrag

import "errors"

// Category of an `Err`. Prefer matching the `Err` variables with `errors.Is`.
type ErrCode string

const (
	ErrCodeInvalidInput        ErrCode = "InvalidInput"
	ErrCodeFrozen              ErrCode = "Frozen"
	ErrCodeFragmentCount       ErrCode = "FragmentCount"
	ErrCodeEmptyJoin           ErrCode = "EmptyJoin"
	ErrCodeMissingArgument     ErrCode = "MissingArgument"
	ErrCodeUnexpectedParameter ErrCode = "UnexpectedParameter"
	ErrCodeUnusedArgument      ErrCode = "UnusedArgument"
	ErrCodeOrdinalOutOfBounds  ErrCode = "OrdinalOutOfBounds"
	ErrCodeUnknownField        ErrCode = "UnknownField"
)

/*
Sentinels for `errors.Is`:

	err := sqlfrag.Catch(func() { built.Append(other) })
	if errors.Is(err, sqlfrag.ErrFrozen) {
		built = built.Clone().Append(other)
	}

Panicked errors carry the context of the failed operation, so `==` against
these variables doesn't work; `errors.Is` matches by `.Cause`, then by `.Code`.
*/
var (
	ErrInvalidInput        Err = Err{Code: ErrCodeInvalidInput, Cause: errors.New(`invalid input`)}
	ErrFrozen              Err = Err{Code: ErrCodeFrozen, Cause: errors.New(`builder is frozen`)}
	ErrFragmentCount       Err = Err{Code: ErrCodeFragmentCount, Cause: errors.New(`expected more fragments than values`)}
	ErrEmptyJoin           Err = Err{Code: ErrCodeEmptyJoin, Cause: errors.New(`expected at least one item to join`)}
	ErrMissingArgument     Err = Err{Code: ErrCodeMissingArgument, Cause: errors.New(`missing argument`)}
	ErrUnexpectedParameter Err = Err{Code: ErrCodeUnexpectedParameter, Cause: errors.New(`unexpected parameter`)}
	ErrUnusedArgument      Err = Err{Code: ErrCodeUnusedArgument, Cause: errors.New(`unused argument`)}
	ErrOrdinalOutOfBounds  Err = Err{Code: ErrCodeOrdinalOutOfBounds, Cause: errors.New(`ordinal parameter exceeds arguments`)}
	ErrUnknownField        Err = Err{Code: ErrCodeUnknownField, Cause: errors.New(`unknown field`)}
)

// Panicked by every contract violation in this package.
type Err struct {
	Code  ErrCode
	While string
	Cause error
}

// Implement `error`. Format: "[sqlfrag] <code> while <context>: <cause>".
func (self Err) Error() string {
	if self == (Err{}) {
		return ""
	}

	buf := []byte(`[sqlfrag]`)
	if self.Code != "" {
		appendStr(&buf, ` `)
		appendStr(&buf, string(self.Code))
	}
	if self.While != "" {
		appendStr(&buf, ` while `)
		appendStr(&buf, self.While)
	}
	if self.Cause != nil {
		appendStr(&buf, `: `)
		appendStr(&buf, self.Cause.Error())
	}
	return bytesToMutableString(buf)
}

// Used by `errors.Is`.
func (self Err) Is(other error) bool {
	if self.Cause != nil && errors.Is(self.Cause, other) {
		return true
	}
	err, ok := other.(Err)
	return ok && err.Code == self.Code
}

// Used by `errors.Is` and `errors.As`.
func (self Err) Unwrap() error {
	return self.Cause
}

func (self Err) while(while string) Err {
	self.While = while
	return self
}

func (self Err) because(cause error) Err {
	self.Cause = cause
	return self
}

/*
Runs the function, converting a panic with an `error` value into a return
value. Every contract violation in this package panics with `Err`; this is for
apps that insist on errors-as-values at the boundary. Non-error panics are
re-panicked.
*/
func Catch(fun func()) (err error) {
	defer rec(&err)
	if fun != nil {
		fun()
	}
	return
}
