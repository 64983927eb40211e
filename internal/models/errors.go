package models

import "fmt"

// ErrorKind is the closed set of error categories from spec section 7.
type ErrorKind string

const (
	InputShape          ErrorKind = "InputShape"
	IndicatorUnknown     ErrorKind = "IndicatorUnknown"
	IndicatorParseError  ErrorKind = "IndicatorParseError"
	IndicatorParamError  ErrorKind = "IndicatorParamError"
	IndicatorTooShort    ErrorKind = "IndicatorTooShortSeries"
	OptionsInput         ErrorKind = "OptionsInput"
	NumericDomain        ErrorKind = "NumericDomain"
)

// CoreError is the error type every layer of the core returns. It carries
// a closed Kind so transports can map it to a wire error without string
// matching.
type CoreError struct {
	Kind    ErrorKind
	Message string
}

func (e *CoreError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewCoreError builds a CoreError with a formatted message.
func NewCoreError(kind ErrorKind, format string, args ...interface{}) *CoreError {
	return &CoreError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is a *CoreError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	ce, ok := err.(*CoreError)
	return ok && ce.Kind == kind
}

// AsCoreError reports whether err is a *CoreError, assigning it to target
// on success. Mirrors the errors.As calling convention without pulling in
// wrapped-error matching this package's errors never need.
func AsCoreError(err error, target **CoreError) bool {
	ce, ok := err.(*CoreError)
	if ok {
		*target = ce
	}
	return ok
}
