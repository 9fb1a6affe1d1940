package errors

import (
	"fmt"
)

const (
	// SuccessCode is reported for a nil error.
	SuccessCode uint32 = 0

	// All unclassified errors that do not provide a code are clubbed
	// under an internal error code and a generic message instead of
	// detailed error string.
	internalCode uint32 = 1
	internalLog         = "internal error"
)

// Info returns the code and log message reported to the caller of a
// transaction. Any error that does not provide code information is
// categorized as internal, with code 1.
// When not running in a debug mode all messages of internal errors and of
// recovered panics are replaced with a generic "internal error".
func Info(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessCode, ""
	}

	code := Code(err)
	if debug {
		// Try to trigger full information formatting. This
		// might produce a stacktrace.
		return code, fmt.Sprintf("%+v", err)
	}
	if code == internalCode || ErrPanic.Is(err) {
		return code, internalLog
	}
	return code, err.Error()
}

type coder interface {
	ABCICode() uint32
}

// Code test if given error contains a registered code and returns the value
// of it if available. This function is testing for the causer interface as
// well and unwraps the error.
func Code(err error) uint32 {
	if errIsNil(err) {
		return SuccessCode
	}

	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalCode
		}
	}
}
