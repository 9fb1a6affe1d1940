/*
Package errors implements the error taxonomy shared by all extensions.

Reuse the root errors declared in this package whenever possible, and
register a custom root error with Register(code, description) only when a
condition is truly specific to one extension. The code distinguishes error
kinds on the client side, and is what a caller should branch on.

Always create errors with errors.Wrap(ErrXyz, "...") at the point of failure
so a stacktrace is attached. If you wrap multiple times, only the first wrap
records the stacktrace.

Once you have an error, fmt can give more context:

	%s is just the error message
	%+v is the full stack trace
*/
package errors
