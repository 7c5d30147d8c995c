package repl

import "fmt"

// These types carry the literal protocol strings spec.md §6.3
// specifies. They are never wrapped with fmt.Errorf("...: %w") the way
// fatal engine errors are (SPEC_FULL.md §7) — the REPL output is a
// fixed protocol, not a diagnostic.
type syntaxError struct{}

func (syntaxError) Error() string { return "Syntax error. Could not parse statement." }

type idOutOfRangeError struct{}

func (idOutOfRangeError) Error() string { return "Id out of range" }

type stringTooLongError struct{}

func (stringTooLongError) Error() string { return "String is too long." }

type duplicateKeyError struct{}

func (duplicateKeyError) Error() string { return "Error: Duplicate key." }

type unrecognizedStatementError struct{ input string }

func (e unrecognizedStatementError) Error() string {
	return fmt.Sprintf("Unrecognized keyword at start of '%s'.", e.input)
}

type unrecognizedCommandError struct{ input string }

func (e unrecognizedCommandError) Error() string {
	return fmt.Sprintf("Unrecognized command '%s'.", e.input)
}

var (
	errSyntax        = syntaxError{}
	errIDOutOfRange  = idOutOfRangeError{}
	errStringTooLong = stringTooLongError{}
	errDuplicateKey  = duplicateKeyError{}
)

// isProtocolError reports whether err is one of the REPL's own literal
// result strings, as opposed to a fatal engine error that should abort
// the process (spec.md §7).
func isProtocolError(err error) bool {
	switch err.(type) {
	case syntaxError, idOutOfRangeError, stringTooLongError, duplicateKeyError,
		unrecognizedStatementError, unrecognizedCommandError:
		return true
	default:
		return false
	}
}
