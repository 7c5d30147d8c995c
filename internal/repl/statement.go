package repl

import (
	"math"
	"strconv"
	"strings"

	"eggshell/internal/record"
)

type statementKind int

const (
	stmtInsert statementKind = iota
	stmtSelect
)

type statement struct {
	kind statementKind
	row  record.Row
}

// prepareStatement parses one input line into a statement, per
// spec.md §6.3's grammar: `insert <id> <username> <email>` or
// `select`. Any other leading keyword is reported with the input
// echoed back verbatim.
func prepareStatement(input string) (statement, error) {
	fields := strings.Fields(input)
	switch {
	case len(fields) > 0 && fields[0] == "insert":
		return prepareInsert(input)
	case input == "select":
		return statement{kind: stmtSelect}, nil
	default:
		return statement{}, unrecognizedStatementError{input: input}
	}
}

func prepareInsert(input string) (statement, error) {
	fields := strings.Fields(input)
	if len(fields) != 4 {
		return statement{}, errSyntax
	}

	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return statement{}, errSyntax
	}
	if id < 0 || id > math.MaxUint32 {
		return statement{}, errIDOutOfRange
	}

	username, email := fields[2], fields[3]
	if len(username) > record.UsernameMaxLen || len(email) > record.EmailMaxLen {
		return statement{}, errStringTooLong
	}

	return statement{
		kind: stmtInsert,
		row:  record.Row{ID: uint32(id), Username: username, Email: email},
	}, nil
}
