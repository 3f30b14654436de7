package compiler

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// ErrorKind classifies a lowering-engine failure. Parse errors from
// internal/asm/parser are never wrapped in an Error - they propagate
// unchanged, per the external contract that parser failures surface as-is.
type ErrorKind int

// Error kinds, matching §7 of the design.
const (
	// KindShape is an unsupported expression form: division, bitwise or
	// shift operators, string/tuple/match/call in affine position, a
	// non-constant multiplicand, an implicit assignment register, a
	// selector on an instruction body's plookup LHS, a non-power-of-two
	// degree, a misplaced degree statement, or a duplicate PC declaration.
	KindShape ErrorKind = iota
	// KindName is a reference to an unknown instruction or register, or a
	// write-flag pair missing from the program-constants table.
	KindName
	// KindArity is an instruction call with the wrong number of arguments,
	// an output binding with a non-reference argument, or a literal label
	// with a non-reference argument.
	KindArity
	// KindInvariant is a duplicate output binding within one code line, or
	// a mismatched last-parameter shape in a functional instruction call.
	KindInvariant
)

// String names the kind for diagnostics.
func (k ErrorKind) String() string {
	switch k {
	case KindShape:
		return "shape"
	case KindName:
		return "name"
	case KindArity:
		return "arity"
	case KindInvariant:
		return "invariant"
	}
	return "unknown"
}

// Error is a fatal lowering-engine failure. The compiler never produces
// partial output: the first Error returned aborts the whole compilation.
type Error struct {
	Kind    ErrorKind
	Pos     lexer.Position
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Pos.Filename == "" && e.Pos.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

func shapeErrorf(pos lexer.Position, format string, args ...interface{}) error {
	return &Error{Kind: KindShape, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func nameErrorf(pos lexer.Position, format string, args ...interface{}) error {
	return &Error{Kind: KindName, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func arityErrorf(pos lexer.Position, format string, args ...interface{}) error {
	return &Error{Kind: KindArity, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func invariantErrorf(pos lexer.Position, format string, args ...interface{}) error {
	return &Error{Kind: KindInvariant, Pos: pos, Message: fmt.Sprintf(format, args...)}
}
