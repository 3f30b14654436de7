// Package lexer builds the participle lexer.Definition the ASM parser is
// constructed with.
//
// The teacher compiler hand-rolls a rune-at-a-time scanner
// (position/readPosition/ch, readChar/peekChar, skipWhitespace) over a
// tiny fixed operator set. This package keeps that division of
// responsibility - a small, named set of lexical rules feeding a
// higher-level parser - but delegates the scanning loop itself to
// participle's regexp-driven lexer.MustSimple, the construction used
// throughout the retrieved corpus's participle-based DSL compilers
// (kanso, cilium/coverbee) instead of a hand state machine. A hand
// scanner wired directly into participle's Lexer/Definition interfaces
// would only reimplement what lexer.MustSimple already does well.
package lexer

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/powdr-labs/asm2pil/internal/asm/token"
)

// Definition is the compiled lexer.Definition used by internal/asm/parser.
var Definition = lexer.MustSimple([]lexer.SimpleRule{
	{Name: string(token.Comment), Pattern: `//[^\n]*`},
	{Name: string(token.Space), Pattern: `\s+`},
	{Name: string(token.Ident), Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: string(token.Int), Pattern: `[0-9]+`},
	{Name: string(token.Str), Pattern: `"(\\.|[^"])*"`},
	{Name: string(token.Tick), Pattern: `'`},
	{Name: string(token.Punct), Pattern: `<=|=>|\*\*|<<|>>|[-+*/%^&|()\[\]{}.,:;=$@]`},
})
