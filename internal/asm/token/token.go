// Package token names the lexical categories of the ASM front end.
//
// The teacher compiler (skx/math-compiler) hand-rolls a scanner over a
// fixed, small set of single-character operator tokens plus a handful of
// math-function keywords. This package generalises that token vocabulary
// to the assembly-with-registers-and-instructions language this compiler
// actually parses, but keeps the teacher's shape: a string Type, a table
// of reserved words, and a lookup helper - now consumed by
// internal/asm/lexer to build a participle lexer.Definition rather than by
// a hand-written NextToken state machine.
package token

// Type names a lexical category. Participle's simple lexer identifies
// rules by name; these constants are those names.
type Type string

// Token categories recognised by the lexer.
const (
	Ident   Type = "Ident"
	Int     Type = "Int"
	Str     Type = "Str"
	Punct   Type = "Punct"
	Tick    Type = "Tick"
	Comment Type = "Comment"
	Space   Type = "Space"
)

// Keywords lists the reserved words of the ASM language. Participle matches
// keyword literals in a grammar tag (e.g. "reg") against any Ident-typed
// token with that value. The grammar's struct tags spell their literals
// directly and do not consult this table, and the lexer does not reserve
// these words: a position that expects an Ident still accepts them. The
// register flags "pc" and "assign" are grammar literals not listed here.
var Keywords = []string{
	"degree",
	"reg",
	"instr",
	"pil",
	"label",
	"in",
	"is",
	"out",
	"match",
	"sel",
	"pol",
	"constant",
	"commit",
	"query",
}

// IsKeyword reports whether identifier names a reserved word.
func IsKeyword(identifier string) bool {
	for _, k := range Keywords {
		if k == identifier {
			return true
		}
	}
	return false
}
