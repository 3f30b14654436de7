// Package parser builds the assembly front end's participle.Parser and
// exposes the single Parse entry point the CLI drives.
package parser

import (
	"io"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"

	"github.com/powdr-labs/asm2pil/internal/asm/ast"
	"github.com/powdr-labs/asm2pil/internal/asm/lexer"
	"github.com/powdr-labs/asm2pil/internal/asm/token"
)

var (
	once   sync.Once
	parser *participle.Parser[ast.File]
	buildErr error
)

func build() {
	parser, buildErr = participle.Build[ast.File](
		participle.Lexer(lexer.Definition),
		participle.Elide(string(token.Space), string(token.Comment)),
		participle.Unquote(string(token.Str)),
		participle.UseLookahead(4),
	)
}

// Parse lexes and parses an assembly source file, returning its AST. The
// filename is attached to participle's error reporting only; it has no
// bearing on parsing itself.
func Parse(filename string, r io.Reader) (*ast.File, error) {
	once.Do(build)
	if buildErr != nil {
		return nil, errors.Wrap(buildErr, "parser: building grammar")
	}
	file, err := parser.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	return file, nil
}
