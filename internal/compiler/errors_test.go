package compiler_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powdr-labs/asm2pil/internal/asm/parser"
	"github.com/powdr-labs/asm2pil/internal/compiler"
)

func compileSource(t *testing.T, source string) (*compiler.Error, error) {
	t.Helper()
	file, err := parser.Parse("test.asm", strings.NewReader(source))
	require.NoError(t, err)

	_, err = compiler.Compile(file)
	require.Error(t, err)

	var cerr *compiler.Error
	require.ErrorAs(t, err, &cerr)
	return cerr, err
}

func TestDuplicatePCDeclarationIsShapeError(t *testing.T) {
	cerr, _ := compileSource(t, `
reg pc@pc;
reg pc2@pc;
`)
	assert.Equal(t, compiler.KindShape, cerr.Kind)
}

func TestCallToUndeclaredInstructionIsNameError(t *testing.T) {
	cerr, _ := compileSource(t, `
reg pc@pc;
reg X@assign;
foo(X);
`)
	assert.Equal(t, compiler.KindName, cerr.Kind)
}

func TestInstructionArityMismatchIsArityError(t *testing.T) {
	cerr, _ := compileSource(t, `
reg pc@pc;
reg X@assign;
instr dec {
	pc' = pc + 1;
}
dec(X);
`)
	assert.Equal(t, compiler.KindArity, cerr.Kind)
}

func TestDuplicateWriteRegisterIsInvariantError(t *testing.T) {
	cerr, _ := compileSource(t, `
reg pc@pc;
reg X@assign;
reg A;
instr swap a: out(A), b: out(A) {
	pc' = pc + 1;
}
swap(A, A);
`)
	assert.Equal(t, compiler.KindInvariant, cerr.Kind)
}
