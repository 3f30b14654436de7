package compiler_test

import (
	"os"
	"testing"

	"github.com/andreyvit/diff"
	"github.com/stretchr/testify/require"

	"github.com/powdr-labs/asm2pil/internal/asm/parser"
	"github.com/powdr-labs/asm2pil/internal/compiler"
)

func TestSimpleSumGolden(t *testing.T) {
	source, err := os.Open("../../testdata/simple_sum.asm")
	require.NoError(t, err)
	defer source.Close()

	file, err := parser.Parse("simple_sum.asm", source)
	require.NoError(t, err)

	module, err := compiler.Compile(file)
	require.NoError(t, err)

	want, err := os.ReadFile("../../testdata/simple_sum.pil")
	require.NoError(t, err)

	got := module.String()
	if got != string(want) {
		t.Errorf("compiled PIL does not match golden fixture:\n%s", diff.LineDiff(string(want), got))
	}
}
