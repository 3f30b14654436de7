package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclareRejectsDuplicates(t *testing.T) {
	tbl := New[int]()
	require.NoError(t, tbl.Declare("A", 1))
	err := tbl.Declare("A", 2)
	require.Error(t, err)
}

func TestNamesPreservesInsertionOrder(t *testing.T) {
	tbl := New[int]()
	for i, n := range []string{"pc", "X", "A", "CNT"} {
		require.NoError(t, tbl.Declare(n, i))
	}
	assert.Equal(t, []string{"pc", "X", "A", "CNT"}, tbl.Names())
}

func TestSortedNamesIsLexicographic(t *testing.T) {
	tbl := New[int]()
	for i, n := range []string{"pc", "X", "A", "CNT"} {
		require.NoError(t, tbl.Declare(n, i))
	}
	assert.Equal(t, []string{"A", "CNT", "X", "pc"}, tbl.SortedNames())
}
