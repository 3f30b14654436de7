package pil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractUpdateRecognisesUpdateShape(t *testing.T) {
	expr := Sub(NextReference("CNT"), Sub(Reference("CNT"), NumberInt64(1)))

	reg, value, ok := ExtractUpdate(expr)
	require.True(t, ok)
	assert.Equal(t, "CNT", reg)
	assert.Equal(t, "(CNT - 1)", renderExpr(value))
}

func TestExtractUpdateRejectsOtherShapes(t *testing.T) {
	cases := []*Expr{
		Mul(Reference("instr_flag"), Sub(Reference("x"), NumberInt64(1))),
		Sub(Reference("CNT"), NumberInt64(1)), // not next-row on the left
		Add(NextReference("CNT"), NumberInt64(1)),
	}
	for _, e := range cases {
		_, _, ok := ExtractUpdate(e)
		assert.False(t, ok)
	}
}

func TestCloneIsDeepAndIndependent(t *testing.T) {
	original := Add(Reference("A"), NumberInt64(3))
	clone := original.Clone()

	clone.left.ref.Name = "B"
	clone.right.number.SetInt64(99)

	assert.Equal(t, "A", original.left.ref.Name)
	assert.Equal(t, int64(3), original.right.number.Int64())
}

func TestRenderExprMatchesPILSyntax(t *testing.T) {
	tests := []struct {
		name string
		expr *Expr
		want string
	}{
		{"number", NumberInt64(-1), "-1"},
		{"reference", Reference("pc"), "pc"},
		{"next reference", NextReference("A"), "A'"},
		{"add", Add(Reference("a"), Reference("b")), "(a + b)"},
		{"nested", Add(Mul(Reference("read_X_A"), Reference("A")), Reference("X_const")),
			"((read_X_A * A) + X_const)"},
		{"tuple", Tuple([]*Expr{NumberInt64(0), String("input")}), `(0, "input")`},
		{"function call", FunctionCall("add", []*Expr{Reference("a"), Reference("b")}), "add(a, b)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, renderExpr(tc.expr))
		})
	}
}

func TestIdentityRendersSubAsEquation(t *testing.T) {
	id := IdentityFromSub(Reference("X"), Add(Reference("A"), Reference("X_const")))
	assert.Equal(t, "X = (A + X_const);", renderIdentity(id))
}

func TestIdentityRendersOtherShapeAsEqualsZero(t *testing.T) {
	id := Identity{Expr: Mul(Reference("first_step"), Reference("pc"))}
	assert.Equal(t, "(first_step * pc) = 0;", renderIdentity(id))
}
