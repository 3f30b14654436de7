package compiler

import (
	"math/big"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/powdr-labs/asm2pil/internal/pil"
)

// ComponentKind classifies one term of an affine value.
type ComponentKind int

// Component kinds, per §4.6.
const (
	ComponentRegister ComponentKind = iota
	ComponentConstant
	ComponentFreeInput
)

// Term is one (coefficient, component) pair of an affine value.
type Term struct {
	Coeff     *big.Int
	Kind      ComponentKind
	Register  string    // set when Kind == ComponentRegister
	FreeInput *pil.Expr // set when Kind == ComponentFreeInput
}

// normalizeAffine flattens expr into an affine sum over registers,
// constants and free-input holes, per §4.6. Terms are not combined by
// component - duplicates accumulate in the returned list. C7's per-row
// table construction stores each term's coefficient in turn, so when one
// component appears more than once the last term's coefficient is the one
// kept; coefficients are not summed.
func normalizeAffine(pos lexer.Position, expr *pil.Expr) ([]Term, error) {
	if n, ok := expr.AsNumber(); ok {
		return []Term{{Coeff: new(big.Int).Set(n), Kind: ComponentConstant}}, nil
	}
	if name, next, ok := expr.IsReference(); ok {
		if next {
			return nil, shapeErrorf(pos, "next-row reference %q is not allowed in an affine value", name)
		}
		return []Term{{Coeff: big.NewInt(1), Kind: ComponentRegister, Register: name}}, nil
	}
	if inner, ok := expr.AsFreeInput(); ok {
		return []Term{{Coeff: big.NewInt(1), Kind: ComponentFreeInput, FreeInput: inner.Clone()}}, nil
	}
	if operand, ok := expr.AsUnaryMinus(); ok {
		terms, err := normalizeAffine(pos, operand)
		if err != nil {
			return nil, err
		}
		return negateTerms(terms), nil
	}
	if left, op, right, ok := expr.AsBinary(); ok {
		switch op {
		case pil.OpAdd:
			l, err := normalizeAffine(pos, left)
			if err != nil {
				return nil, err
			}
			r, err := normalizeAffine(pos, right)
			if err != nil {
				return nil, err
			}
			return append(l, r...), nil
		case pil.OpSub:
			l, err := normalizeAffine(pos, left)
			if err != nil {
				return nil, err
			}
			r, err := normalizeAffine(pos, right)
			if err != nil {
				return nil, err
			}
			return append(l, negateTerms(r)...), nil
		case pil.OpMul:
			l, err := normalizeAffine(pos, left)
			if err != nil {
				return nil, err
			}
			r, err := normalizeAffine(pos, right)
			if err != nil {
				return nil, err
			}
			if c, ok := singleConstant(l); ok {
				return scaleTerms(r, c), nil
			}
			if c, ok := singleConstant(r); ok {
				return scaleTerms(l, c), nil
			}
			return nil, shapeErrorf(pos, "multiplication by non-constant is not allowed in an affine value")
		default:
			return nil, shapeErrorf(pos, "operator %q is not allowed in an affine value", op)
		}
	}
	return nil, shapeErrorf(pos, "expression is not affine in registers")
}

func singleConstant(terms []Term) (*big.Int, bool) {
	if len(terms) != 1 || terms[0].Kind != ComponentConstant {
		return nil, false
	}
	return terms[0].Coeff, true
}

func negateTerms(terms []Term) []Term {
	out := make([]Term, len(terms))
	for i, t := range terms {
		out[i] = t
		out[i].Coeff = new(big.Int).Neg(t.Coeff)
	}
	return out
}

func scaleTerms(terms []Term, c *big.Int) []Term {
	out := make([]Term, len(terms))
	for i, t := range terms {
		out[i] = t
		out[i].Coeff = new(big.Int).Mul(t.Coeff, c)
	}
	return out
}
