package pil

// Substitute returns a copy of expr with every direct reference whose name
// is a key of the given map replaced by a reference to the mapped name.
// Only the Name is replaced - Namespace and Next are preserved, and an Index
// expression is itself substituted recursively - which
// matches how the instruction compiler rewrites literal-parameter names to
// their backing witness columns (§4.4 item 2).
func Substitute(expr *Expr, mapping map[string]string) *Expr {
	if expr == nil {
		return nil
	}
	switch expr.kind {
	case kindReference:
		if to, ok := mapping[expr.ref.Name]; ok {
			r := *expr.ref
			r.Name = to
			r.Index = Substitute(expr.ref.Index, mapping)
			return &Expr{kind: kindReference, ref: &r}
		}
		r := *expr.ref
		r.Index = Substitute(expr.ref.Index, mapping)
		return &Expr{kind: kindReference, ref: &r}
	case kindBinary:
		return Binary(Substitute(expr.left, mapping), expr.op, Substitute(expr.right, mapping))
	case kindUnaryMinus:
		return Neg(Substitute(expr.operand, mapping))
	case kindFunctionCall:
		args := make([]*Expr, len(expr.args))
		for i, a := range expr.args {
			args[i] = Substitute(a, mapping)
		}
		return FunctionCall(expr.funcName, args)
	case kindTuple:
		items := make([]*Expr, len(expr.tuple))
		for i, a := range expr.tuple {
			items[i] = Substitute(a, mapping)
		}
		return Tuple(items)
	case kindMatch:
		arms := make([]MatchArm, len(expr.arms))
		for i, a := range expr.arms {
			arms[i] = MatchArm{Pattern: Substitute(a.Pattern, mapping), Value: Substitute(a.Value, mapping)}
		}
		return Match(Substitute(expr.scrutinee, mapping), arms)
	case kindFreeInput:
		return FreeInput(Substitute(expr.freeInput, mapping))
	case kindNumber, kindString, kindPublicReference:
		return expr.Clone()
	default:
		return expr.Clone()
	}
}

// SubstituteSelected substitutes both the selector (if any) and every
// expression of a SelectedExpressions.
func SubstituteSelected(s SelectedExpressions, mapping map[string]string) SelectedExpressions {
	out := SelectedExpressions{Expressions: make([]*Expr, len(s.Expressions))}
	if s.Selector != nil {
		out.Selector = Substitute(s.Selector, mapping)
	}
	for i, e := range s.Expressions {
		out.Expressions[i] = Substitute(e, mapping)
	}
	return out
}
