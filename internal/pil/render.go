package pil

import (
	"fmt"
	"strings"
)

// File is an ordered list of statements - the whole emitted PIL module.
// Statement order is part of the contract (§5 of the design): two
// compilations of the same input must render byte-identical text.
type File struct {
	Statements []Statement
}

// String renders every statement, one per line, in order.
func (f *File) String() string {
	var b strings.Builder
	for _, s := range f.Statements {
		b.WriteString(renderStatement(s))
		b.WriteByte('\n')
	}
	return b.String()
}

func renderStatement(s Statement) string {
	switch v := s.(type) {
	case Namespace:
		return fmt.Sprintf("namespace %s(%s);", v.Name, renderExpr(v.Degree))
	case ConstantDef:
		return renderConstantDef(v)
	case CommitDef:
		return renderCommitDef(v)
	case Identity:
		return renderIdentity(v)
	case PlookupIdentity:
		return fmt.Sprintf("%s in %s;", renderSelected(v.Left), renderSelected(v.Right))
	case PermutationIdentity:
		return fmt.Sprintf("%s is %s;", renderSelected(v.Left), renderSelected(v.Right))
	case Raw:
		return v.Text
	default:
		panic(fmt.Sprintf("pil: unrenderable statement %T", s))
	}
}

func renderConstantDef(v ConstantDef) string {
	switch {
	case v.Array != nil:
		items := make([]string, len(v.Array.Values))
		for i, e := range v.Array.Values {
			items[i] = renderExpr(e)
		}
		return fmt.Sprintf("pol constant %s = [%s] + [0]*;", v.Name, strings.Join(items, ", "))
	case v.Map != nil:
		return fmt.Sprintf("pol constant %s(%s) { %s };", v.Name, strings.Join(v.Map.Params, ", "), renderExpr(v.Map.Body))
	default:
		panic("pil: ConstantDef with neither Array nor Map set")
	}
}

func renderCommitDef(v CommitDef) string {
	if v.Query == nil {
		return fmt.Sprintf("pol commit %s;", v.Name)
	}
	return fmt.Sprintf("pol commit %s(%s) query %s;", v.Name, strings.Join(v.Query.Params, ", "), renderExpr(v.Query.Body))
}

func renderIdentity(v Identity) string {
	if v.Expr.kind == kindBinary && v.Expr.op == OpSub {
		return fmt.Sprintf("%s = %s;", renderExpr(v.Expr.left), renderExpr(v.Expr.right))
	}
	return fmt.Sprintf("%s = 0;", renderExpr(v.Expr))
}

func renderSelected(s SelectedExpressions) string {
	items := make([]string, len(s.Expressions))
	for i, e := range s.Expressions {
		items[i] = renderExpr(e)
	}
	body := fmt.Sprintf("{ %s }", strings.Join(items, ", "))
	if s.Selector != nil {
		return fmt.Sprintf("%s %s", renderExpr(s.Selector), body)
	}
	return body
}

func renderExpr(e *Expr) string {
	if e == nil {
		return ""
	}
	switch e.kind {
	case kindNumber:
		return e.number.String()
	case kindReference:
		return renderRef(e.ref)
	case kindBinary:
		return fmt.Sprintf("(%s %s %s)", renderExpr(e.left), e.op.String(), renderExpr(e.right))
	case kindUnaryMinus:
		return fmt.Sprintf("-%s", renderExpr(e.operand))
	case kindFunctionCall:
		args := make([]string, len(e.args))
		for i, a := range e.args {
			args[i] = renderExpr(a)
		}
		return fmt.Sprintf("%s(%s)", e.funcName, strings.Join(args, ", "))
	case kindTuple:
		items := make([]string, len(e.tuple))
		for i, a := range e.tuple {
			items[i] = renderExpr(a)
		}
		return fmt.Sprintf("(%s)", strings.Join(items, ", "))
	case kindMatch:
		var arms []string
		for _, a := range e.arms {
			pat := "_"
			if a.Pattern != nil {
				pat = renderExpr(a.Pattern)
			}
			arms = append(arms, fmt.Sprintf("%s => %s", pat, renderExpr(a.Value)))
		}
		return fmt.Sprintf("match %s { %s }", renderExpr(e.scrutinee), strings.Join(arms, ", "))
	case kindFreeInput:
		return fmt.Sprintf("${ %s }", renderExpr(e.freeInput))
	case kindString:
		return fmt.Sprintf("%q", e.str)
	case kindPublicReference:
		return fmt.Sprintf(":%s", e.public)
	default:
		panic(fmt.Sprintf("pil: unrenderable expression kind %d", e.kind))
	}
}

func renderRef(r *ColumnRef) string {
	var b strings.Builder
	if r.Namespace != "" {
		b.WriteString(r.Namespace)
		b.WriteByte('.')
	}
	b.WriteString(r.Name)
	if r.Index != nil {
		fmt.Fprintf(&b, "[%s]", renderExpr(r.Index))
	}
	if r.Next {
		b.WriteByte('\'')
	}
	return b.String()
}
