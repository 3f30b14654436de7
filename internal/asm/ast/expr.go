package ast

import (
	"fmt"
	"math/big"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/powdr-labs/asm2pil/internal/pil"
)

// Expr is the entry point of the expression grammar: a standard
// precedence-climbing ladder (additive -> multiplicative -> power -> unary
// -> postfix -> primary), each level a flat "left, then zero or more
// (op, right)" struct folded left-to-right by Lower. Power nests back into
// itself on the right so "**" associates to the right, matching PIL's own
// exponent operator.
type Expr struct {
	Pos  lexer.Position
	Left *Multiplicative  `parser:"@@"`
	Ops  []*AdditiveOp    `parser:"@@*"`
}

// AdditiveOp is one "+ term" or "- term" suffix.
type AdditiveOp struct {
	Op    string          `parser:"@('+' | '-')"`
	Right *Multiplicative `parser:"@@"`
}

// Multiplicative is the second rung: "*", "/", "%" and, for completeness
// with the rest of PIL's operator set, the bitwise/shift operators at the
// same precedence as multiplication. The lowering engine only ever produces
// Add/Sub/Mul (see internal/compiler/affine.go); the others parse here so
// that an affine value using them fails later with a precise shape error
// instead of a syntax error, and so that inline PIL blocks and instruction
// bodies can carry them through unchanged.
type Multiplicative struct {
	Pos   lexer.Position
	Left  *Power              `parser:"@@"`
	Ops   []*MultiplicativeOp `parser:"@@*"`
}

// MultiplicativeOp is one multiplicative-precedence suffix.
type MultiplicativeOp struct {
	Op    string `parser:"@('*' | '/' | '%' | '&' | '|' | '^' | '<<' | '>>')"`
	Right *Power `parser:"@@"`
}

// Power is right-associative exponentiation over a unary operand.
type Power struct {
	Pos   lexer.Position
	Left  *Unary `parser:"@@"`
	Right *Power `parser:"( '**' @@ )?"`
}

// Unary is an optional leading minus over a postfix expression.
type Unary struct {
	Pos     lexer.Position
	Neg     string   `parser:"@'-'?"`
	Operand *Postfix `parser:"@@"`
}

// Postfix is a primary expression with an optional trailing "'" marking a
// next-row reference.
type Postfix struct {
	Pos     lexer.Position
	Primary *Primary `parser:"@@"`
	Next    string   `parser:"@Tick?"`
}

// Primary is the leaf of the expression grammar. Exactly one field is set.
// Call is tried before Ref so that "name(args)" is recognised as a call and
// not a bare reference followed by an unconsumed "(" - participle
// backtracks to the next alternative whenever one fails to match in full.
type Primary struct {
	Pos       lexer.Position
	Number    *string       `parser:"@Int"`
	Str       *string       `parser:"| @Str"`
	FreeInput *FreeInputLit `parser:"| @@"`
	Match     *MatchExpr    `parser:"| @@"`
	Call      *CallExpr     `parser:"| @@"`
	Paren     *ParenExpr    `parser:"| @@"`
	Public    *PublicRef    `parser:"| @@"`
	Ref       *RefExpr      `parser:"| @@"`
}

// FreeInputLit is a free-input hole: "${ expr }".
type FreeInputLit struct {
	Pos  lexer.Position
	Body *Expr `parser:"'$' '{' @@ '}'"`
}

// MatchExpr is "match scrutinee { pattern => value, ... }". A pattern that
// is the bare identifier "_" lowers to the wildcard arm.
type MatchExpr struct {
	Pos       lexer.Position
	Scrutinee *Expr       `parser:"'match' @@"`
	Arms      []*MatchArm `parser:"'{' ( @@ (',' @@)* ','? )? '}'"`
}

// MatchArm is one "pattern => value" arm.
type MatchArm struct {
	Pos     lexer.Position
	Pattern *Expr `parser:"@@"`
	Value   *Expr `parser:"'=>' @@"`
}

// CallExpr is "name(args...)".
type CallExpr struct {
	Pos  lexer.Position
	Name string  `parser:"@Ident"`
	Args []*Expr `parser:"'(' ( @@ (',' @@)* )? ')'"`
}

// ParenExpr is a parenthesised grouping, or - with more than one item - a
// tuple literal.
type ParenExpr struct {
	Pos   lexer.Position
	Items []*Expr `parser:"'(' @@ (',' @@)* ')'"`
}

// PublicRef is a reference to a public/constant value: ":name".
type PublicRef struct {
	Pos  lexer.Position
	Name string `parser:"':' @Ident"`
}

// RefExpr is a (possibly namespaced, possibly indexed) column reference.
type RefExpr struct {
	Pos       lexer.Position
	Namespace string `parser:"( @Ident '.' )?"`
	Name      string `parser:"@Ident"`
	Index     *Expr  `parser:"( '[' @@ ']' )?"`
}

// AsBareCall reports whether e is, with no surrounding operators at any
// precedence level, a plain function call - the shape
// "reg <= assign_reg= f(args...)" must have on its right-hand side to be
// rewritten as a functional instruction call rather than an affine value.
func (e *Expr) AsBareCall() *CallExpr {
	if e == nil || len(e.Ops) != 0 {
		return nil
	}
	m := e.Left
	if m == nil || len(m.Ops) != 0 {
		return nil
	}
	p := m.Left
	if p == nil || p.Right != nil {
		return nil
	}
	u := p.Left
	if u == nil || u.Neg != "" {
		return nil
	}
	post := u.Operand
	if post == nil || post.Next != "" {
		return nil
	}
	return post.Primary.Call
}

// Lower converts the parsed expression tree to its internal/pil
// equivalent.
func (e *Expr) Lower() *pil.Expr {
	if e == nil {
		return nil
	}
	result := e.Left.Lower()
	for _, op := range e.Ops {
		result = pil.Binary(result, mustBinaryOp(op.Op), op.Right.Lower())
	}
	return result
}

func (m *Multiplicative) Lower() *pil.Expr {
	result := m.Left.Lower()
	for _, op := range m.Ops {
		result = pil.Binary(result, mustBinaryOp(op.Op), op.Right.Lower())
	}
	return result
}

func (p *Power) Lower() *pil.Expr {
	left := p.Left.Lower()
	if p.Right != nil {
		return pil.Binary(left, pil.OpPow, p.Right.Lower())
	}
	return left
}

func (u *Unary) Lower() *pil.Expr {
	operand := u.Operand.Lower()
	if u.Neg != "" {
		return pil.Neg(operand)
	}
	return operand
}

func (p *Postfix) Lower() *pil.Expr {
	result := p.Primary.Lower()
	if p.Next == "" {
		return result
	}
	name, _, ok := result.IsReference()
	if !ok {
		return result
	}
	return pil.NextReference(name)
}

func (p *Primary) Lower() *pil.Expr {
	switch {
	case p.Number != nil:
		n, ok := new(big.Int).SetString(*p.Number, 10)
		if !ok {
			panic(fmt.Sprintf("ast: invalid integer literal %q", *p.Number))
		}
		return pil.Number(n)
	case p.Str != nil:
		return pil.String(*p.Str)
	case p.FreeInput != nil:
		return pil.FreeInput(p.FreeInput.Body.Lower())
	case p.Match != nil:
		return p.Match.Lower()
	case p.Call != nil:
		return p.Call.Lower()
	case p.Paren != nil:
		return p.Paren.Lower()
	case p.Public != nil:
		return pil.PublicReference(p.Public.Name)
	case p.Ref != nil:
		return p.Ref.Lower()
	}
	panic("ast: primary expression with no alternative set")
}

func (m *MatchExpr) Lower() *pil.Expr {
	arms := make([]pil.MatchArm, len(m.Arms))
	for i, a := range m.Arms {
		arms[i] = a.lower()
	}
	return pil.Match(m.Scrutinee.Lower(), arms)
}

func (a *MatchArm) lower() pil.MatchArm {
	if name, _, ok := a.Pattern.Lower().IsReference(); ok && name == "_" {
		return pil.MatchArm{Pattern: nil, Value: a.Value.Lower()}
	}
	return pil.MatchArm{Pattern: a.Pattern.Lower(), Value: a.Value.Lower()}
}

func (c *CallExpr) Lower() *pil.Expr {
	args := make([]*pil.Expr, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.Lower()
	}
	return pil.FunctionCall(c.Name, args)
}

func (p *ParenExpr) Lower() *pil.Expr {
	if len(p.Items) == 1 {
		return p.Items[0].Lower()
	}
	items := make([]*pil.Expr, len(p.Items))
	for i, it := range p.Items {
		items[i] = it.Lower()
	}
	return pil.Tuple(items)
}

func (r *RefExpr) Lower() *pil.Expr {
	ref := pil.ColumnRef{Namespace: r.Namespace, Name: r.Name}
	if r.Index != nil {
		ref.Index = r.Index.Lower()
	}
	return pil.ReferenceFull(ref)
}

func mustBinaryOp(op string) pil.BinaryOp {
	switch op {
	case "+":
		return pil.OpAdd
	case "-":
		return pil.OpSub
	case "*":
		return pil.OpMul
	case "/":
		return pil.OpDiv
	case "%":
		return pil.OpMod
	case "**":
		return pil.OpPow
	case "&":
		return pil.OpBinaryAnd
	case "|":
		return pil.OpBinaryOr
	case "^":
		return pil.OpBinaryXor
	case "<<":
		return pil.OpShiftLeft
	case ">>":
		return pil.OpShiftRight
	}
	panic(fmt.Sprintf("ast: unknown operator %q", op))
}
