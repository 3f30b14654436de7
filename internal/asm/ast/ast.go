// Package ast declares the participle grammar for the assembly front end
// and the conversion of its expression grammar to internal/pil.Expr trees.
//
// The teacher compiler never builds an AST at all - compiler.go tokenizes
// and immediately emits assembly output statement by statement. This package
// generalises that "straight from syntax to target vocabulary" habit: there
// is no separate semantic-analysis tree distinct from the parse tree, and
// File is consumed directly by internal/compiler the way the Rust original's
// ASMStatement enum is matched directly in its converter, only here it's a
// participle-built struct rather than a hand-written one.
package ast

import "github.com/alecthomas/participle/v2/lexer"

// File is the root grammar rule: a flat sequence of top-level items.
type File struct {
	Pos   lexer.Position
	Items []*TopLevel `parser:"@@*"`
}

// TopLevel is one top-level statement. Exactly one field is set.
type TopLevel struct {
	Pos          lexer.Position
	Degree       *DegreeStmt      `parser:"@@"`
	RegisterDecl *RegisterDecl    `parser:"| @@"`
	InstrDecl    *InstructionDecl `parser:"| @@"`
	InlinePil    *InlinePilBlock  `parser:"| @@"`
	Label        *LabelStmt       `parser:"| @@"`
	Assignment   *AssignStmt      `parser:"| @@"`
	Instruction  *InstructionStmt `parser:"| @@"`
}

// DegreeStmt sets the table's polynomial degree: "degree 1024;".
type DegreeStmt struct {
	Pos   lexer.Position
	Value string `parser:"'degree' @Int ';'"`
}

// RegisterDecl declares a register: "reg pc@pc;", "reg A@assign;", "reg X;".
// Flag is "pc", "assign", or "" for a plain regular register.
type RegisterDecl struct {
	Pos  lexer.Position
	Name string `parser:"'reg' @Ident"`
	Flag string `parser:"( '@' @('pc' | 'assign') )? ';'"`
}

// InstructionDecl declares an instruction, its parameters each optionally
// annotated with the register they read from or write to:
// "instr add X: in(A), Y: in(B), Z: out(CNT) { ... }".
type InstructionDecl struct {
	Pos    lexer.Position
	Name   string         `parser:"'instr' @Ident"`
	Params []*Param       `parser:"( @@ (',' @@)* )?"`
	Body   []*BodyElement `parser:"'{' @@* '}'"`
}

// Param is one instruction parameter, optionally annotated with its kind.
type Param struct {
	Pos  lexer.Position
	Name string    `parser:"@Ident"`
	Ann  *ParamAnn `parser:"( ':' @@ )?"`
}

// ParamAnn is a parameter's type annotation: either the literal keyword
// "label" or an input/output register binding.
type ParamAnn struct {
	Pos   lexer.Position
	Label bool       `parser:"@'label'"`
	Bind  *ParamBind `parser:"| @@"`
}

// ParamBind is "in(reg)" or "out(reg)".
type ParamBind struct {
	Pos lexer.Position
	Dir string `parser:"@('in' | 'out')"`
	Reg string `parser:"'(' @Ident ')'"`
}

// BodyElement is one statement inside an instruction body: either a
// plookup/permutation or a bare expression statement. Inline PIL blocks
// use PilStmt instead.
type BodyElement struct {
	Pos     lexer.Position
	Plookup *PlookupStmt `parser:"@@"`
	Expr    *ExprStmt    `parser:"| @@"`
}

// ExprStmt is "expr;" (rendered as "expr = 0;") or "lhs = rhs;".
type ExprStmt struct {
	Pos   lexer.Position
	Left  *Expr `parser:"@@"`
	Right *Expr `parser:"( '=' @@ )?"`
	End   string `parser:"';'"`
}

// PlookupStmt is a plookup ("{...} in {...}") or permutation
// ("{...} is {...}") identity.
type PlookupStmt struct {
	Pos   lexer.Position
	Left  *Selected `parser:"@@"`
	Op    string    `parser:"@('in' | 'is')"`
	Right *Selected `parser:"@@"`
	End   string    `parser:"';'"`
}

// Selected is one side of a plookup/permutation: an optional selector
// followed by a brace-delimited tuple of expressions.
type Selected struct {
	Pos      lexer.Position
	Selector *Expr   `parser:"( 'sel' @@ )?"`
	Items    []*Expr `parser:"'{' ( @@ (',' @@)* )? '}'"`
}

// LabelStmt is "name:".
type LabelStmt struct {
	Pos  lexer.Position
	Name string `parser:"@Ident ':'"`
}

// AssignStmt is "reg <= assign_reg= value;" - an assignment through a named
// assignment register.
type AssignStmt struct {
	Pos      lexer.Position
	Write    string `parser:"@Ident"`
	AssignOn string `parser:"'<=' @Ident '='"`
	Value    *Expr  `parser:"@@"`
	End      string `parser:"';'"`
}

// InstructionStmt is "name(arg, ...);" - an instruction invocation.
type InstructionStmt struct {
	Pos  lexer.Position
	Name string  `parser:"@Ident"`
	Args []*Expr `parser:"'(' ( @@ (',' @@)* )? ')'"`
	End  string  `parser:"';'"`
}

// InlinePilBlock is "pil { ... }": a passthrough block of raw PIL
// statements interleaved with whatever declarations it needs.
type InlinePilBlock struct {
	Pos   lexer.Position
	Items []*PilStmt `parser:"'pil' '{' @@* '}'"`
}

// PilStmt is one statement inside an inline PIL block.
type PilStmt struct {
	Pos     lexer.Position
	Commit  *InlineCommitDecl `parser:"@@"`
	Const   *InlineConstDecl  `parser:"| @@"`
	Plookup *PlookupStmt      `parser:"| @@"`
	Expr    *ExprStmt         `parser:"| @@"`
}

// InlineCommitDecl is "pol commit name;".
type InlineCommitDecl struct {
	Pos  lexer.Position
	Name string `parser:"'pol' 'commit' @Ident ';'"`
}

// InlineConstDecl is "pol constant name(i) { expr };" or
// "pol constant name = [v, ...] + [0]*;".
type InlineConstDecl struct {
	Pos  lexer.Position
	Name string           `parser:"'pol' 'constant' @Ident"`
	Map  *InlineConstMap  `parser:"@@"`
	Arr  *InlineConstArr  `parser:"| @@"`
}

// InlineConstMap is the functional form of a fixed-column definition.
type InlineConstMap struct {
	Pos    lexer.Position
	Params []string `parser:"'(' @Ident (',' @Ident)* ')'"`
	Body   *Expr     `parser:"'{' @@ '}' ';'"`
}

// InlineConstArr is the literal-array form of a fixed-column definition,
// padded with a trailing repeated value.
type InlineConstArr struct {
	Pos    lexer.Position
	Values []*Expr `parser:"'=' '[' ( @@ (',' @@)* )? ']' '+' '[' '0' ']' '*' ';'"`
}
