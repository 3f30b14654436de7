package pil

// Statement is one top-level PIL declaration or identity. The sum type
// mirrors the vocabulary fixed by §6 of the design: namespace, fixed
// (constant) column definitions, witness (commit) column declarations,
// polynomial identities, and lookup/permutation identities.
type Statement interface {
	isStatement()
}

// Namespace declares the namespace and trace degree all subsequent
// statements live in. It is always the first statement the converter
// emits.
type Namespace struct {
	Name   string
	Degree *Expr
}

func (Namespace) isStatement() {}

// ArrayDef is a fixed column tabulated by an explicit list of per-row
// values, conventionally padded with zeroes out to the trace degree
// ("[v0, v1, ...] + [0]*").
type ArrayDef struct {
	Values []*Expr
}

// MappingDef is a fixed column computed from its row index by a closed
// expression ("pol constant NAME(i) { expr }").
type MappingDef struct {
	Params []string
	Body   *Expr
}

// ConstantDef declares a fixed column, either tabulated (ArrayDef) or
// computed (MappingDef).
type ConstantDef struct {
	Name  string
	Array *ArrayDef
	Map   *MappingDef
}

func (ConstantDef) isStatement() {}

// QueryDef is a witness column whose per-row value is supplied by a host
// query callback rather than chosen by the prover directly from
// constraints - the free-input protocol of §6.
type QueryDef struct {
	Params []string
	Body   *Expr
}

// CommitDef declares a witness column, optionally with a Query definition.
// A nil Query means the column's value is constrained but not queried.
type CommitDef struct {
	Name  string
	Query *QueryDef
}

func (CommitDef) isStatement() {}

// Identity is a polynomial identity. When Expr is a top-level "lhs - rhs"
// subtraction it renders as "lhs = rhs;"; otherwise it renders as
// "(expr) = 0;". Constructors should prefer IdentityFromSub when they
// already know the left/right shape (register updates, assignment-reader
// constraints), since it renders the clearer form and is what the
// reference fixtures expect.
type Identity struct {
	Expr *Expr
}

func (Identity) isStatement() {}

// IdentityFromSub builds the identity "left - right = 0", which the
// renderer prints as "left = right;".
func IdentityFromSub(left, right *Expr) Identity {
	return Identity{Expr: Sub(left, right)}
}

// SelectedExpressions is one side of a plookup or permutation identity: an
// optional row selector and the tuple of expressions being matched.
type SelectedExpressions struct {
	Selector    *Expr
	Expressions []*Expr
}

// PlookupIdentity requires every row selected on the left to appear as a
// row on the right (multiset containment).
type PlookupIdentity struct {
	Left, Right SelectedExpressions
}

func (PlookupIdentity) isStatement() {}

// PermutationIdentity requires the selected rows on both sides to be a
// permutation of one another (multiset equality).
type PermutationIdentity struct {
	Left, Right SelectedExpressions
}

func (PermutationIdentity) isStatement() {}

// Raw passes a pre-rendered PIL statement straight through: it renders as
// its Text, unchanged. The converter does not construct it - inline PIL
// blocks (§4.5) are lowered to the typed statements above - and normal
// lowering code should always produce one of those typed statements.
type Raw struct {
	Text string
}

func (Raw) isStatement() {}
