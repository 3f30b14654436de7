package compiler

import (
	"github.com/powdr-labs/asm2pil/internal/asm/ast"
	"github.com/powdr-labs/asm2pil/internal/pil"
)

// Register records one declared register's update behaviour: whether it
// is an assignment register (transient, read-side) or a regular register
// (state, has an update), its ordered conditioned updates, and its
// optional default update - the data model of §3.
type Register struct {
	Name               string
	IsAssignment       bool
	IsPC               bool
	ConditionedUpdates []ConditionedUpdate
	DefaultUpdate      *pil.Expr
}

// ConditionedUpdate is one (condition, value) pair contributing to a
// register's update expression.
type ConditionedUpdate struct {
	Condition *pil.Expr
	Value     *pil.Expr
}

// UpdateExpression synthesises the register's next-row value per §4.7's
// update-expression synthesis rule:
//
//	no conditions, no default:  register is free, no update
//	conditions, no default:     Σ c_k·v_k
//	conditions with default d:  Σ c_k·v_k + (1 − Σ c_k)·d
//
// Conditions are assumed boolean and mutually exclusive; this is not
// verified here (§9 design note - the downstream analyzer/solver is
// expected to enforce it with additional constraints).
func (r *Register) UpdateExpression() *pil.Expr {
	if len(r.ConditionedUpdates) == 0 {
		return r.DefaultUpdate
	}
	var sum, condSum *pil.Expr
	for _, cu := range r.ConditionedUpdates {
		term := pil.Mul(cu.Condition.Clone(), cu.Value.Clone())
		if sum == nil {
			sum = term
		} else {
			sum = pil.Add(sum, term)
		}
		if condSum == nil {
			condSum = cu.Condition.Clone()
		} else {
			condSum = pil.Add(condSum, cu.Condition.Clone())
		}
	}
	if r.DefaultUpdate == nil {
		return sum
	}
	defaultCondition := pil.Sub(pil.NumberInt64(1), condSum)
	return pil.Add(sum, pil.Mul(defaultCondition, r.DefaultUpdate.Clone()))
}

// compileRegisterDecl lowers one register declaration (§4.2): PC and
// regular registers get a "first_step * name = 0" boundary identity and a
// seeded "first_step' -> 0" conditioned update (so the register's default
// condition accounts for the first row even when no other update applies);
// the PC additionally advances by one by default and joins the line-lookup
// relation under the fixed column "line"; a regular register additionally
// picks up one "reg_write_<assign>_<name>" witness/fixed pair per
// already-declared assignment register, each contributing a conditioned
// update that lets that assignment register overwrite it. An assignment
// register gets no update at all - its value lives only within a row.
func (c *converter) compileRegisterDecl(decl *ast.RegisterDecl) error {
	name := decl.Name
	reg := &Register{Name: name}

	switch decl.Flag {
	case "pc":
		if c.pcName != "" {
			return shapeErrorf(decl.Pos, "duplicate PC declaration: %q and %q", c.pcName, name)
		}
		c.pcName = name
		reg.IsPC = true
		c.lineLookup = append(c.lineLookup, lookupPair{Witness: name, Fixed: "line"})
		c.statements = append(c.statements, pil.Identity{
			Expr: pil.Mul(pil.Reference("first_step"), pil.Reference(name)),
		})
		reg.ConditionedUpdates = append(reg.ConditionedUpdates, ConditionedUpdate{
			Condition: pil.NextReference("first_step"),
			Value:     pil.NumberInt64(0),
		})
		reg.DefaultUpdate = pil.Add(pil.Reference(name), pil.NumberInt64(1))
	case "assign":
		reg.IsAssignment = true
	case "":
		c.statements = append(c.statements, pil.Identity{
			Expr: pil.Mul(pil.Reference("first_step"), pil.Reference(name)),
		})
		reg.ConditionedUpdates = append(reg.ConditionedUpdates, ConditionedUpdate{
			Condition: pil.NextReference("first_step"),
			Value:     pil.NumberInt64(0),
		})
		for _, assignReg := range c.assignmentRegisterNames() {
			writeFlag := "reg_write_" + assignReg + "_" + name
			c.createWitnessFixedPair(writeFlag)
			reg.ConditionedUpdates = append(reg.ConditionedUpdates, ConditionedUpdate{
				Condition: pil.Reference(writeFlag),
				Value:     pil.Reference(assignReg),
			})
		}
		reg.DefaultUpdate = pil.Reference(name)
	default:
		return shapeErrorf(decl.Pos, "unknown register flag %q", decl.Flag)
	}

	if err := c.registers.Declare(name, reg); err != nil {
		return nameErrorf(decl.Pos, "%s", err)
	}
	c.statements = append(c.statements, pil.CommitDef{Name: name})
	return nil
}
