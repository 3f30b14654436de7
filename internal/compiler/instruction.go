package compiler

import (
	"github.com/powdr-labs/asm2pil/internal/asm/ast"
	"github.com/powdr-labs/asm2pil/internal/pil"
)

// InstrParam is one parameter of a declared instruction: a plain name, or
// one annotated as a literal label, an input binding ("reads into
// register"), or an output binding ("writes from register").
type InstrParam struct {
	Name    string
	IsLabel bool
	InReg   string // set when this parameter reads a value into InReg
	OutReg  string // set when this parameter writes a value from OutReg
}

// Instruction is a declared instruction's parameter signature, used to
// validate and shape every later call site (§4.4/§4.5).
type Instruction struct {
	Name   string
	Params []InstrParam
}

// compileInstructionDecl lowers one instruction declaration (§4.4): an
// "instr_<name>" witness/fixed execution-flag pair, one
// "instr_<name>_param_<p>" witness/fixed pair per literal (non-bound)
// parameter, and the instruction body translated under the execution flag -
// body expressions of the shape "reg' - value" become a conditioned update
// on that register gated by the flag, any other expression becomes the
// identity "flag * expr = 0", and a plookup/permutation becomes the same
// identity with the flag spliced in as the left selector.
func (c *converter) compileInstructionDecl(decl *ast.InstructionDecl) error {
	flagName := "instr_" + decl.Name
	c.createWitnessFixedPair(flagName)
	flagRef := pil.Reference(flagName)

	substitutions := make(map[string]string)
	params := make([]InstrParam, len(decl.Params))
	for i, p := range decl.Params {
		param := InstrParam{Name: p.Name}
		switch {
		case p.Ann == nil:
			paramCol := flagName + "_param_" + p.Name
			c.createWitnessFixedPair(paramCol)
			substitutions[p.Name] = paramCol
		case p.Ann.Label:
			param.IsLabel = true
			paramCol := flagName + "_param_" + p.Name
			c.createWitnessFixedPair(paramCol)
			substitutions[p.Name] = paramCol
		case p.Ann.Bind != nil && p.Ann.Bind.Dir == "in":
			param.InReg = p.Ann.Bind.Reg
		case p.Ann.Bind != nil && p.Ann.Bind.Dir == "out":
			param.OutReg = p.Ann.Bind.Reg
		default:
			return shapeErrorf(p.Pos, "instruction parameter %q has no recognised annotation", p.Name)
		}
		params[i] = param
	}

	for _, elem := range decl.Body {
		switch {
		case elem.Expr != nil:
			expr := elem.Expr.Left.Lower()
			if elem.Expr.Right != nil {
				expr = pil.Sub(expr, elem.Expr.Right.Lower())
			}
			expr = pil.Substitute(expr, substitutions)
			if reg, value, ok := pil.ExtractUpdate(expr); ok {
				register, found := c.registers.Get(reg)
				if !found {
					return nameErrorf(elem.Pos, "instruction %q updates unknown register %q", decl.Name, reg)
				}
				register.ConditionedUpdates = append(register.ConditionedUpdates, ConditionedUpdate{
					Condition: flagRef.Clone(),
					Value:     value,
				})
			} else {
				c.statements = append(c.statements, pil.Identity{Expr: pil.Mul(flagRef.Clone(), expr)})
			}
		case elem.Plookup != nil:
			if elem.Plookup.Left.Selector != nil {
				return shapeErrorf(elem.Plookup.Pos, "a selector on an instruction body's plookup left side is not supported")
			}
			left := lowerSelected(elem.Plookup.Left)
			left.Selector = flagRef.Clone()
			left = pil.SubstituteSelected(left, substitutions)
			right := pil.SubstituteSelected(lowerSelected(elem.Plookup.Right), substitutions)
			if elem.Plookup.Op == "in" {
				c.statements = append(c.statements, pil.PlookupIdentity{Left: left, Right: right})
			} else {
				c.statements = append(c.statements, pil.PermutationIdentity{Left: left, Right: right})
			}
		}
	}

	if err := c.instructions.Declare(decl.Name, &Instruction{Name: decl.Name, Params: params}); err != nil {
		return nameErrorf(decl.Pos, "%s", err)
	}
	return nil
}
