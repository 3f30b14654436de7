package compiler

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/powdr-labs/asm2pil/internal/asm/ast"
	"github.com/powdr-labs/asm2pil/internal/pil"
)

// handleAssignmentStmt lowers "reg <= assign= value;". When value is, with
// no surrounding operators, a bare function call it is rewritten into an
// instruction call per §4.5 (the assignment register is the call's implicit
// final output parameter); otherwise value must be affine in registers and
// becomes the code line's read value for the named assignment register.
func (c *converter) handleAssignmentStmt(stmt *ast.AssignStmt) error {
	if call := stmt.Value.AsBareCall(); call != nil {
		return c.handleFunctionalInstruction(stmt, call)
	}
	terms, err := normalizeAffine(stmt.Pos, stmt.Value.Lower())
	if err != nil {
		return err
	}
	c.codeLines = append(c.codeLines, &CodeLine{
		WriteRegs: map[string][]string{stmt.AssignOn: {stmt.Write}},
		Value:     map[string][]Term{stmt.AssignOn: terms},
	})
	return nil
}

// handleFunctionalInstruction rewrites "reg <= assign= f(args...)" into a
// call to instruction f with the assignment's write register appended as
// f's final argument, after checking that f's last parameter is in fact an
// output binding through the named assignment register (§4.5).
func (c *converter) handleFunctionalInstruction(stmt *ast.AssignStmt, call *ast.CallExpr) error {
	instr, ok := c.instructions.Get(call.Name)
	if !ok {
		return nameErrorf(call.Pos, "call to undeclared instruction %q", call.Name)
	}
	if len(instr.Params) == 0 {
		return invariantErrorf(call.Pos, "instruction %q has no last parameter to bind through %q", call.Name, stmt.AssignOn)
	}
	if len(instr.Params) != len(call.Args)+1 {
		return arityErrorf(call.Pos, "instruction %q expects %d argument(s), found %d in functional call", call.Name, len(instr.Params)-1, len(call.Args))
	}
	last := instr.Params[len(instr.Params)-1]
	if last.OutReg != stmt.AssignOn {
		return invariantErrorf(call.Pos, "instruction %q's last parameter is not an output binding through %q", call.Name, stmt.AssignOn)
	}

	args := make([]*pil.Expr, len(call.Args)+1)
	for i, a := range call.Args {
		args[i] = a.Lower()
	}
	args[len(args)-1] = pil.Reference(stmt.Write)
	return c.handleInstruction(call.Name, args, call.Pos)
}

// handleInstructionStmt lowers a bare instruction invocation statement
// "name(args...);" into a code line.
func (c *converter) handleInstructionStmt(stmt *ast.InstructionStmt) error {
	args := make([]*pil.Expr, len(stmt.Args))
	for i, a := range stmt.Args {
		args[i] = a.Lower()
	}
	return c.handleInstruction(stmt.Name, args, stmt.Pos)
}

// handleInstruction shapes one instruction call's arguments against the
// instruction's declared parameter signature (§4.5): an input-bound
// parameter's argument must be affine in registers, an output-bound
// parameter's argument must be a direct (current-row) register reference,
// and a label parameter's argument must be a bare reference whose name is
// resolved against code-line label positions in C7.
func (c *converter) handleInstruction(name string, args []*pil.Expr, pos lexer.Position) error {
	instr, ok := c.instructions.Get(name)
	if !ok {
		return nameErrorf(pos, "call to undeclared instruction %q", name)
	}
	if len(instr.Params) != len(args) {
		return arityErrorf(pos, "instruction %q expects %d argument(s), found %d", name, len(instr.Params), len(args))
	}

	value := make(map[string][]Term)
	writeRegs := make(map[string][]string)
	literalArgs := make([]string, len(args))

	for i, p := range instr.Params {
		a := args[i]
		switch {
		case p.InReg != "":
			if _, exists := value[p.InReg]; exists {
				return invariantErrorf(pos, "assignment register %q is read more than once in one call to %q", p.InReg, name)
			}
			terms, err := normalizeAffine(pos, a)
			if err != nil {
				return err
			}
			value[p.InReg] = terms
		case p.OutReg != "":
			regName, next, ok := a.IsReference()
			if !ok || next {
				return arityErrorf(pos, "argument %d of %q must be a direct register reference", i, name)
			}
			if _, exists := writeRegs[p.OutReg]; exists {
				return invariantErrorf(pos, "assignment register %q writes more than one register in one call to %q", p.OutReg, name)
			}
			writeRegs[p.OutReg] = []string{regName}
		case p.IsLabel:
			labelName, next, ok := a.IsReference()
			if !ok || next {
				return arityErrorf(pos, "argument %d of %q must be a bare label reference", i, name)
			}
			literalArgs[i] = labelName
		default:
			return shapeErrorf(pos, "parameter %q of %q has no recognised binding", p.Name, name)
		}
	}

	c.codeLines = append(c.codeLines, &CodeLine{
		Instruction:            name,
		WriteRegs:              writeRegs,
		Value:                  value,
		InstructionLiteralArgs: literalArgs,
	})
	return nil
}
