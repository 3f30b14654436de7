package compiler

import (
	"math/big"
	"sort"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/powdr-labs/asm2pil/internal/pil"
)

// noPos marks a compiler.Error raised during program materialisation,
// which works over already-validated code lines with no single source
// position of its own.
var noPos = lexer.Position{}

// materializeProgram runs C7: it closes off each assignment register's
// affine read constraint, emits every register's update identity, lowers
// the recorded code lines into the fixed "line" column and one "p_*" fixed
// column per witness participating in the line-lookup relation, declares
// each assignment register's free-input witness together with its query
// tuple, and finally appends the single plookup tying execution flags to
// the program table (§4.7/§4.8).
func (c *converter) materializeProgram() error {
	for _, name := range c.assignmentRegisterNames() {
		if err := c.createAssignmentReadConstraint(name); err != nil {
			return err
		}
	}

	for _, name := range c.registers.SortedNames() {
		reg, _ := c.registers.Get(name)
		if update := reg.UpdateExpression(); update != nil {
			c.statements = append(c.statements, pil.IdentityFromSub(pil.NextReference(name), update))
		}
	}

	return c.translateCodeLines()
}

// createAssignmentReadConstraint builds the affine equation that ties an
// assignment register's value to whichever regular register (or constant,
// or free input) it was last read from:
//
//	reg = Σ read_reg_R·R + reg_const + reg_read_free·reg_free_value
func (c *converter) createAssignmentReadConstraint(register string) error {
	assignConst := register + "_const"
	c.createWitnessFixedPair(assignConst)
	readFree := register + "_read_free"
	c.createWitnessFixedPair(readFree)
	freeValue := register + "_free_value"

	var terms []*pil.Expr
	for _, regName := range c.regularRegisterNames() {
		readCoeff := "read_" + register + "_" + regName
		c.createWitnessFixedPair(readCoeff)
		terms = append(terms, pil.Mul(pil.Reference(readCoeff), pil.Reference(regName)))
	}
	terms = append(terms, pil.Reference(assignConst), pil.Mul(pil.Reference(readFree), pil.Reference(freeValue)))

	sum := terms[0]
	for _, t := range terms[1:] {
		sum = pil.Add(sum, t)
	}
	c.statements = append(c.statements, pil.IdentityFromSub(pil.Reference(register), sum))
	return nil
}

// translateCodeLines lowers the recorded code lines to the program's fixed
// columns and free-input queries, then appends the closing line-lookup
// plookup.
func (c *converter) translateCodeLines() error {
	c.statements = append(c.statements, pil.ConstantDef{
		Name: "line",
		Map:  &pil.MappingDef{Params: []string{"i"}, Body: pil.Reference("i")},
	})

	programConstants := make(map[string][]*big.Int, len(c.programConstantNames))
	for _, name := range c.programConstantNames {
		values := make([]*big.Int, len(c.codeLines))
		for i := range values {
			values[i] = big.NewInt(0)
		}
		programConstants[name] = values
	}

	assignmentRegs := c.assignmentRegisterNames()
	freeValueQueries := make(map[string][]*pil.Expr, len(assignmentRegs))
	for _, reg := range assignmentRegs {
		head := []*pil.Expr{pil.Reference("i")}
		if c.pcName != "" {
			head = append(head, pil.Reference(c.pcName))
		}
		freeValueQueries[reg] = head
	}

	labelPositions := make(map[string]int)
	for i, line := range c.codeLines {
		if line.Label != "" {
			labelPositions[line.Label] = i
		}
	}

	for i, line := range c.codeLines {
		for _, assignReg := range sortedStringKeys(line.WriteRegs) {
			for _, reg := range line.WriteRegs[assignReg] {
				key := "p_reg_write_" + assignReg + "_" + reg
				values, ok := programConstants[key]
				if !ok {
					return nameErrorf(noPos, "register combination %s <=%s= not found", reg, assignReg)
				}
				values[i] = big.NewInt(1)
			}
		}

		for _, assignReg := range sortedStringKeys(line.Value) {
			for _, term := range line.Value[assignReg] {
				switch term.Kind {
				case ComponentRegister:
					key := "p_read_" + assignReg + "_" + term.Register
					values, ok := programConstants[key]
					if !ok {
						return nameErrorf(noPos, "register combination <=%s= %s not found", assignReg, term.Register)
					}
					values[i] = term.Coeff
				case ComponentConstant:
					programConstants["p_"+assignReg+"_const"][i] = term.Coeff
				case ComponentFreeInput:
					programConstants["p_"+assignReg+"_read_free"][i] = term.Coeff
					freeValueQueries[assignReg] = append(freeValueQueries[assignReg], pil.Tuple([]*pil.Expr{pil.NumberInt64(int64(i)), term.FreeInput}))
				}
			}
		}

		if line.Instruction != "" {
			for _, assignReg := range sortedStringKeys(line.WriteRegs) {
				if len(line.WriteRegs[assignReg]) > 0 {
					programConstants["p_"+assignReg+"_read_free"][i] = big.NewInt(1)
				}
			}
			programConstants["p_instr_"+line.Instruction][i] = big.NewInt(1)

			instr, ok := c.instructions.Get(line.Instruction)
			if !ok {
				return nameErrorf(noPos, "unknown instruction %q", line.Instruction)
			}
			for idx, arg := range line.InstructionLiteralArgs {
				if arg == "" {
					continue
				}
				pos, ok := labelPositions[arg]
				if !ok {
					return nameErrorf(noPos, "label %q not found", arg)
				}
				paramName := instr.Params[idx].Name
				programConstants["p_instr_"+line.Instruction+"_param_"+paramName][i] = big.NewInt(int64(pos))
			}
		}
	}

	for _, reg := range assignmentRegs {
		c.statements = append(c.statements, pil.CommitDef{
			Name: reg + "_free_value",
			Query: &pil.QueryDef{
				Params: []string{"i"},
				Body:   pil.Tuple(freeValueQueries[reg]),
			},
		})
	}

	sortedNames := append([]string(nil), c.programConstantNames...)
	sort.Strings(sortedNames)
	for _, name := range sortedNames {
		values := make([]*pil.Expr, len(programConstants[name]))
		for i, v := range programConstants[name] {
			values[i] = pil.Number(v)
		}
		c.statements = append(c.statements, pil.ConstantDef{Name: name, Array: &pil.ArrayDef{Values: values}})
	}

	left := pil.SelectedExpressions{Expressions: make([]*pil.Expr, len(c.lineLookup))}
	right := pil.SelectedExpressions{Expressions: make([]*pil.Expr, len(c.lineLookup))}
	for i, pair := range c.lineLookup {
		left.Expressions[i] = pil.Reference(pair.Witness)
		right.Expressions[i] = pil.Reference(pair.Fixed)
	}
	c.statements = append(c.statements, pil.PlookupIdentity{Left: left, Right: right})

	return nil
}
