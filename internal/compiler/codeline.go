package compiler

import "sort"

// CodeLine is the lowered form of one assembly statement, per §3/§4.5: an
// optional label, an optional instruction name, the regular registers
// each assignment register writes on this row, the affine value read into
// each assignment register on this row, and the instruction's literal
// (label) arguments positionally aligned with its parameter list.
type CodeLine struct {
	Label       string
	Instruction string

	// WriteRegs maps an assignment register name to the regular registers
	// it writes into on this row. Keyed like the original's
	// BTreeMap<String, Vec<String>>: iterate via sortedStringKeys so the
	// order matches regardless of Go's randomised map iteration.
	WriteRegs map[string][]string

	// Value maps an assignment register name to the affine terms read
	// into it on this row.
	Value map[string][]Term

	// InstructionLiteralArgs is positionally aligned with the owning
	// instruction's parameter list; an empty string marks "no literal
	// argument at this position" (an input/output binding instead).
	InstructionLiteralArgs []string
}

func sortedStringKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
