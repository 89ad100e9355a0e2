package circuit

import (
	"fmt"
	"strings"
)

// Render produces the OpenQASM 3.0 program for a spec. The output is a pure
// function of (operation, width): rendering the same spec twice yields
// byte-identical text. Downstream code treats the program as inert data.
func Render(spec Spec) string {
	tpl := templates[spec.Op]
	width := spec.Width
	if width < 1 {
		width = tpl.DefaultWidth
	}

	var b strings.Builder
	b.WriteString("OPENQASM 3.0;\n")
	b.WriteString("include \"stdgates.inc\";\n")
	fmt.Fprintf(&b, "qubit[%d] q;\n", width)
	fmt.Fprintf(&b, "bit[%d] c;\n", width)

	for _, gate := range tpl.Gates {
		switch gate.Kind {
		case GateH:
			fmt.Fprintf(&b, "h q[%d];\n", gate.Qubit)
		case GateCX:
			fmt.Fprintf(&b, "cx q[%d], q[%d];\n", gate.Control, gate.Qubit)
		case GateRY:
			fmt.Fprintf(&b, "ry(%s) q[%d];\n", gate.Angle, gate.Qubit)
		}
	}

	for i := 0; i < width; i++ {
		fmt.Fprintf(&b, "measure q[%d] -> c[%d];\n", i, i)
	}

	return b.String()
}
