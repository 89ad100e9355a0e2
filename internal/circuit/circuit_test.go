package circuit

import (
	"strings"
	"testing"
)

func TestCatalogueOrderIsStable(t *testing.T) {
	want := []Operation{
		OpStrategy,
		OpMoveEvaluation,
		OpPositionAnalysis,
		OpEndgameOptimization,
		OpOpeningTheory,
	}
	got := Catalogue()
	if len(got) != len(want) {
		t.Fatalf("catalogue size %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("catalogue[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEveryOperationHasTemplate(t *testing.T) {
	for _, op := range Catalogue() {
		tpl, ok := TemplateFor(op)
		if !ok {
			t.Fatalf("missing template for %q", op)
		}
		if tpl.DefaultWidth < 3 || tpl.DefaultWidth > 4 {
			t.Fatalf("%q default width %d outside 3..4", op, tpl.DefaultWidth)
		}
		if tpl.DefaultShots != 100 {
			t.Fatalf("%q default shots %d, want 100", op, tpl.DefaultShots)
		}
		if len(tpl.Gates) == 0 {
			t.Fatalf("%q has no gates", op)
		}
		for _, gate := range tpl.Gates {
			if gate.Qubit >= tpl.DefaultWidth {
				t.Fatalf("%q gate touches qubit %d beyond default width %d", op, gate.Qubit, tpl.DefaultWidth)
			}
			if gate.Kind == GateRY && gate.Angle == "" {
				t.Fatalf("%q has RY gate without angle", op)
			}
		}
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	for _, op := range Catalogue() {
		spec := DefaultSpec(op)
		first := Render(spec)
		second := Render(spec)
		if first != second {
			t.Fatalf("rendering %q is not deterministic", op)
		}
	}
}

func TestRenderProgramShape(t *testing.T) {
	program := Render(DefaultSpec(OpStrategy))

	if !strings.HasPrefix(program, "OPENQASM 3.0;\n") {
		t.Fatalf("missing QASM header:\n%s", program)
	}
	if !strings.Contains(program, "qubit[4] q;") {
		t.Fatalf("missing qubit register:\n%s", program)
	}
	if !strings.Contains(program, "cx q[0], q[2];") {
		t.Fatalf("missing strategy correlation gate:\n%s", program)
	}
	if !strings.Contains(program, "ry(pi/8) q[3];") {
		t.Fatalf("missing strategy phase gate:\n%s", program)
	}
	if n := strings.Count(program, "measure "); n != 4 {
		t.Fatalf("expected 4 measurements, got %d", n)
	}
}

func TestRenderUsesWidthForRegisters(t *testing.T) {
	program := Render(NewSpec(OpMoveEvaluation, 5, 0))
	if !strings.Contains(program, "qubit[5] q;") || !strings.Contains(program, "bit[5] c;") {
		t.Fatalf("width override not reflected:\n%s", program)
	}
	if n := strings.Count(program, "measure "); n != 5 {
		t.Fatalf("expected 5 measurements, got %d", n)
	}
}

func TestNewSpecFallsBackToDefaults(t *testing.T) {
	spec := NewSpec(OpEndgameOptimization, 0, -5)
	if spec.Width != 3 || spec.Shots != 100 {
		t.Fatalf("unexpected fallback spec: %+v", spec)
	}
}

func TestBuildJobMetadata(t *testing.T) {
	job := BuildJob(DefaultSpec(OpOpeningTheory))

	if job.Device != DeviceSimulator {
		t.Fatalf("unexpected device class: %s", job.Device)
	}
	if job.Shots != 100 {
		t.Fatalf("unexpected shots: %d", job.Shots)
	}
	if job.Metadata["operation"] != string(OpOpeningTheory) {
		t.Fatalf("operation metadata missing: %v", job.Metadata)
	}
	if job.Metadata["opening_variations"] != 4 {
		t.Fatalf("width knob missing: %v", job.Metadata)
	}
	if job.Metadata["theory"] != "quantum_innovative" {
		t.Fatalf("trait missing: %v", job.Metadata)
	}
	if job.Program == "" {
		t.Fatal("job program must not be empty")
	}
}
