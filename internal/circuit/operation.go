package circuit

// Operation identifies one of the five fixed chess analysis operations.
type Operation string

const (
	OpStrategy            Operation = "Chess Strategy"
	OpMoveEvaluation      Operation = "Move Evaluation"
	OpPositionAnalysis    Operation = "Position Analysis"
	OpEndgameOptimization Operation = "Endgame Optimization"
	OpOpeningTheory       Operation = "Opening Theory"
)

// Catalogue returns the five operations in declaration order. The order is
// stable on purpose: the suite runner iterates it sequentially and the
// aggregate report keys off it.
func Catalogue() []Operation {
	return []Operation{
		OpStrategy,
		OpMoveEvaluation,
		OpPositionAnalysis,
		OpEndgameOptimization,
		OpOpeningTheory,
	}
}

// GateKind enumerates the gate vocabulary used by operation templates.
type GateKind string

const (
	GateH  GateKind = "h"
	GateCX GateKind = "cx"
	GateRY GateKind = "ry"
)

// Gate is one declarative step in an operation template. Control is only
// meaningful for CX; Angle (in units of pi, e.g. "pi/4") only for RY.
type Gate struct {
	Kind    GateKind
	Qubit   int
	Control int
	Angle   string
}

// Template carries the fixed circuit shape and defaults for one operation.
type Template struct {
	DefaultWidth int
	DefaultShots int
	// ParamName is the operation-specific knob name recorded in job metadata.
	ParamName string
	// Trait is the operation-specific flavor tag recorded in job metadata.
	TraitKey   string
	TraitValue string
	Gates      []Gate
}

// templates is the static lookup table for the five operations.
var templates = map[Operation]Template{
	OpStrategy: {
		DefaultWidth: 4,
		DefaultShots: 100,
		ParamName:    "strategy_depth",
		TraitKey:     "strategy",
		TraitValue:   "quantum_optimized",
		Gates: []Gate{
			{Kind: GateH, Qubit: 0}, {Kind: GateH, Qubit: 1}, {Kind: GateH, Qubit: 2}, {Kind: GateH, Qubit: 3},
			{Kind: GateCX, Control: 0, Qubit: 1}, {Kind: GateCX, Control: 1, Qubit: 2},
			{Kind: GateCX, Control: 2, Qubit: 3}, {Kind: GateCX, Control: 0, Qubit: 2},
			{Kind: GateRY, Qubit: 0, Angle: "pi/4"}, {Kind: GateRY, Qubit: 1, Angle: "pi/4"},
			{Kind: GateRY, Qubit: 2, Angle: "pi/8"}, {Kind: GateRY, Qubit: 3, Angle: "pi/8"},
			{Kind: GateH, Qubit: 0}, {Kind: GateH, Qubit: 1},
		},
	},
	OpMoveEvaluation: {
		DefaultWidth: 3,
		DefaultShots: 100,
		ParamName:    "move_complexity",
		TraitKey:     "evaluation",
		TraitValue:   "quantum_precise",
		Gates: []Gate{
			{Kind: GateH, Qubit: 0}, {Kind: GateH, Qubit: 1}, {Kind: GateH, Qubit: 2},
			{Kind: GateCX, Control: 0, Qubit: 1}, {Kind: GateCX, Control: 1, Qubit: 2},
			{Kind: GateCX, Control: 0, Qubit: 2},
			{Kind: GateRY, Qubit: 0, Angle: "pi/3"}, {Kind: GateRY, Qubit: 1, Angle: "pi/6"},
			{Kind: GateRY, Qubit: 2, Angle: "pi/3"},
			{Kind: GateH, Qubit: 0}, {Kind: GateH, Qubit: 2},
		},
	},
	OpPositionAnalysis: {
		DefaultWidth: 4,
		DefaultShots: 100,
		ParamName:    "position_factors",
		TraitKey:     "analysis",
		TraitValue:   "quantum_strategic",
		Gates: []Gate{
			{Kind: GateH, Qubit: 0}, {Kind: GateH, Qubit: 1}, {Kind: GateH, Qubit: 2}, {Kind: GateH, Qubit: 3},
			{Kind: GateCX, Control: 0, Qubit: 1}, {Kind: GateCX, Control: 1, Qubit: 2},
			{Kind: GateCX, Control: 2, Qubit: 3}, {Kind: GateCX, Control: 0, Qubit: 3},
			{Kind: GateRY, Qubit: 0, Angle: "pi/4"}, {Kind: GateRY, Qubit: 1, Angle: "pi/8"},
			{Kind: GateRY, Qubit: 2, Angle: "pi/4"}, {Kind: GateRY, Qubit: 3, Angle: "pi/8"},
			{Kind: GateH, Qubit: 0}, {Kind: GateH, Qubit: 1},
		},
	},
	OpEndgameOptimization: {
		DefaultWidth: 3,
		DefaultShots: 100,
		ParamName:    "endgame_complexity",
		TraitKey:     "optimization",
		TraitValue:   "quantum_perfect",
		Gates: []Gate{
			{Kind: GateH, Qubit: 0}, {Kind: GateH, Qubit: 1}, {Kind: GateH, Qubit: 2},
			{Kind: GateCX, Control: 0, Qubit: 1}, {Kind: GateCX, Control: 1, Qubit: 2},
			{Kind: GateCX, Control: 0, Qubit: 2},
			{Kind: GateRY, Qubit: 0, Angle: "pi/3"}, {Kind: GateRY, Qubit: 1, Angle: "pi/6"},
			{Kind: GateRY, Qubit: 2, Angle: "pi/3"},
			{Kind: GateH, Qubit: 0}, {Kind: GateH, Qubit: 1}, {Kind: GateH, Qubit: 2},
		},
	},
	OpOpeningTheory: {
		DefaultWidth: 4,
		DefaultShots: 100,
		ParamName:    "opening_variations",
		TraitKey:     "theory",
		TraitValue:   "quantum_innovative",
		Gates: []Gate{
			{Kind: GateH, Qubit: 0}, {Kind: GateH, Qubit: 1}, {Kind: GateH, Qubit: 2}, {Kind: GateH, Qubit: 3},
			{Kind: GateCX, Control: 0, Qubit: 1}, {Kind: GateCX, Control: 1, Qubit: 2},
			{Kind: GateCX, Control: 2, Qubit: 3}, {Kind: GateCX, Control: 0, Qubit: 2},
			{Kind: GateCX, Control: 1, Qubit: 3},
			{Kind: GateRY, Qubit: 0, Angle: "pi/4"}, {Kind: GateRY, Qubit: 1, Angle: "pi/4"},
			{Kind: GateRY, Qubit: 2, Angle: "pi/8"}, {Kind: GateRY, Qubit: 3, Angle: "pi/8"},
			{Kind: GateH, Qubit: 0}, {Kind: GateH, Qubit: 1},
		},
	},
}

// TemplateFor returns the static template for an operation.
// The second return value is false for unknown operations.
func TemplateFor(op Operation) (Template, bool) {
	tpl, ok := templates[op]
	return tpl, ok
}

// Spec describes one concrete invocation of an operation.
type Spec struct {
	Op    Operation
	Width int
	Shots int
}

// DefaultSpec returns the spec an operation runs with when the caller does
// not override width or shots.
func DefaultSpec(op Operation) Spec {
	tpl := templates[op]
	return Spec{Op: op, Width: tpl.DefaultWidth, Shots: tpl.DefaultShots}
}

// NewSpec builds a spec with explicit width and shots. Values are taken as
// given; non-positive overrides fall back to the template defaults.
func NewSpec(op Operation, width, shots int) Spec {
	spec := DefaultSpec(op)
	if width > 0 {
		spec.Width = width
	}
	if shots > 0 {
		spec.Shots = shots
	}
	return spec
}
