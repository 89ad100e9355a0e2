package circuit

// DeviceClass selects the class of backend a job targets.
type DeviceClass string

const (
	DeviceSimulator DeviceClass = "quantum_simulator"
	DeviceQPU       DeviceClass = "quantum_qpu"
)

// Job is the descriptor submitted to the execution backend. It is built once
// per operation invocation and discarded after submission.
type Job struct {
	Device   DeviceClass
	Program  string
	Shots    int
	Metadata map[string]any
}

// BuildJob assembles the job descriptor for a spec. Construction cannot fail;
// only submission can.
func BuildJob(spec Spec) *Job {
	tpl := templates[spec.Op]

	width := spec.Width
	if width < 1 {
		width = tpl.DefaultWidth
	}
	shots := spec.Shots
	if shots < 1 {
		shots = tpl.DefaultShots
	}

	return &Job{
		Device:  DeviceSimulator,
		Program: Render(spec),
		Shots:   shots,
		Metadata: map[string]any{
			"operation":   string(spec.Op),
			tpl.ParamName: width,
			tpl.TraitKey:  tpl.TraitValue,
		},
	}
}
