package core

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeBool denotes boolean parameters.
	ParamTypeBool ParamType = "bool"
	// ParamTypeColor denotes RGBA colors written as #rrggbbaa.
	ParamTypeColor ParamType = "color"
)

// Parameter describes a single tunable value exposed by a simulation.
type Parameter struct {
	Key         string    `yaml:"key"`
	Label       string    `yaml:"label"`
	Type        ParamType `yaml:"type"`
	Value       string    `yaml:"value"`
	Description string    `yaml:"description,omitempty"`
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name    string      `yaml:"name"`
	Params  []Parameter `yaml:"params"`
	Summary string      `yaml:"summary,omitempty"`
}

// ParameterSnapshot captures the current set of tunables exposed by a sim.
type ParameterSnapshot struct {
	Groups []ParameterGroup `yaml:"groups"`
}

// ParameterProvider is implemented by sims that can describe their tunables.
type ParameterProvider interface {
	Parameters() ParameterSnapshot
}

// Flatten returns the snapshot as key/value pairs, suitable for structured
// log fields or for feeding back into a Factory.
func (s ParameterSnapshot) Flatten() map[string]string {
	out := make(map[string]string)
	for _, g := range s.Groups {
		for _, p := range g.Params {
			out[p.Key] = p.Value
		}
	}
	return out
}
