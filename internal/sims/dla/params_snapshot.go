package dla

import (
	"strconv"

	"dla/internal/core"
)

// Parameters describes the run configuration for logging and reports.
func (b *base) Parameters() core.ParameterSnapshot {
	p := b.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", b.cfg.Width),
				intParam("h", "Height", b.cfg.Height),
				intParam("particles", "Particles", b.cfg.Particles),
				int64Param("seed", "Seed", b.cfg.Seed),
			},
		},
		{
			Name: "Walk",
			Params: []core.Parameter{
				floatParam("bias", "Downward bias", p.DownBias),
				intParam("attempts", "Move attempts", p.MoveAttempts),
				intParam("workers", "Planning bands", p.Workers),
			},
		},
		{
			Name: "Colors",
			Params: []core.Parameter{
				colorParam("color", "Particle color", FormatColor(p.ParticleColor)),
				boolParam("recolor_stuck", "Recolor on freeze", p.RecolorStuck),
				colorParam("stuck_color", "Stuck color", FormatColor(p.StuckColor)),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}

func colorParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeColor,
		Value: value,
	}
}
