package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"dla/internal/core"
	"dla/internal/sims/dla"

	"github.com/integrii/flaggy"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Options collects everything a driver run needs. Values come from the
// defaults, then an optional YAML file, then command-line flags.
type Options struct {
	Sim       string `yaml:"sim"`
	Preset    string `yaml:"preset"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Particles int    `yaml:"particles"`
	Seed      int64  `yaml:"seed"`

	Bias         float64 `yaml:"bias"`
	Attempts     int     `yaml:"attempts"`
	Workers      int     `yaml:"workers"`
	Color        string  `yaml:"color"`
	RecolorStuck bool    `yaml:"recolor_stuck"`
	StuckColor   string  `yaml:"stuck_color"`

	// MaxSteps aborts a run that has not converged after that many sweeps.
	// Zero disables the cap.
	MaxSteps    int           `yaml:"max_steps"`
	SampleEvery int           `yaml:"sample_every"`
	Progress    time.Duration `yaml:"progress"`

	Out        string `yaml:"out"`
	Scale      int    `yaml:"scale"`
	Video      string `yaml:"video"`
	VideoEvery int    `yaml:"video_every"`
	FPS        int    `yaml:"fps"`
	Chart      string `yaml:"chart"`
	Report     string `yaml:"report"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Config string `yaml:"-"`
}

// DefaultOptions returns options matching dla.DefaultConfig with a
// reasonable step cap and no outputs.
func DefaultOptions() *Options {
	o := &Options{
		Sim:         dla.NameSweep,
		MaxSteps:    200000,
		SampleEvery: 10,
		Progress:    2 * time.Second,
		Scale:       1,
		VideoEvery:  25,
		FPS:         24,
		LogLevel:    "info",
		LogFormat:   "text",
	}
	o.applyConfig(dla.DefaultConfig())
	return o
}

func (o *Options) applyConfig(c dla.Config) {
	o.Width = c.Width
	o.Height = c.Height
	o.Particles = c.Particles
	o.Seed = c.Seed
	o.Bias = c.Params.DownBias
	o.Attempts = c.Params.MoveAttempts
	o.Workers = c.Params.Workers
	o.Color = dla.FormatColor(c.Params.ParticleColor)
	o.RecolorStuck = c.Params.RecolorStuck
	o.StuckColor = dla.FormatColor(c.Params.StuckColor)
}

// UsePreset replaces the simulation fields with a named preset.
func (o *Options) UsePreset(name string) error {
	switch name {
	case "", "default":
		o.applyConfig(dla.DefaultConfig())
	case "original":
		o.applyConfig(dla.OriginalConfig())
	default:
		return fmt.Errorf("unknown preset %q (want default or original)", name)
	}
	o.Preset = name
	return nil
}

// LoadFile merges a YAML run file into o. A preset named in the file is
// applied first so the remaining keys can refine it.
func (o *Options) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(b, &head); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if head.Preset != "" {
		if err := o.UsePreset(head.Preset); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := yaml.Unmarshal(b, o); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	o.Config = path
	return nil
}

// Bind registers every option as a flag on p.
func (o *Options) Bind(p *flaggy.Parser) {
	p.String(&o.Sim, "s", "sim", "Engine to run ["+strings.Join(core.Names(), "|")+"]")
	p.String(&o.Preset, "p", "preset", "Start from a preset [default|original]")
	p.Int(&o.Width, "w", "width", "Grid width in cells")
	p.Int(&o.Height, "H", "height", "Grid height in cells")
	p.Int(&o.Particles, "n", "particles", "Number of particles to seed")
	p.Int64(&o.Seed, "", "seed", "Random seed")
	p.Float64(&o.Bias, "", "bias", "Probability that a move goes down")
	p.Int(&o.Attempts, "", "attempts", "Move attempts before a particle stalls for the tick")
	p.Int(&o.Workers, "", "workers", "Planning bands of the buffered engine")
	p.String(&o.Color, "", "color", "Particle color as #rrggbb or #rrggbbaa")
	p.Bool(&o.RecolorStuck, "", "recolor-stuck", "Paint particles with the stuck color when they freeze")
	p.String(&o.StuckColor, "", "stuck-color", "Color used by --recolor-stuck")
	p.Int(&o.MaxSteps, "m", "max-steps", "Abort after this many steps (0 = no limit)")
	p.Int(&o.SampleEvery, "", "sample-every", "Record the growth curve every N steps")
	p.Duration(&o.Progress, "", "progress", "Interval between progress log lines (0 disables)")
	p.String(&o.Out, "o", "out", "Write the final aggregate as PNG")
	p.Int(&o.Scale, "", "scale", "Integer pixel scale for images and video")
	p.String(&o.Video, "", "video", "Write an MJPEG AVI timelapse")
	p.Int(&o.VideoEvery, "", "video-every", "Add a video frame every N steps")
	p.Int(&o.FPS, "", "fps", "Timelapse frame rate")
	p.String(&o.Chart, "", "chart", "Write the growth chart as PNG")
	p.String(&o.Report, "", "report", "Write the run report as YAML")
	p.String(&o.Config, "c", "config", "Read options from a YAML file")
	p.String(&o.LogLevel, "", "log-level", "Log level [debug|info|warn|error]")
	p.String(&o.LogFormat, "", "log-format", "Log format [text|json]")
}

// Load builds Options from args. The config file and preset are located
// before flag parsing so explicit flags always win. extra lets a command
// register flags of its own on the same parser.
func Load(name string, args []string, extra ...func(*flaggy.Parser)) (*Options, error) {
	o := DefaultOptions()
	if path := scanArg(args, "c", "config"); path != "" {
		if err := o.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if preset := scanArg(args, "p", "preset"); preset != "" {
		if err := o.UsePreset(preset); err != nil {
			return nil, err
		}
	}
	p := flaggy.NewParser(name)
	p.Description = "Lattice diffusion-limited aggregation"
	p.ShowHelpOnUnexpected = true
	o.Bind(p)
	for _, bind := range extra {
		bind(p)
	}
	if err := p.ParseArgs(args); err != nil {
		return nil, err
	}
	return o, nil
}

// scanArg finds the value of a flag in args without consuming them.
func scanArg(args []string, short, long string) string {
	for i, a := range args {
		if a == "--" {
			break
		}
		for _, name := range []string{"-" + short, "--" + long} {
			if a == name && i+1 < len(args) {
				return args[i+1]
			}
			if strings.HasPrefix(a, name+"=") {
				return strings.TrimPrefix(a, name+"=")
			}
		}
	}
	return ""
}

// SimConfig renders the simulation fields as the key/value map accepted
// by the registered factories.
func (o *Options) SimConfig() map[string]string {
	return map[string]string{
		"w":             strconv.Itoa(o.Width),
		"h":             strconv.Itoa(o.Height),
		"particles":     strconv.Itoa(o.Particles),
		"seed":          strconv.FormatInt(o.Seed, 10),
		"bias":          strconv.FormatFloat(o.Bias, 'g', -1, 64),
		"attempts":      strconv.Itoa(o.Attempts),
		"workers":       strconv.Itoa(o.Workers),
		"color":         o.Color,
		"recolor_stuck": strconv.FormatBool(o.RecolorStuck),
		"stuck_color":   o.StuckColor,
	}
}

// Validate reports the first invalid option.
func (o *Options) Validate() error {
	if _, ok := core.Sims()[o.Sim]; !ok {
		return fmt.Errorf("unknown sim %q (have %s)", o.Sim, strings.Join(core.Names(), ", "))
	}
	switch o.Preset {
	case "", "default", "original":
	default:
		return fmt.Errorf("unknown preset %q", o.Preset)
	}
	if _, err := dla.ParseColor(o.Color); err != nil {
		return fmt.Errorf("invalid color: %w", err)
	}
	if _, err := dla.ParseColor(o.StuckColor); err != nil {
		return fmt.Errorf("invalid stuck color: %w", err)
	}
	if err := dla.FromMap(o.SimConfig()).Validate(); err != nil {
		return err
	}
	if o.MaxSteps < 0 {
		return errors.New("max-steps must not be negative")
	}
	if o.SampleEvery < 1 {
		return errors.New("sample-every must be at least 1")
	}
	if o.Progress < 0 {
		return errors.New("progress interval must not be negative")
	}
	if o.Scale < 1 {
		return errors.New("scale must be at least 1")
	}
	if o.Video != "" && (o.VideoEvery < 1 || o.FPS < 1) {
		return errors.New("video-every and fps must be at least 1")
	}
	if _, err := logrus.ParseLevel(o.LogLevel); err != nil {
		return err
	}
	if o.LogFormat != "text" && o.LogFormat != "json" {
		return fmt.Errorf("unknown log format %q (want text or json)", o.LogFormat)
	}
	return nil
}
