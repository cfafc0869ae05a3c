package app

import (
	"fmt"
	"os"
	"time"

	"dla/internal/render"

	"gopkg.in/yaml.v3"
)

// Report summarizes one finished (or aborted) run.
type Report struct {
	ID        string `yaml:"id"`
	Sim       string `yaml:"sim"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Particles int    `yaml:"particles"`
	Seed      int64  `yaml:"seed"`

	Steps     int  `yaml:"steps"`
	Converged bool `yaml:"converged"`
	Aborted   bool `yaml:"aborted"`
	Stuck     int  `yaml:"stuck"`
	Occupied  int  `yaml:"occupied"`

	Duration   time.Duration     `yaml:"duration"`
	Parameters map[string]string `yaml:"parameters,omitempty"`
	Samples    []render.Sample   `yaml:"samples,omitempty"`
}

// WriteReport saves the report as YAML.
func (r Report) WriteReport(path string) error {
	b, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return os.WriteFile(path, b, 0o644)
}

// WriteReports saves a batch of reports as one YAML list.
func WriteReports(path string, reports []Report) error {
	b, err := yaml.Marshal(reports)
	if err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}
	return os.WriteFile(path, b, 0o644)
}

// ReadReport loads a report written by WriteReport.
func ReadReport(path string) (Report, error) {
	var r Report
	b, err := os.ReadFile(path)
	if err != nil {
		return r, err
	}
	if err := yaml.Unmarshal(b, &r); err != nil {
		return r, fmt.Errorf("parse report %s: %w", path, err)
	}
	return r, nil
}

// Stats aggregates a batch of reports.
type Stats struct {
	Runs      int
	Converged int
	Aborted   int
	MinSteps  int
	MaxSteps  int
	MeanSteps float64
	MeanStuck float64
	Elapsed   time.Duration
}

// Aggregate computes batch statistics. Elapsed is the sum of run durations.
func Aggregate(reports []Report) Stats {
	var s Stats
	if len(reports) == 0 {
		return s
	}
	s.Runs = len(reports)
	s.MinSteps = reports[0].Steps
	var steps, stuck int
	for _, r := range reports {
		if r.Converged {
			s.Converged++
		}
		if r.Aborted {
			s.Aborted++
		}
		if r.Steps < s.MinSteps {
			s.MinSteps = r.Steps
		}
		if r.Steps > s.MaxSteps {
			s.MaxSteps = r.Steps
		}
		steps += r.Steps
		stuck += r.Stuck
		s.Elapsed += r.Duration
	}
	s.MeanSteps = float64(steps) / float64(s.Runs)
	s.MeanStuck = float64(stuck) / float64(s.Runs)
	return s
}
