package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/logrusorgru/aurora"
)

func field(au aurora.Aurora, name, format string, values ...interface{}) string {
	return fmt.Sprintf(au.Colorize(name, aurora.GreenFg).String()+": "+format, values...)
}

func status(au aurora.Aurora, r Report) string {
	switch {
	case r.Converged:
		return au.Colorize("converged", aurora.GreenFg).String()
	case r.Aborted:
		return au.Colorize("aborted", aurora.RedFg).String()
	default:
		return au.Colorize("interrupted", aurora.YellowFg).String()
	}
}

// PrintSummary writes a short human readable summary of r. Colors are
// emitted only when color is true.
func PrintSummary(w io.Writer, r Report, color bool) {
	au := aurora.NewAurora(color)
	fmt.Fprintf(w, "%s %s (%s)\n", au.Bold(r.Sim), status(au, r), r.ID)
	fmt.Fprintln(w, field(au, "grid", "%dx%d, %d particles, seed %d", r.Width, r.Height, r.Particles, r.Seed))
	fmt.Fprintln(w, field(au, "steps", "%d in %v", r.Steps, r.Duration.Round(time.Millisecond)))
	fmt.Fprintln(w, field(au, "stuck", "%d", r.Stuck))
	fmt.Fprintln(w, field(au, "occupied", "%d", r.Occupied))
}

// PrintStats writes the per-seed table of a batch followed by its totals.
func PrintStats(w io.Writer, reports []Report, color bool) {
	au := aurora.NewAurora(color)
	for _, r := range reports {
		fmt.Fprintf(w, "seed %-8d %-11s steps=%-7d stuck=%-7d occupied=%-7d %v\n",
			r.Seed, status(au, r), r.Steps, r.Stuck, r.Occupied, r.Duration.Round(time.Millisecond))
	}
	s := Aggregate(reports)
	fmt.Fprintln(w, field(au, "runs", "%d (%d converged, %d aborted)", s.Runs, s.Converged, s.Aborted))
	fmt.Fprintln(w, field(au, "steps", "min %d, max %d, mean %.1f", s.MinSteps, s.MaxSteps, s.MeanSteps))
	fmt.Fprintln(w, field(au, "stuck", "mean %.1f", s.MeanStuck))
	fmt.Fprintln(w, field(au, "time", "%v total", s.Elapsed.Round(time.Millisecond)))
}

// InfoLines describes r in a few short lines for the preview panel.
func InfoLines(r Report) []string {
	state := "interrupted"
	switch {
	case r.Converged:
		state = "converged"
	case r.Aborted:
		state = "aborted"
	}
	return []string{
		fmt.Sprintf("%s %s after %d steps", r.Sim, state, r.Steps),
		fmt.Sprintf("%dx%d seed %d", r.Width, r.Height, r.Seed),
		fmt.Sprintf("stuck %d / occupied %d", r.Stuck, r.Occupied),
		"[1] aggregate  [I] info  [Q] quit",
	}
}

// IsTerminal reports whether f is a character device, used to decide on
// colored output.
func IsTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
