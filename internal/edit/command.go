package edit

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/sstent/trackedit/internal/track"
)

// ErrUnknownCommand is returned by Exec for a verb it does not handle, so
// the caller can layer its own verbs on top.
var ErrUnknownCommand = errors.New("unknown command")

type command struct {
	usage string
	help  string
	run   func(e *Editor, args []string) error
}

var commands map[string]command

func init() {
	filter := func(f track.Filter) func(*Editor, []string) error {
		return func(e *Editor, args []string) error { return e.execSmooth(f, args) }
	}
	clamp := func(isMax bool) func(*Editor, []string) error {
		return func(e *Editor, args []string) error { return e.execClamp(isMax, args) }
	}

	commands = map[string]command{
		"cma":     {"cma <metric> <window> [<from> <to>]", "centered moving average", filter(track.FilterCMA)},
		"sma":     {"sma <metric> <window> [<from> <to>]", "trailing moving average", filter(track.FilterSMA)},
		"sgf":     {"sgf <metric> <window> [<from> <to>]", "Savitzky-Golay filter", filter(track.FilterSGF)},
		"max":     {"max <metric> <value> [<from> <to>]", "clamp to an upper bound", clamp(true)},
		"min":     {"min <metric> <value> [<from> <to>]", "clamp to a lower bound", clamp(false)},
		"scale":   {"scale <metric> <factor> [<from> <to>]", "multiply by a factor", (*Editor).execScale},
		"trim":    {"trim <from> <to>", "remove points and close the gap", (*Editor).execTrim},
		"undo":    {"undo", "revert the last change", (*Editor).execUndo},
		"show":    {"show [<from> <to>]", "print points", (*Editor).execShow},
		"summary": {"summary", "print the activity summary", (*Editor).execSummary},
		"help":    {"help", "list the commands", (*Editor).execHelp},
	}
}

// Exec runs one command line, already split into words.
func (e *Editor) Exec(args []string) error {
	if len(args) == 0 {
		return nil
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return cmd.run(e, args[1:])
}

func usageError(verb string) error {
	return invalidArg(verb, "usage: %s", commands[verb].usage)
}

// metricArgs parses the "<metric> <value> [<from> <to>]" shape shared by
// most verbs.
func (e *Editor) metricArgs(verb string, args []string, mutable bool) (track.Metric, string, Range, error) {
	if len(args) != 2 && len(args) != 4 {
		return track.MetricInvalid, "", Range{}, usageError(verb)
	}
	m, err := parseMetric(args[0], mutable)
	if err != nil {
		return track.MetricInvalid, "", Range{}, err
	}
	r, err := e.ResolveRange(args[2:])
	if err != nil {
		return track.MetricInvalid, "", Range{}, err
	}
	return m, args[1], r, nil
}

func (e *Editor) execSmooth(f track.Filter, args []string) error {
	m, tok, r, err := e.metricArgs(f.String(), args, true)
	if err != nil {
		return err
	}
	window, err := parseWindow(tok)
	if err != nil {
		return err
	}
	if err := e.Smooth(f, m, window, r); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Applied %s(%d) to %s of points %d-%d\n", f, window, m, r.From, r.To)
	return nil
}

func (e *Editor) execClamp(isMax bool, args []string) error {
	verb := "min"
	if isMax {
		verb = "max"
	}
	m, tok, r, err := e.metricArgs(verb, args, false)
	if err != nil {
		return err
	}
	bound, err := parseFloat(tok)
	if err != nil {
		return err
	}

	if m == track.MetricGradeChange {
		pts := e.GradeChanges(bound, isMax, r)
		for i := range pts {
			fmt.Fprintln(e.out, pts[i].String())
		}
		dir := "below"
		if isMax {
			dir = "above"
		}
		fmt.Fprintf(e.out, "%d points with a grade change %s %.2f\n", len(pts), dir, bound)
		return nil
	}

	n, err := e.Clamp(m, bound, isMax, r)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Clamped %s of %d points to %s %.2f\n", m, n, verb, bound)
	return nil
}

func (e *Editor) execScale(args []string) error {
	m, tok, r, err := e.metricArgs("scale", args, true)
	if err != nil {
		return err
	}
	factor, err := parseFloat(tok)
	if err != nil {
		return err
	}
	if err := e.Scale(m, factor, r); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Scaled %s of points %d-%d by %g\n", m, r.From, r.To, factor)
	return nil
}

func (e *Editor) execTrim(args []string) error {
	if len(args) != 2 {
		return usageError("trim")
	}
	r, err := e.ResolveRange(args)
	if err != nil {
		return err
	}
	if err := e.Trim(r); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Trimmed %d points, %d left\n", r.Len(), e.trk.Len())
	return nil
}

func (e *Editor) execUndo(args []string) error {
	if len(args) != 0 {
		return usageError("undo")
	}
	if err := e.Undo(); err != nil {
		return err
	}
	fmt.Fprintln(e.out, "Reverted the last change")
	return nil
}

func (e *Editor) execShow(args []string) error {
	if len(args) != 0 && len(args) != 2 {
		return usageError("show")
	}
	r, err := e.ResolveRange(args)
	if err != nil {
		return err
	}
	for i := r.From; i <= r.To; i++ {
		fmt.Fprintln(e.out, e.trk.At(i).String())
	}
	return nil
}

func (e *Editor) execSummary(args []string) error {
	if len(args) != 0 {
		return usageError("summary")
	}
	s := e.trk.Summary()
	w := tabwriter.NewWriter(e.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Activity:\t%s\n", s.ActivityType)
	fmt.Fprintf(w, "Start:\t%s\n", s.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Points:\t%d\n", s.NumPoints)
	fmt.Fprintf(w, "Duration:\t%s (moving %s)\n", s.Duration, s.MovingTime)
	fmt.Fprintf(w, "Distance:\t%.1f m\n", s.Distance)
	fmt.Fprintf(w, "Speed:\tavg %.2f km/h, max %.2f km/h\n", s.AvgSpeed*3.6, s.MaxSpeed*3.6)
	fmt.Fprintf(w, "Elevation:\tmin %.1f m, max %.1f m\n", s.MinElevation, s.MaxElevation)
	fmt.Fprintf(w, "Climbing:\t+%.1f m / -%.1f m\n", s.ElevationGain, s.ElevationLoss)
	fmt.Fprintf(w, "Grade:\tavg %.2f%%, min %.2f%%, max %.2f%%\n", s.AvgGrade, s.MinGrade, s.MaxGrade)
	if s.MaxHeartRate > 0 {
		fmt.Fprintf(w, "Heart rate:\tavg %d bpm, max %d bpm\n", s.AvgHeartRate, s.MaxHeartRate)
	}
	if s.MaxCadence > 0 {
		fmt.Fprintf(w, "Cadence:\tavg %d rpm, max %d rpm\n", s.AvgCadence, s.MaxCadence)
	}
	if s.MaxPower > 0 {
		fmt.Fprintf(w, "Power:\tavg %d W, max %d W\n", s.AvgPower, s.MaxPower)
	}
	c := e.trk.Counters
	fmt.Fprintf(w, "Dropped:\t%d duplicate, %d discarded, %d trimmed\n", c.NumDupPoints, c.NumDiscPoints, c.NumTrimPoints)
	fmt.Fprintf(w, "Adjusted elevations:\t%d\n", c.NumElevAdj)
	return w.Flush()
}

func (e *Editor) execHelp([]string) error {
	verbs := make([]string, 0, len(commands))
	for v := range commands {
		verbs = append(verbs, v)
	}
	sort.Strings(verbs)

	w := tabwriter.NewWriter(e.out, 0, 0, 2, ' ', 0)
	for _, v := range verbs {
		fmt.Fprintf(w, "%s\t%s\n", commands[v].usage, commands[v].help)
	}
	fmt.Fprintln(w, "\t")
	fmt.Fprintf(w, "<metric>\t%s\n", strings.Join([]string{"elevation", "grade", "speed", "gradeChange"}, " | "))
	fmt.Fprintf(w, "<from> <to>\tstart | end | <index> | HH:MM:SS\n")
	return w.Flush()
}
