// Package printers renders teardown traces for the terminal.
package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"

	"tableflip.dev/subviews/pkg/trace"
)

// AutoColor disables color output when f is not a terminal.
func AutoColor(f *os.File) {
	fd := f.Fd()
	color.NoColor = !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

var phaseColors = map[trace.Phase]*color.Color{
	trace.PhaseBefore:  color.New(color.Faint),
	trace.PhaseDestroy: color.New(color.FgCyan),
	trace.PhaseDetach:  color.New(color.FgMagenta),
	trace.PhaseRelease: color.New(color.FgGreen),
}

func phaseColor(p trace.Phase) *color.Color {
	if c, ok := phaseColors[p]; ok {
		return c
	}
	return color.New()
}

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

// Writer returns the destination of every print.
func (pp *PrettyPrint) Writer() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.Writer())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.Writer(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.Writer(), title)
	_, _ = c.Fprintf(pp.Writer(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.Writer(), " trace")
	default:
		_, _ = c.Fprintln(pp.Writer(), " traces")
	}
}

// Sequence prints one phase as an arrow chain.
func (pp *PrettyPrint) Sequence(phase trace.Phase, names []string) {
	label := color.New(color.Bold).Sprintf("%-8s", phase)
	if len(names) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = fmt.Fprintf(pp.Writer(), "%s %s\n", label, f.Sprint("none"))
		return
	}
	c := phaseColor(phase)
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = c.Sprint(n)
	}
	_, _ = fmt.Fprintf(pp.Writer(), "%s %s\n", label, strings.Join(parts, " → "))
}

// Trace prints the header and the hook sequences of a teardown.
func (pp *PrettyPrint) Trace(t *trace.Trace) {
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	title := t.Root
	if t.Target != "" {
		title = t.Root + " › " + t.Target
	}
	pp.Title(title)
	if pp.ShowID {
		_, _ = y.Fprintf(pp.Writer(), "%s  %s\n", t.ID, t.Created.Local().Format("2006-01-02 15:04:05"))
	}
	for _, phase := range trace.Phases {
		if phase == trace.PhaseBefore && t.Count(phase) == 0 {
			continue
		}
		if phase == trace.PhaseDetach && !t.DetachFromHost {
			continue
		}
		if phase == trace.PhaseRelease && t.DetachFromHost {
			continue
		}
		pp.Sequence(phase, t.Sequence(phase))
	}
	pp.NewLine()
}

// Events prints every recorded hook in call order.
func (pp *PrettyPrint) Events(t *trace.Trace) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("  #"), bold.Sprint("Phase"), bold.Sprint("Component"))
	for _, e := range t.Events {
		tbl.AddRow(e.Seq, phaseColor(e.Phase).Sprint(e.Phase), e.Component)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.Writer(), tbl)
}

// Traces prints a table of stored traces.
func (pp *PrettyPrint) Traces(traces []*trace.Trace) {
	pp.TitleWithCount("Traces", len(traces))
	if len(traces) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.Writer(), " none\n\n")
		return
	}

	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Created"), bold.Sprint("Root"),
		bold.Sprint("Target"), bold.Sprint("Mode"), bold.Sprint("Destroyed"))
	for _, t := range traces {
		mode := "detach"
		if !t.DetachFromHost {
			mode = "keep"
		}
		target := t.Target
		if target == "" {
			target = "*"
		}
		tbl.AddRow(y.Sprint(t.ID), t.Created.Local().Format("2006-01-02 15:04:05"),
			t.Root, target, mode, t.Count(trace.PhaseDestroy))
	}
	_, _ = fmt.Fprintln(pp.Writer(), tbl)
	pp.NewLine()
}

// JSON writes v as indented JSON.
func (pp *PrettyPrint) JSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(pp.Writer(), string(b))
	return err
}
