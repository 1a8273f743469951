// Package render writes the player-facing progress report.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cbosoft/greygoo/internal/game"
	"github.com/cbosoft/greygoo/internal/modifier"
	"github.com/cbosoft/greygoo/internal/trial"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	goodStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	badStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// PlotWidth is the number of samples in the trial trajectory sparkline.
const PlotWidth = 48

type Printer struct {
	w     io.Writer
	color bool
	num   *message.Printer
}

func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color, num: message.NewPrinter(language.English)}
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p *Printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) Heading(text string) { p.line("%s", p.style(headingStyle, text)) }

func (p *Printer) Info(format string, args ...any) { p.line(format, args...) }

func (p *Printer) Warn(format string, args ...any) {
	p.line("%s", p.style(warnStyle, fmt.Sprintf(format, args...)))
}

func (p *Printer) Potential(defs []modifier.Definition) {
	if len(defs) == 0 {
		p.line("No potential modifiers.")
		return
	}
	p.Heading("Potential modifiers:")
	for _, d := range defs {
		cost := Duration(d.TimeCost)
		if d.MassCost > 0 {
			cost += ", " + Mass(d.MassCost)
		}
		p.line(" - %s: %s %s", p.style(nameStyle, d.ID), d.Description, p.style(dimStyle, "("+cost+")"))
	}
}

func (p *Printer) Research(entries []game.Research, now int64, loud bool) {
	if len(entries) == 0 {
		if loud {
			p.line("No research in progress.")
		}
		return
	}
	p.Heading("Research in progress:")
	for _, r := range entries {
		p.line(" - %s (%s to go)", p.style(nameStyle, r.ID), Duration(r.CompleteAt-now))
	}
}

func (p *Printer) Completed(ids []string) {
	for _, id := range ids {
		p.line("Research complete: %s", p.style(goodStyle, id))
	}
}

func (p *Printer) Fired(events []game.FiredEvent) {
	for _, ev := range events {
		p.line("Event: %s", p.style(warnStyle, ev.Label))
	}
}

func (p *Printer) Accumulators(w *game.World) {
	p.line("Population unease: %s   Scientific inspiration: %s",
		p.num.Sprintf("%.1f%%", w.PopulationUnease()),
		p.num.Sprintf("%.2f", w.ScientificInspiration()))
}

// Trial reports the running trial. Ongoing trials are only described when loud.
func (p *Printer) Trial(w *game.World, now int64, loud bool) {
	t := w.Trial()
	st, ok := w.TrialStatus()
	if !ok {
		p.line("No trial in progress.")
		return
	}

	switch st.Phase {
	case trial.Failure:
		p.line("%s", p.style(badStyle, "Trial failed!"))
		return
	case trial.Success:
		p.line("%s", p.style(goodStyle, "Trial success! You win!"))
		return
	}
	if !loud {
		return
	}

	cat := w.Catalog()
	stats := w.Stats()
	indicator := "📉"
	if stats.Rising() {
		indicator = "📈"
	}
	pc := 100 * st.Mass / cat.WorldMass

	p.line("  %s", p.style(dimStyle, Sparkline(Trajectory(t, stats, cat.Tau, PlotWidth))))
	p.line("Trial running: %s %s of bots currently active (~%s domination). %s elapsed",
		indicator, Mass(st.Mass), p.num.Sprintf("%.1f%%", pc), Duration(now-t.StartTS))

	if eta, ok := t.TimeToReach(cat.WorldMass, stats, cat.Tau); ok {
		p.line("At current rates the world is consumed in %s.", Duration(eta))
	}
}

// Trajectory samples the trial's mass from its start to its last update
// using the current stats, scaled so the last sample is the trial's actual
// mass. Modifiers gained mid-trial only bend the shape, not the endpoint.
func Trajectory(t *trial.Trial, stats trial.Stats, tau float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	span := t.Elapsed()
	origin := &trial.Trial{BotMass: stats.InitialMass, StartTS: t.StartTS, LastUpdateTS: t.StartTS}
	out := make([]float64, n)
	for i := range out {
		ts := t.StartTS + span*int64(i)/int64(n-1)
		out[i] = origin.MassAt(ts, stats, tau)
	}

	last := out[n-1]
	if last > 0 && !math.IsInf(last, 0) {
		k := t.BotMass / last
		for i := range out {
			out[i] *= k
		}
	}
	out[n-1] = t.BotMass
	return out
}

func (p *Printer) Stopped(rep game.StopReport) {
	p.line("Trial cancelled. %s of bots were silenced. %s of research time, wasted.",
		Mass(rep.Mass), Duration(rep.Elapsed))
}

// Suggestion renders a "did you mean" hint, or nothing.
func Suggestion(name string, ok bool) string {
	if !ok {
		return ""
	}
	return fmt.Sprintf(" Did you mean %q?", name)
}

// Join lists ids for a message.
func Join(ids []string) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = fmt.Sprintf("%q", id)
	}
	return strings.Join(quoted, ", ")
}
