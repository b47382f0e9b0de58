// Package report renders batch summaries as terminal tables and JSON files.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lox/briscola/internal/fileutil"
	"github.com/lox/briscola/internal/game"
	"github.com/lox/briscola/internal/statistics"
	"github.com/muesli/termenv"
)

// Meta carries the batch settings worth echoing next to the results
type Meta struct {
	Seed      int64 `json:"seed"`
	Duplicate bool  `json:"duplicate"`
	Workers   int   `json:"workers"`
}

// Contender is the per-strategy part of a report
type Contender struct {
	Name        string     `json:"name"`
	Wins        int        `json:"wins"`
	WinRate     float64    `json:"win_rate"`
	MeanScore   float64    `json:"mean_score"`
	MedianScore float64    `json:"median_score"`
	StdDev      float64    `json:"std_dev"`
	CI95        [2]float64 `json:"ci95"`
	SeatWinRate [2]float64 `json:"seat_win_rate"`
}

// Report is the serialisable outcome of a batch
type Report struct {
	Meta
	Games      int                  `json:"games"`
	Draws      int                  `json:"draws"`
	DrawRate   float64              `json:"draw_rate"`
	Contenders [2]Contender         `json:"contenders"`
	Failures   []statistics.Failure `json:"failures,omitempty"`
	ElapsedMS  int64                `json:"elapsed_ms"`
}

// New builds a report from a summary
func New(s *statistics.Summary, meta Meta) *Report {
	r := &Report{
		Meta:      meta,
		Games:     s.Games,
		Draws:     s.Draws,
		DrawRate:  s.DrawRate(),
		Failures:  s.Failures,
		ElapsedMS: s.Elapsed.Milliseconds(),
	}
	for i := range s.Contenders {
		c := &s.Contenders[i]
		lo, hi := c.ConfidenceInterval95()
		r.Contenders[i] = Contender{
			Name:        s.Names[i],
			Wins:        c.Wins,
			WinRate:     c.WinRate(),
			MeanScore:   c.Mean(),
			MedianScore: c.Median(),
			StdDev:      c.StdDev(),
			CI95:        [2]float64{lo, hi},
			SeatWinRate: [2]float64{c.SeatWinRate(game.Seat0), c.SeatWinRate(game.Seat1)},
		}
	}
	return r
}

// WriteJSON writes the report to path atomically
func (r *Report) WriteJSON(path string) error {
	return fileutil.WriteJSONAtomic(path, r)
}

// TextOptions controls terminal rendering
type TextOptions struct {
	NoColor bool
}

// WriteText renders the report as a styled table followed by totals
func (r *Report) WriteText(w io.Writer, opts TextOptions) error {
	renderer := lipgloss.NewRenderer(w)
	if opts.NoColor {
		renderer.SetColorProfile(termenv.Ascii)
	}
	st := newStyles(renderer)

	var b strings.Builder
	a, c := r.Contenders[0], r.Contenders[1]
	b.WriteString(st.title.Render(fmt.Sprintf("%s vs %s", a.Name, c.Name)))
	b.WriteString("\n")
	mode := "alternating seats"
	if r.Duplicate {
		mode = "duplicate deals"
	}
	b.WriteString(st.muted.Render(fmt.Sprintf("%d games, seed %d, %s", r.Games, r.Seed, mode)))
	b.WriteString("\n\n")

	leader := -1
	switch {
	case a.Wins > c.Wins:
		leader = 0
	case c.Wins > a.Wins:
		leader = 1
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.border).
		Headers("Strategy", "Wins", "Win %", "Avg score", "Median", "Std dev", "95% CI", "Seat 0 win %", "Seat 1 win %").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return st.header
			case row == leader && col <= 2:
				return st.winner
			default:
				return st.cell
			}
		})
	for _, ct := range r.Contenders {
		t.Row(
			ct.Name,
			fmt.Sprintf("%d", ct.Wins),
			fmt.Sprintf("%.1f%%", ct.WinRate*100),
			fmt.Sprintf("%.2f", ct.MeanScore),
			fmt.Sprintf("%.1f", ct.MedianScore),
			fmt.Sprintf("%.2f", ct.StdDev),
			fmt.Sprintf("[%.2f, %.2f]", ct.CI95[0], ct.CI95[1]),
			fmt.Sprintf("%.1f%%", ct.SeatWinRate[0]*100),
			fmt.Sprintf("%.1f%%", ct.SeatWinRate[1]*100),
		)
	}
	b.WriteString(t.Render())
	b.WriteString("\n")

	fmt.Fprintf(&b, "Draws: %d (%.1f%%)\n", r.Draws, r.DrawRate*100)
	if n := len(r.Failures); n > 0 {
		b.WriteString(st.failure.Render(fmt.Sprintf("Failures: %d", n)))
		b.WriteString("\n")
		for _, f := range r.Failures {
			fmt.Fprintf(&b, "  game %d (seed %d): %s\n", f.Game, f.Seed, f.Error)
		}
	}
	fmt.Fprintf(&b, "Elapsed: %dms\n", r.ElapsedMS)

	_, err := io.WriteString(w, b.String())
	return err
}

type styles struct {
	title   lipgloss.Style
	muted   lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	winner  lipgloss.Style
	failure lipgloss.Style
	border  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Padding(0, 1),
		cell:    r.NewStyle().Padding(0, 1),
		winner:  r.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("10")),
		failure: r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		border:  r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
