package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/locale"
)

// Cell glyphs used by the terminal grid.
const (
	GlyphLived     = "■"
	GlyphCurrent   = "◉"
	GlyphRemaining = "□"
)

var (
	colorTitle     = lipgloss.Color("#ffffff")
	colorMuted     = lipgloss.Color("#9ca3af")
	colorLived     = lipgloss.Color("#6b7280")
	colorRemaining = lipgloss.Color("#4b5563")
	colorCurrent   = lipgloss.Color("#ef4444")
	colorBonus     = lipgloss.Color("#fbbf24")
)

type termStyles struct {
	title     lipgloss.Style
	muted     lipgloss.Style
	alert     lipgloss.Style
	badge     lipgloss.Style
	lived     lipgloss.Style
	current   lipgloss.Style
	remaining lipgloss.Style
	bonus     lipgloss.Style
}

func newTermStyles(r *lipgloss.Renderer, color bool) termStyles {
	if !color {
		plain := r.NewStyle()
		return termStyles{plain, plain, plain, plain, plain, plain, plain, plain}
	}
	return termStyles{
		title:     r.NewStyle().Foreground(colorTitle).Bold(true),
		muted:     r.NewStyle().Foreground(colorMuted),
		alert:     r.NewStyle().Foreground(colorCurrent),
		badge:     r.NewStyle().Foreground(colorBonus).Bold(true),
		lived:     r.NewStyle().Foreground(colorLived),
		current:   r.NewStyle().Foreground(colorCurrent).Bold(true),
		remaining: r.NewStyle().Foreground(colorRemaining),
		bonus:     r.NewStyle().Foreground(colorBonus),
	}
}

// Terminal draws the grid as one line of 52 glyphs per year of age.
type Terminal struct {
	Color bool
}

// Render writes the header, legend and the ten decade bands to w. Colors are
// only emitted when Color is set and w is a terminal that supports them.
func (t Terminal) Render(w io.Writer, snap engine.Snapshot, tr *locale.Translator) error {
	st := newTermStyles(lipgloss.NewRenderer(w), t.Color)
	s := snap.Summary

	// Pre-rendered once; the grid repeats them thousands of times.
	glyphs := map[engine.State]string{
		engine.StateLived:     st.lived.Render(GlyphLived),
		engine.StateCurrent:   st.current.Render(GlyphCurrent),
		engine.StateRemaining: st.remaining.Render(GlyphRemaining),
	}
	bonusRemaining := st.bonus.Render(GlyphRemaining)

	var b strings.Builder
	b.WriteString(st.title.Render(tr.Msg(config.TKeyWinTitle)))
	b.WriteString("  " + st.muted.Render(snap.Input) + "\n")
	b.WriteString(tr.Headline(s) + "\n")
	b.WriteString(st.muted.Render(tr.UsedLeft(s)) + "\n")
	b.WriteString(st.muted.Render(tr.AgeProgress(s)) + "\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		glyphs[engine.StateLived], " ", tr.LegendUsed(s), "   ",
		glyphs[engine.StateCurrent], " ", tr.Msg(config.TKeyLegendNow), "   ",
		glyphs[engine.StateRemaining], " ", tr.LegendRemaining(s),
	))
	b.WriteString("\n")
	b.WriteString(st.alert.Render(tr.RealityCheck(s)) + "\n")

	for _, band := range engine.DecadeBands() {
		b.WriteString("\n")
		header := st.title.Render(fmt.Sprintf("%5s", tr.DecadeRange(band))) + "  " + st.muted.Render(tr.DecadeCaption(band))
		if band.IsBonus {
			header += "  " + st.badge.Render(tr.Msg(config.TKeyBonusBadge))
		}
		b.WriteString(header + "\n")

		for rec := range band.Weeks(s) {
			if rec.WeekInYear == 1 {
				b.WriteString(st.muted.Render(fmt.Sprintf("%5d  ", rec.Age)))
			}
			switch {
			case rec.IsBonusDecade && rec.State() == engine.StateRemaining:
				b.WriteString(bonusRemaining)
			default:
				b.WriteString(glyphs[rec.State()])
			}
			if rec.WeekInYear == config.WeeksPerYear {
				b.WriteString("\n")
			}
		}
	}

	var months strings.Builder
	for _, label := range monthMarkers(tr) {
		if label == "" {
			label = " "
		}
		months.WriteString(label)
	}
	b.WriteString(strings.Repeat(" ", 7) + st.muted.Render(months.String()) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
