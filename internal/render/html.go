// Package render turns a computed snapshot into an HTML page or a terminal
// grid. Both views walk the same enumeration and share the locale strings.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/locale"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const pageTemplate = "page.html.tmpl"

// HTML renders the full life grid page.
type HTML struct {
	tmpl *template.Template
}

// NewHTML parses the embedded page template.
func NewHTML() (*HTML, error) {
	tmpl, err := template.New(pageTemplate).ParseFS(templateFS, "templates/"+pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrTemplateParse, err)
	}
	return &HTML{tmpl: tmpl}, nil
}

type metric struct {
	Label string
	Value string
}

type cell struct {
	Class string
	Title string
}

type decade struct {
	Range   string
	Caption string
	Badge   string
	Bonus   bool
	Cells   []cell
}

type page struct {
	Lang            string
	Title           string
	Headline        string
	UsedLeft        string
	AgeProgress     string
	LegendUsed      string
	LegendNow       string
	LegendRemaining string
	RealityCheck    string
	Metrics         []metric
	Decades         []decade
	Months          []string
	BirthLabel      string
	BirthInput      string
	ShowLabel       string
	Error           string
	Columns         int
	CalendarURL     string
}

// Render writes the page for snap. inputErr is shown above the grid when the
// last submitted birth date was rejected.
func (h *HTML) Render(w io.Writer, snap engine.Snapshot, tr *locale.Translator, inputErr string) error {
	if err := h.tmpl.Execute(w, buildPage(snap, tr, inputErr)); err != nil {
		return fmt.Errorf("%s: %w", config.ErrRenderPage, err)
	}
	return nil
}

// Bytes is Render into a buffer.
func (h *HTML) Bytes(snap engine.Snapshot, tr *locale.Translator, inputErr string) ([]byte, error) {
	var buf bytes.Buffer
	if err := h.Render(&buf, snap, tr, inputErr); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildPage(snap engine.Snapshot, tr *locale.Translator, inputErr string) page {
	s := snap.Summary

	p := page{
		Lang:            tr.Lang,
		Title:           tr.Msg(config.TKeyWinTitle),
		Headline:        tr.Headline(s),
		UsedLeft:        tr.UsedLeft(s),
		AgeProgress:     tr.AgeProgress(s),
		LegendUsed:      tr.LegendUsed(s),
		LegendNow:       tr.Msg(config.TKeyLegendNow),
		LegendRemaining: tr.LegendRemaining(s),
		RealityCheck:    tr.RealityCheck(s),
		Metrics: []metric{
			{tr.Msg(config.TKeyMetricWeeksLeft), tr.Number(s.WeeksRemaining)},
			{tr.Msg(config.TKeyMetricPercent), tr.Percent(s.PercentComplete) + "%"},
			{tr.Msg(config.TKeyMetricYearsLeft), strconv.Itoa(s.YearsRemaining)},
			{tr.Msg(config.TKeyMetricEnd), strconv.Itoa(s.ProjectedEndYear)},
		},
		Months:      monthMarkers(tr),
		BirthLabel:  tr.Msg(config.TKeyLblBirthDate),
		BirthInput:  snap.Input,
		ShowLabel:   tr.Msg(config.TKeyBtnShow),
		Error:       inputErr,
		Columns:     config.WeeksPerYear,
		CalendarURL: CalendarURL(snap.Input, tr.Lang),
	}

	var current *decade
	for band, rec := range engine.EnumerateGrid(s) {
		if len(p.Decades) <= band.Index {
			p.Decades = append(p.Decades, decade{
				Range:   tr.DecadeRange(band),
				Caption: tr.DecadeCaption(band),
				Badge:   tr.Msg(config.TKeyBonusBadge),
				Bonus:   band.IsBonus,
				Cells:   make([]cell, 0, config.WeeksPerDecade),
			})
			current = &p.Decades[len(p.Decades)-1]
		}
		current.Cells = append(current.Cells, cell{
			Class: rec.State().String(),
			Title: tr.WeekTooltip(rec),
		})
	}
	return p
}

// CalendarURL links the milestone feed for a birth date and language.
func CalendarURL(birth, lang string) string {
	q := url.Values{}
	q.Set(config.QueryBirth, birth)
	q.Set(config.QueryLang, lang)
	return config.RouteCalendar + "?" + q.Encode()
}

// monthMarkers returns one label per column, empty except where a month
// roughly begins.
func monthMarkers(tr *locale.Translator) []string {
	initials := tr.MonthInitials()
	labels := make([]string, config.WeeksPerYear)
	for i, col := range config.MonthMarkerWeeks {
		if i < len(initials) {
			labels[col] = initials[i]
		}
	}
	return labels
}
