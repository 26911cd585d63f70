package render

import (
	"log/slog"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/locale"
)

// Site produces the documents served by the local server: the HTML grid and
// the milestone calendar.
type Site struct {
	html *HTML
}

// NewSite parses the page template once.
func NewSite() (*Site, error) {
	h, err := NewHTML()
	if err != nil {
		return nil, err
	}
	return &Site{html: h}, nil
}

// RenderPage renders the grid in lang. When invalid is set the page carries
// the birth date error message above the unchanged grid.
func (s *Site) RenderPage(snap engine.Snapshot, lang string, invalid bool) ([]byte, error) {
	tr := locale.New(lang)
	var inputErr string
	if invalid {
		inputErr = tr.Msg(config.TKeyErrBirthDate)
	}

	data, err := s.html.Bytes(snap, tr, inputErr)
	if err != nil {
		return nil, err
	}
	slog.Debug("Page rendered",
		config.LogKeyComponent, config.CompRender,
		config.LogKeyLang, tr.Lang,
		config.LogKeySizeBytes, len(data),
	)
	return data, nil
}

// RenderCalendar exports the milestones with localized summaries.
func (s *Site) RenderCalendar(snap engine.Snapshot, lang string) ([]byte, error) {
	return engine.BuildCalendar(snap.Summary, locale.New(lang))
}
