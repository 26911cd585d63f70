package ui

import (
	"context"
	"image/color"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
)

var (
	colorLived       = color.NRGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff}
	colorRemaining   = color.NRGBA{R: 0x37, G: 0x41, B: 0x51, A: 0xff}
	colorCurrent     = color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
	colorCurrentRing = color.NRGBA{R: 0xfc, G: 0xa5, B: 0xa5, A: 0xff}
	colorBonusCell   = color.NRGBA{R: 0xfb, G: 0xbf, B: 0x24, A: 0x66}
	colorBonusBand   = color.NRGBA{R: 0xfb, G: 0xbf, B: 0x24, A: 0x1a}
)

// cellColor maps a week to its fill. Bonus weeks only stand out while remaining.
func cellColor(rec engine.WeekRecord) color.Color {
	switch rec.State() {
	case engine.StateCurrent:
		return colorCurrent
	case engine.StateLived:
		return colorLived
	}
	if rec.IsBonusDecade {
		return colorBonusCell
	}
	return colorRemaining
}

// weekCell is one tappable square of the grid.
type weekCell struct {
	widget.BaseWidget

	rect   *canvas.Rectangle
	record engine.WeekRecord
	onTap  func(engine.WeekRecord)
}

func newWeekCell(onTap func(engine.WeekRecord)) *weekCell {
	c := &weekCell{rect: canvas.NewRectangle(colorRemaining), onTap: onTap}
	c.rect.CornerRadius = config.CellRadius
	c.ExtendBaseWidget(c)
	return c
}

func (c *weekCell) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.rect)
}

func (c *weekCell) MinSize() fyne.Size {
	return fyne.NewSquareSize(config.CellSize)
}

// Tapped implements fyne.Tappable.
func (c *weekCell) Tapped(*fyne.PointEvent) {
	if c.onTap != nil {
		c.onTap(c.record)
	}
}

func (c *weekCell) setRecord(rec engine.WeekRecord) {
	c.record = rec
	c.rect.FillColor = cellColor(rec)
	c.rect.StrokeWidth = 0
	c.rect.CornerRadius = config.CellRadius
	if rec.IsCurrent {
		c.rect.StrokeColor = colorCurrentRing
		c.rect.StrokeWidth = 2
		c.rect.CornerRadius = config.CellRadiusCurrent
	}
	c.rect.Refresh()
}

// gridWidgets holds the widgets refreshed on every new snapshot.
type gridWidgets struct {
	birthEntry      *widget.Entry
	inputError      *widget.Label
	status          *widget.Label
	headline        *widget.Label
	usedLeft        *widget.Label
	ageProgress     *widget.Label
	legendUsed      *widget.Label
	legendRemaining *widget.Label
	realityCheck    *widget.Label
	metrics         []*widget.Label
	details         *widget.Label

	// cells[i] draws week i+1.
	cells []*weekCell
}

// ShowMainWindow opens the grid window, or focuses it when already open.
func (app *LifeWeeksApp) ShowMainWindow() {
	if app.Window != nil {
		app.Window.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w

	w.SetContent(app.buildMainContent())
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	w.SetMaster()
	w.SetOnClosed(func() { app.Window = nil })
	w.Show()
}

// rebuildMainWindow redraws the window after a language change.
func (app *LifeWeeksApp) rebuildMainWindow() {
	if app.Window == nil {
		return
	}
	app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
	app.Window.SetContent(app.buildMainContent())
}

// buildMainContent lays out the header, the summary, the legend and the ten
// decade bands, then paints them with the view's current snapshot.
func (app *LifeWeeksApp) buildMainContent() fyne.CanvasObject {
	tr := app.Translator
	g := &gridWidgets{cells: make([]*weekCell, config.TotalWeeks)}
	app.grid = g

	// --- 1. Input row ---
	snap := app.View.Snapshot()
	g.birthEntry = widget.NewEntry()
	g.birthEntry.PlaceHolder = config.PlaceholderBirth
	g.birthEntry.SetText(snap.Input)
	g.birthEntry.OnChanged = app.SetBirthDate

	g.inputError = widget.NewLabel("")
	g.inputError.Importance = widget.DangerImportance
	g.inputError.Hide()

	g.status = widget.NewLabel("")
	g.status.Hide()

	btnImport := widget.NewButtonWithIcon(tr.Msg(config.TKeyBtnImport), theme.FolderOpenIcon(), app.importFromFile)
	btnImportWeb := widget.NewButtonWithIcon(tr.Msg(config.TKeyBtnImportWeb), theme.DownloadIcon(), app.importFromWeb)
	btnSettings := widget.NewButtonWithIcon(tr.Msg(config.TKeyBtnSettings), theme.SettingsIcon(), app.ShowSettingsWindow)

	inputRow := container.NewBorder(nil, nil,
		widget.NewLabel(tr.Msg(config.TKeyLblBirthDate)),
		container.NewHBox(btnImport, btnImportWeb, btnSettings),
		g.birthEntry,
	)

	// --- 2. Summary ---
	title := widget.NewLabelWithStyle(tr.Msg(config.TKeyWinTitle), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	g.headline = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	g.usedLeft = widget.NewLabel("")
	g.ageProgress = widget.NewLabel("")

	g.legendUsed = widget.NewLabel("")
	g.legendRemaining = widget.NewLabel("")
	legend := container.NewHBox(
		swatch(colorLived), g.legendUsed,
		swatch(colorCurrent), widget.NewLabel(tr.Msg(config.TKeyLegendNow)),
		swatch(colorRemaining), g.legendRemaining,
	)

	g.realityCheck = widget.NewLabel("")
	g.realityCheck.Importance = widget.DangerImportance

	metricKeys := []string{config.TKeyMetricWeeksLeft, config.TKeyMetricPercent, config.TKeyMetricYearsLeft, config.TKeyMetricEnd}
	metricCards := make([]fyne.CanvasObject, 0, len(metricKeys))
	for _, key := range metricKeys {
		value := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
		g.metrics = append(g.metrics, value)
		metricCards = append(metricCards, widget.NewCard("", tr.Msg(key), value))
	}

	g.details = widget.NewLabel(tr.Msg(config.TKeyHintTapWeek))
	g.details.Wrapping = fyne.TextWrapWord

	// --- 3. Grid ---
	bands := container.NewVBox()
	for _, band := range engine.DecadeBands() {
		header := container.NewHBox(
			widget.NewLabelWithStyle(tr.DecadeRange(band), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabel(tr.DecadeCaption(band)),
		)
		if band.IsBonus {
			badge := widget.NewLabelWithStyle(tr.Msg(config.TKeyBonusBadge), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
			badge.Importance = widget.WarningImportance
			header.Add(badge)
		}

		cells := make([]fyne.CanvasObject, 0, config.WeeksPerDecade)
		for rec := range band.Weeks(snap.Summary) {
			c := newWeekCell(app.selectWeek)
			g.cells[rec.Index-1] = c
			cells = append(cells, c)
		}

		var body fyne.CanvasObject = container.NewGridWithColumns(config.WeeksPerYear, cells...)
		if band.IsBonus {
			bg := canvas.NewRectangle(colorBonusBand)
			bg.CornerRadius = config.CellRadiusCurrent
			body = container.NewStack(bg, body)
		}
		bands.Add(container.NewVBox(header, body))
	}
	bands.Add(app.monthRow())

	top := container.NewVBox(
		inputRow,
		g.inputError,
		g.status,
		title,
		g.headline,
		g.usedLeft,
		g.ageProgress,
		legend,
		g.realityCheck,
		container.NewGridWithColumns(config.LayoutMetricColumns, metricCards...),
	)

	app.refresh(snap)

	return container.NewBorder(top, g.details, nil, nil, container.NewVScroll(bands))
}

// monthRow places the month initials under their week columns.
func (app *LifeWeeksApp) monthRow() fyne.CanvasObject {
	initials := app.Translator.MonthInitials()
	labels := make([]fyne.CanvasObject, config.WeeksPerYear)
	for i := range labels {
		labels[i] = canvas.NewText("", theme.Color(theme.ColorNamePlaceHolder))
	}
	for month, week := range config.MonthMarkerWeeks {
		if month < len(initials) {
			labels[week].(*canvas.Text).Text = initials[month]
		}
	}
	return container.NewGridWithColumns(config.WeeksPerYear, labels...)
}

func swatch(c color.Color) fyne.CanvasObject {
	r := canvas.NewRectangle(c)
	r.CornerRadius = config.CellRadius
	r.SetMinSize(fyne.NewSquareSize(config.CellSize))
	return container.NewCenter(r)
}

// refresh repaints the summary and every cell for snap.
func (app *LifeWeeksApp) refresh(snap engine.Snapshot) {
	g := app.grid
	if g == nil {
		return
	}
	tr := app.Translator
	s := snap.Summary

	g.headline.SetText(tr.Headline(s))
	g.usedLeft.SetText(tr.UsedLeft(s))
	g.ageProgress.SetText(tr.AgeProgress(s))
	g.legendUsed.SetText(tr.LegendUsed(s))
	g.legendRemaining.SetText(tr.LegendRemaining(s))
	g.realityCheck.SetText(tr.RealityCheck(s))

	values := []string{
		tr.Number(s.WeeksRemaining),
		tr.Percent(s.PercentComplete) + "%",
		strconv.Itoa(s.YearsRemaining),
		strconv.Itoa(s.ProjectedEndYear),
	}
	for i, v := range values {
		g.metrics[i].SetText(v)
	}

	for _, rec := range engine.EnumerateGrid(s) {
		if c := g.cells[rec.Index-1]; c != nil {
			c.setRecord(rec)
		}
	}
}

// selectWeek shows the dates of a tapped week.
func (app *LifeWeeksApp) selectWeek(rec engine.WeekRecord) {
	slog.Debug(config.MsgWeekSelected,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyWeek, rec.Index,
	)
	if app.grid != nil {
		app.grid.details.SetText(app.Translator.WeekTooltip(rec))
	}
}

// importFromFile lets the user pick a contact card and reads its birthday.
func (app *LifeWeeksApp) importFromFile() {
	if app.Window == nil {
		return
	}
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		defer func() { _ = r.Close() }()
		contact, err := engine.ReadContact(app.Ctx, r)
		app.applyImport(contact, err)
	}, app.Window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
	d.Show()
}

// importFromWeb fetches the configured address book card off the UI thread.
func (app *LifeWeeksApp) importFromWeb() {
	go func() {
		contact, err := app.fetchContact(app.Ctx)
		fyne.Do(func() { app.applyImport(contact, err) })
	}()
}

func (app *LifeWeeksApp) fetchContact(ctx context.Context) (engine.Contact, error) {
	return app.Importer.Import(ctx, app.loadSourceConfig())
}

// applyImport fills the birth date field from an imported contact, or reports
// why the import failed.
func (app *LifeWeeksApp) applyImport(contact engine.Contact, err error) {
	tr := app.Translator
	if err != nil {
		slog.Warn(config.ErrImportFailed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		app.setStatus(tr.Tmpl(config.TKeyErrImport, map[string]any{"Error": err.Error()}))
		return
	}

	input := contact.BirthDateInput()
	if app.grid != nil {
		app.grid.birthEntry.SetText(input)
	}
	app.SetBirthDate(input)
	app.setStatus(tr.Tmpl(config.TKeyImported, map[string]any{"Name": contact.Name}))
}

func (app *LifeWeeksApp) setStatus(msg string) {
	if app.grid == nil {
		return
	}
	app.grid.status.SetText(msg)
	app.grid.status.Show()
}
