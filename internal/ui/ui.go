package ui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/locale"
	"github.com/tartampluch/go-lifeweeks/internal/server"
	"github.com/zalando/go-keyring"
)

// LifeWeeksApp encapsulates the UI state, preferences, and background logic.
type LifeWeeksApp struct {
	App            fyne.App
	Window         fyne.Window
	SettingsWindow fyne.Window
	Preferences    fyne.Preferences
	Translator     *locale.Translator
	Ctx            context.Context

	View     *engine.View
	Server   *server.LifeServer // optional; nil disables publishing
	Importer *engine.Importer

	grid *gridWidgets
}

// NewLifeWeeksApp constructs the application and wires dependencies.
func NewLifeWeeksApp(a fyne.App, ctx context.Context, view *engine.View, srv *server.LifeServer, importer *engine.Importer) *LifeWeeksApp {
	a.SetIcon(theme.GridIcon())

	if view == nil {
		view = engine.NewView(nil)
	}
	if importer == nil {
		importer = engine.NewImporter()
	}

	return &LifeWeeksApp{
		App:         a,
		Preferences: a.Preferences(),
		Ctx:         ctx,
		View:        view,
		Server:      srv,
		Importer:    importer,
	}
}

// Run launches the application services and the main UI loop.
func (app *LifeWeeksApp) Run() {
	app.UpdateTranslator()

	if app.Server != nil {
		app.publish()

		go func() {
			slog.Info(config.MsgServerListen,
				config.LogKeyPort, app.Server.Port,
				config.LogKeyComponent, config.CompUI)

			if err := app.Server.Start(app.Ctx); err != nil {
				slog.Error(config.ErrServerStartup,
					config.LogKeyError, err,
					config.LogKeyComponent, config.CompUI)

				app.App.SendNotification(fyne.NewNotification(
					config.TitleStartupError,
					fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
			}
		}()
	}

	app.ShowMainWindow()

	go app.backgroundWorker()
	app.App.Run()
}

// UpdateTranslator reloads the translator from the language preference.
func (app *LifeWeeksApp) UpdateTranslator() {
	lang := app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
	app.Translator = locale.New(lang)
}

// GetMsg translates a key in the current language.
func (app *LifeWeeksApp) GetMsg(key string) string {
	return app.Translator.Msg(key)
}

// backgroundWorker moves the current week forward while the window stays open.
func (app *LifeWeeksApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	interval := time.Duration(config.DefaultRefreshMin) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, interval)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-ticker.C:
			snap := app.View.Recompute()
			fyne.Do(func() { app.refresh(snap) })
			app.publish()
		}
	}
}

// SetBirthDate feeds user input to the view. Invalid input leaves the grid on
// the previous snapshot and shows the localized error.
func (app *LifeWeeksApp) SetBirthDate(input string) {
	snap, err := app.View.SetBirthDate(input)
	if app.grid != nil {
		if err != nil {
			app.grid.inputError.SetText(app.GetMsg(config.TKeyErrBirthDate))
			app.grid.inputError.Show()
			return
		}
		app.grid.inputError.Hide()
	}
	if err != nil {
		return
	}
	app.refresh(snap)
	app.publish()
}

// publish pushes the view's snapshot to the local server cache.
func (app *LifeWeeksApp) publish() {
	if app.Server == nil {
		return
	}
	if err := app.Server.Publish(); err != nil {
		slog.Error(config.ErrRenderPage,
			config.LogKeyError, err,
			config.LogKeyComponent, config.CompUI)
	}
}

// loadSourceConfig assembles the import configuration from preferences and Keyring.
func (app *LifeWeeksApp) loadSourceConfig() engine.SourceConfig {
	cfg := engine.SourceConfig{
		Mode:    config.SourceModeWeb,
		WebURL:  app.Preferences.String(config.PrefVCardURL),
		WebUser: app.Preferences.String(config.PrefUsername),
	}

	if cfg.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
			cfg.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}

	return cfg
}
