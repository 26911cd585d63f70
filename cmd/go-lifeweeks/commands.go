package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/locale"
	"github.com/tartampluch/go-lifeweeks/internal/render"
	"github.com/tartampluch/go-lifeweeks/internal/server"
	"github.com/tartampluch/go-lifeweeks/internal/ui"
	"github.com/zalando/go-keyring"
)

// options carries the parsed flags and the injectable dependencies.
type options struct {
	debug     bool
	lang      string
	birth     string
	vcard     string
	vcardURL  string
	vcardUser string
	at        string

	port    string
	refresh time.Duration
	noColor bool
	output  string

	clock     engine.Clock
	importer  *engine.Importer
	logCloser io.Closer
}

func newOptions() *options {
	return &options{importer: engine.NewImporter()}
}

func (o *options) closeLog() {
	if o.logCloser != nil {
		_ = o.logCloser.Close() // Best effort close
		o.logCloser = nil
	}
}

// newRootCmd wires the command tree. Running the root command opens the GUI.
func newRootCmd(o *options) *cobra.Command {
	root := &cobra.Command{
		Use:           config.CmdRoot,
		Short:         config.DescRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == config.CmdVersion {
				return nil
			}
			// print and export own stdout; logs then only reach the file,
			// or stderr in debug mode.
			var console io.Writer = os.Stdout
			if cmd.Name() == config.CmdPrint || cmd.Name() == config.CmdExport {
				console = nil
				if o.debug {
					console = cmd.ErrOrStderr()
				}
			}
			o.closeLog()
			o.logCloser = setupLogging(o.debug, console)
			logStartupInfo()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runGUI(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&o.debug, config.FlagDebug, false, config.FlagDescDebug)
	pf.StringVar(&o.lang, config.FlagLang, "", config.FlagDescLang)
	pf.StringVar(&o.birth, config.FlagBirth, "", config.FlagDescBirth)
	pf.StringVar(&o.vcard, config.FlagVCard, "", config.FlagDescVCard)
	pf.StringVar(&o.vcardURL, config.FlagVCardURL, "", config.FlagDescVURL)
	pf.StringVar(&o.vcardUser, config.FlagVCardUser, "", config.FlagDescVUser)
	pf.StringVar(&o.at, config.FlagAt, "", config.FlagDescAt)
	root.MarkFlagsMutuallyExclusive(config.FlagBirth, config.FlagVCard, config.FlagVCardURL)

	guiCmd := &cobra.Command{
		Use:   config.CmdGUI,
		Short: config.DescGUI,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runGUI(cmd.Context())
		},
	}

	serveCmd := &cobra.Command{
		Use:   config.CmdServe,
		Short: config.DescServe,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runServe(cmd.Context())
		},
	}
	serveCmd.Flags().StringVar(&o.port, config.FlagPort, config.DefaultPort, config.FlagDescPort)
	serveCmd.Flags().DurationVar(&o.refresh, config.FlagRefresh, time.Duration(config.DefaultRefreshMin)*time.Minute, config.FlagDescRefr)

	printCmd := &cobra.Command{
		Use:   config.CmdPrint,
		Short: config.DescPrint,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runPrint(cmd.Context(), cmd.OutOrStdout())
		},
	}
	printCmd.Flags().BoolVar(&o.noColor, config.FlagNoColor, false, config.FlagDescColor)

	exportCmd := &cobra.Command{
		Use:   config.CmdExport,
		Short: config.DescExport,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runExport(cmd.Context(), cmd.OutOrStdout())
		},
	}
	exportCmd.Flags().StringVarP(&o.output, config.FlagOutput, config.FlagOutputSh, config.StdoutPath, config.FlagDescOut)

	versionCmd := &cobra.Command{
		Use:   config.CmdVersion,
		Short: config.DescVersion,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), config.MsgVersionOutput,
				config.AppName,
				config.Version,
				runtime.GOOS,
				runtime.GOARCH,
			)
		},
	}

	root.AddCommand(guiCmd, serveCmd, printCmd, exportCmd, versionCmd)
	return root
}

// newView builds the view from --birth or an imported contact card. Without
// either, the view keeps its default birth date.
func (o *options) newView(ctx context.Context) (*engine.View, error) {
	clock := o.clock
	if o.at != "" {
		at, err := time.Parse(config.BirthDateLayout, o.at)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrInvalidAt, err)
		}
		clock = engine.FixedClock{T: at}
	}
	view := engine.NewView(clock)

	input, err := o.birthInput(ctx)
	if err != nil {
		return nil, err
	}
	if input == "" {
		return view, nil
	}
	if _, err := view.SetBirthDate(input); err != nil {
		return nil, err
	}
	return view, nil
}

func (o *options) birthInput(ctx context.Context) (string, error) {
	var cfg engine.SourceConfig
	switch {
	case o.birth != "":
		return o.birth, nil
	case o.vcard != "":
		cfg = engine.SourceConfig{Mode: config.SourceModeLocal, LocalPath: o.vcard}
	case o.vcardURL != "":
		cfg = engine.SourceConfig{Mode: config.SourceModeWeb, WebURL: o.vcardURL, WebUser: o.vcardUser}
		if cfg.WebUser != "" {
			if p, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
				cfg.WebPass = p
			} else {
				slog.Debug(config.MsgPassFail,
					config.LogKeyUser, cfg.WebUser,
					config.LogKeyError, err,
					config.LogKeyComponent, config.CompMain)
			}
		}
	default:
		return "", nil
	}

	contact, err := o.importer.Import(ctx, cfg)
	if err != nil {
		return "", err
	}
	return contact.BirthDateInput(), nil
}

// runGUI initializes the Fyne application, wires dependencies, and starts the UI loop.
func (o *options) runGUI(ctx context.Context) error {
	a := app.NewWithID(config.AppID)

	// Record the version for potential migration logic in future updates.
	a.Preferences().SetString(config.PrefLastRun, config.Version)
	if o.lang != "" {
		a.Preferences().SetString(config.PrefLanguage, o.lang)
	}
	lang := a.Preferences().StringWithFallback(config.PrefLanguage, config.DefaultLanguage)

	view, err := o.newView(ctx)
	if err != nil {
		return err
	}
	site, err := render.NewSite()
	if err != nil {
		return err
	}

	port := a.Preferences().StringWithFallback(config.PrefServerPort, config.DefaultPort)
	srv := server.NewLifeServer(port, lang, view, site)
	gui := ui.NewLifeWeeksApp(a, ctx, view, srv, o.importer)

	// Lifecycle Bridge:
	// Watch for context cancellation to quit the UI gracefully.
	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	// Blocks until the main window closes.
	gui.Run()

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return nil
}

// runServe publishes the grid over HTTP and keeps it current until ctx ends.
func (o *options) runServe(ctx context.Context) error {
	view, err := o.newView(ctx)
	if err != nil {
		return err
	}
	site, err := render.NewSite()
	if err != nil {
		return err
	}

	srv := server.NewLifeServer(o.port, locale.New(o.lang).Lang, view, site)
	if err := srv.Publish(); err != nil {
		return err
	}

	go srv.RunRefresher(ctx, o.refresh)
	return srv.Start(ctx)
}

func (o *options) runPrint(ctx context.Context, w io.Writer) error {
	view, err := o.newView(ctx)
	if err != nil {
		return err
	}
	return render.Terminal{Color: !o.noColor}.Render(w, view.Snapshot(), locale.New(o.lang))
}

// runExport writes the milestone calendar to a file, or to w for "-".
func (o *options) runExport(ctx context.Context, w io.Writer) error {
	view, err := o.newView(ctx)
	if err != nil {
		return err
	}

	data, err := engine.BuildCalendar(view.Snapshot().Summary, locale.New(o.lang))
	if err != nil {
		return err
	}

	if o.output == "" || o.output == config.StdoutPath {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("%s: %w", config.ErrExportWrite, err)
		}
		return nil
	}

	if err := os.WriteFile(o.output, data, config.FilePermExport); err != nil {
		return fmt.Errorf("%s: %w", config.ErrExportWrite, err)
	}
	slog.Info(config.MsgExported,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyFile, o.output,
		config.LogKeySizeBytes, len(data),
	)
	return nil
}
