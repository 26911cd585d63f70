package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
)

// Renderer produces the two documents served by LifeServer.
type Renderer interface {
	RenderPage(snap engine.Snapshot, lang string, invalid bool) ([]byte, error)
	RenderCalendar(snap engine.Snapshot, lang string) ([]byte, error)
}

// cacheItem stores a rendered document and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// publication is one Publish result: both documents rendered from the same
// snapshot in the same language.
type publication struct {
	lang     string
	page     *cacheItem
	calendar *cacheItem
}

func newCacheItem(data []byte) *cacheItem {
	hash := sha256.Sum256(data)
	return &cacheItem{
		data:         data,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}
}

// LifeServer serves the life grid page and the milestone calendar on localhost.
type LifeServer struct {
	Port     string
	View     *engine.View
	Renderer Renderer

	// mu serializes publishing so an older render never replaces a newer one.
	mu   sync.Mutex
	lang atomic.Value // string

	// The page and calendar for View's snapshot in the server language are
	// pre-rendered on every Publish. Requests for another birth date or
	// language are rendered on demand and never touch the View.
	current atomic.Pointer[publication]
}

// NewLifeServer creates a new instance of the server.
func NewLifeServer(port, lang string, view *engine.View, r Renderer) *LifeServer {
	s := &LifeServer{
		Port:     port,
		View:     view,
		Renderer: r,
	}
	s.lang.Store(lang)
	return s
}

// Lang is the language of the published documents.
func (s *LifeServer) Lang() string {
	lang, _ := s.lang.Load().(string)
	return lang
}

// SetLang switches the published language and republishes.
func (s *LifeServer) SetLang(lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lang.Store(lang)
	return s.publishLocked()
}

// Handler returns the routes of the server.
func (s *LifeServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot+"{$}", s.handlePage)
	mux.HandleFunc(config.RouteCalendar, s.handleCalendar)
	mux.HandleFunc(config.RouteHealth, s.handleHealth)
	return mux
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *LifeServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Publish renders the View's current snapshot and atomically replaces the
// cached page and calendar.
func (s *LifeServer) Publish() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.publishLocked()
}

func (s *LifeServer) publishLocked() error {
	if s.Renderer == nil || s.View == nil {
		return errors.New(config.ErrRenderMissing)
	}
	snap := s.View.Snapshot()
	lang := s.Lang()

	page, err := s.Renderer.RenderPage(snap, lang, false)
	if err != nil {
		return err
	}
	cal, err := s.Renderer.RenderCalendar(snap, lang)
	if err != nil {
		return err
	}

	pageItem := newCacheItem(page)
	s.current.Store(&publication{
		lang:     lang,
		page:     pageItem,
		calendar: newCacheItem(cal),
	})

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyDOB, snap.Input,
		config.LogKeySizeBytes, len(page),
		config.LogKeyETag, pageItem.etag,
	)
	return nil
}

// RunRefresher recomputes the View and republishes on every tick, so the
// current week moves forward while the process stays up.
func (s *LifeServer) RunRefresher(ctx context.Context, interval time.Duration) {
	log := slog.With(config.LogKeyComponent, config.CompWorker)
	if interval <= 0 {
		interval = time.Duration(config.DefaultRefreshMin) * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, interval)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-ticker.C:
			s.View.Recompute()
			if err := s.Publish(); err != nil {
				log.Error(config.ErrRenderPage, config.LogKeyError, err)
			}
		}
	}
}

func (s *LifeServer) handlePage(w http.ResponseWriter, r *http.Request) {
	s.serveDocument(w, r, func(p *publication) *cacheItem { return p.page }, config.MimeTextHTML,
		func(snap engine.Snapshot, lang string, invalid bool) ([]byte, error) {
			return s.Renderer.RenderPage(snap, lang, invalid)
		})
}

func (s *LifeServer) handleCalendar(w http.ResponseWriter, r *http.Request) {
	s.serveDocument(w, r, func(p *publication) *cacheItem { return p.calendar }, config.MimeTextCalendar,
		func(snap engine.Snapshot, lang string, _ bool) ([]byte, error) {
			return s.Renderer.RenderCalendar(snap, lang)
		})
}

func (s *LifeServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(config.HeaderCacheControl, config.CacheControlNoStore)
	_, _ = io.WriteString(w, config.HTTPMsgHealthy)
}

type renderFunc func(snap engine.Snapshot, lang string, invalid bool) ([]byte, error)

// serveDocument answers from the cache when the request matches the published
// state, and renders on demand for ?birth= or ?lang= overrides.
func (s *LifeServer) serveDocument(w http.ResponseWriter, r *http.Request, pick func(*publication) *cacheItem, mime string, render renderFunc) {
	// 1. Method Validation
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	birth := query.Get(config.QueryBirth)
	published := s.Lang()
	lang := query.Get(config.QueryLang)
	if lang == "" {
		lang = published
	}

	// 2. Published state (Atomic / Lock-Free)
	if birth == "" && lang == published {
		pub := s.current.Load()
		if pub == nil {
			w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
			http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
			return
		}
		if pub.lang == lang {
			writeItem(w, r, pick(pub), mime)
			return
		}
		// A language switch is being published; fall through and render it.
	}

	// 3. On-demand rendering
	log := slog.With(
		config.LogKeyComponent, config.CompServer,
		config.LogKeyRoute, r.URL.Path,
	)
	if s.Renderer == nil || s.View == nil {
		log.Error(config.ErrRenderMissing)
		http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
		return
	}

	snap := s.View.Snapshot()
	status := http.StatusOK
	if birth != "" {
		requested, err := engine.Compute(birth, s.View.Clock)
		if err != nil {
			log.Debug(config.MsgRejectedInput, config.LogKeyValue, birth)
			status = http.StatusBadRequest
		} else {
			snap = requested
		}
	}

	if status == http.StatusBadRequest && mime == config.MimeTextCalendar {
		http.Error(w, config.ErrInvalidBirthDate, http.StatusBadRequest)
		return
	}

	data, err := render(snap, lang, status == http.StatusBadRequest)
	if err != nil {
		log.Error(config.ErrRenderPage, config.LogKeyError, err)
		http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
		return
	}

	if status != http.StatusOK {
		w.Header().Set(config.HeaderContentType, mime)
		w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
		w.Header().Set(config.HeaderCacheControl, config.CacheControlNoStore)
		w.WriteHeader(status)
		if r.Method == http.MethodGet {
			_, _ = w.Write(data)
		}
		return
	}
	writeItem(w, r, newCacheItem(data), mime)
}

// writeItem serves a document with HTTP caching support.
func writeItem(w http.ResponseWriter, r *http.Request, item *cacheItem, mime string) {
	w.Header().Set(config.HeaderContentType, mime)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	// Conditional Headers (Browser Caching)
	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				// If server content is not newer than client cache, return 304.
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
