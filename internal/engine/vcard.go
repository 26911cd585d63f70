package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// ErrNoBirthday is returned when no card in the stream has a BDAY with a year.
var ErrNoBirthday = errors.New(config.ErrNoBirthday)

// Contact is the person whose life grid is drawn.
type Contact struct {
	Name      string
	BirthDate time.Time
}

// BirthDateInput formats the birth date the way the date field expects it.
func (c Contact) BirthDateInput() string {
	return FormatBirthDate(c.BirthDate)
}

// SourceConfig describes where the contact card lives.
type SourceConfig struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Path to the .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password
}

// Importer reads a birth date out of a vCard source.
type Importer struct {
	Fetcher VCardFetcher
}

// NewImporter wires the default HTTP fetcher.
func NewImporter() *Importer {
	return &Importer{Fetcher: NewHTTPFetcher()}
}

// Import opens the configured source and returns the first contact with a
// usable birth date.
func (imp *Importer) Import(ctx context.Context, cfg SourceConfig) (Contact, error) {
	log := slog.With(
		config.LogKeyComponent, config.CompImporter,
		config.LogKeyMode, cfg.Mode,
	)

	reader, err := imp.acquireStream(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return Contact{}, ctx.Err()
		}
		return Contact{}, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	contact, err := ReadContact(ctx, reader)
	if err != nil {
		return Contact{}, err
	}

	log.Info(config.MsgImported,
		config.LogKeyName, contact.Name,
		config.LogKeyDOB, contact.BirthDateInput(),
	)
	return contact, nil
}

// acquireStream opens the appropriate data source based on configuration.
func (imp *Importer) acquireStream(ctx context.Context, cfg SourceConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if imp.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return imp.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// ReadContact decodes cards until one carries a full birth date.
// Malformed cards and year-less birthdays (--MM-DD) are skipped.
func ReadContact(ctx context.Context, r io.Reader) (Contact, error) {
	decoder := vcard.NewDecoder(r)
	for {
		if err := ctx.Err(); err != nil {
			return Contact{}, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			return Contact{}, ErrNoBirthday
		}
		if err != nil {
			// A decoder error leaves the stream at an unknown position.
			return Contact{}, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birth, err := parseCardDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompImporter,
				config.LogKeyValue, bday.Value)
			continue
		}

		// Name Strategy: FN (Formatted) > N (Structured) > Fallback
		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil && n.Value != "" {
			name = n.Value
		}

		return Contact{Name: name, BirthDate: birth}, nil
	}
}

// parseCardDate accepts the vCard BDAY layouts that carry a year and returns
// midnight UTC of that calendar day.
func parseCardDate(value string) (time.Time, error) {
	layouts := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	var err error
	for _, layout := range layouts {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidBirthDate, err)
}
