package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/zalando/go-keyring"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

const testCard = "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:Jane Doe\r\nBDAY:20000101\r\nEND:VCARD\r\n"

// execute runs the command tree with a fixed clock and returns its stdout.
func execute(t *testing.T, o *options, args ...string) (string, error) {
	t.Helper()
	// Keep the log file out of the real user cache.
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(o.closeLog)

	if o.clock == nil {
		o.clock = engine.FixedClock{T: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
	}

	var out bytes.Buffer
	cmd := newRootCmd(o)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, newOptions(), config.CmdVersion)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, config.AppName+" version "+config.Version))
}

func TestPrintCommand(t *testing.T) {
	out, err := execute(t, newOptions(), config.CmdPrint, "--birth", "1991-03-18", "--no-color")
	require.NoError(t, err)

	assert.Contains(t, out, "Week 1,787 of 5,200")
	assert.Contains(t, out, "1,786 used • 3,414 left • 65 years")
	assert.NotContains(t, out, "\x1b[")
	assert.NotContains(t, out, `"level"`, "logs never reach stdout")
}

func TestPrintCommand_French(t *testing.T) {
	out, err := execute(t, newOptions(), config.CmdPrint, "--birth", "1991-03-18", "--no-color", "--lang", "fr")
	require.NoError(t, err)
	assert.Contains(t, out, "La vie en semaines")
}

func TestPrintCommand_DefaultBirthDate(t *testing.T) {
	out, err := execute(t, newOptions(), config.CmdPrint, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, config.DefaultBirthDate)
}

func TestPrintCommand_InvalidBirthDate(t *testing.T) {
	_, err := execute(t, newOptions(), config.CmdPrint, "--birth", "1991-02-30")
	assert.ErrorIs(t, err, engine.ErrInvalidBirthDate)
}

func TestPrintCommand_At(t *testing.T) {
	out, err := execute(t, newOptions(), config.CmdPrint, "--birth", "1991-03-18", "--at", "2001-03-18", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Week 522 of 5,200")
	assert.Contains(t, out, "521 used")

	_, err = execute(t, newOptions(), config.CmdPrint, "--at", "yesterday")
	assert.ErrorContains(t, err, config.ErrInvalidAt)
}

func TestBirthSources_MutuallyExclusive(t *testing.T) {
	_, err := execute(t, newOptions(), config.CmdPrint, "--birth", "1991-03-18", "--vcard", "me.vcf")
	assert.Error(t, err)
}

func TestExportCommand_Stdout(t *testing.T) {
	out, err := execute(t, newOptions(), config.CmdExport, "--birth", "1991-03-18")
	require.NoError(t, err)

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "SUMMARY:Week 1787 of 5200")
	assert.Contains(t, out, "SUMMARY:Expected end")
}

func TestExportCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "life.ics")

	out, err := execute(t, newOptions(), config.CmdExport, "--birth", "1991-03-18", "--lang", "fr", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SUMMARY:Semaine 1787 sur 5200")
}

func TestExportCommand_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "life.ics")

	_, err := execute(t, newOptions(), config.CmdExport, "--birth", "1991-03-18", "-o", path)
	assert.ErrorContains(t, err, config.ErrExportWrite)
}

func TestExportCommand_LocalVCard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "me.vcf")
	require.NoError(t, os.WriteFile(path, []byte(testCard), config.FilePermUserRW))

	out, err := execute(t, newOptions(), config.CmdExport, "--vcard", path)
	require.NoError(t, err)
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20000101")
}

func TestPrintCommand_RemoteVCardUsesKeyring(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, keyring.Set(config.KeyringService, "jane", "secret"))

	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://dav.example.com/me.vcf", "jane", "secret").
		Return(io.NopCloser(strings.NewReader(testCard)), nil)

	o := newOptions()
	o.importer = &engine.Importer{Fetcher: fetcher}

	out, err := execute(t, o, config.CmdPrint, "--no-color",
		"--vcard-url", "https://dav.example.com/me.vcf", "--vcard-user", "jane")
	require.NoError(t, err)

	fetcher.AssertExpectations(t)
	assert.Contains(t, out, "2000-01-01")
}
