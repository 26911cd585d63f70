package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-LifeWeeks/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Life Weeks"
	AppID             = "com.github.tartampluch.go-lifeweeks"
	KeyringService    = "com.github.tartampluch.go-lifeweeks"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// FilePermExport represents -rw-r--r-- for exported calendars.
	FilePermExport fs.FileMode = 0644

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// Life Grid Model
// -----------------------------------------------------------------------------

const (
	// TotalWeeks is the length of the grid: 100 years of 52 weeks.
	TotalWeeks   = 5200
	WeeksPerYear = 52
	DaysPerWeek  = 7
	MaxAge       = 99

	// DayMillis and WeekMillis are fixed lengths; the grid ignores DST and
	// leap seconds the same way millisecond arithmetic does.
	DayMillis  int64 = 24 * 60 * 60 * 1000
	WeekMillis int64 = DaysPerWeek * DayMillis

	YearsPerDecade   = 10
	DecadeCount      = 10
	WeeksPerDecade   = YearsPerDecade * WeeksPerYear
	BonusDecadeStart = 80

	// DefaultBirthDate bootstraps the view before the user types anything.
	DefaultBirthDate = "1991-03-18"

	// BirthDateLayout is the only accepted input layout (ISO 8601 calendar date).
	BirthDateLayout = "2006-01-02"
)

// MonthMarkerWeeks are the week columns (0-based) where a month initial is drawn
// under the grid.
var MonthMarkerWeeks = []int{0, 4, 8, 13, 17, 21, 26, 30, 34, 39, 43, 47}

// -----------------------------------------------------------------------------
// CLI Commands, Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	CmdRoot    = "go-lifeweeks"
	CmdGUI     = "gui"
	CmdServe   = "serve"
	CmdPrint   = "print"
	CmdExport  = "export"
	CmdVersion = "version"

	FlagDebug     = "debug"
	FlagLang      = "lang"
	FlagBirth     = "birth"
	FlagVCard     = "vcard"
	FlagVCardURL  = "vcard-url"
	FlagVCardUser = "vcard-user"
	FlagAt        = "at"
	FlagPort      = "port"
	FlagRefresh   = "refresh"
	FlagNoColor   = "no-color"
	FlagOutput    = "output"
	FlagOutputSh  = "o"

	DescRoot      = "Visualize a life as a grid of 5,200 weeks"
	DescGUI       = "Open the desktop window (default)"
	DescServe     = "Serve the life grid and milestone calendar over local HTTP"
	DescPrint     = "Print the life grid to the terminal"
	DescExport    = "Export life milestones as an iCalendar file"
	DescVersion   = "Show application version and exit"
	FlagDescDebug = "Enable debug logging to stdout"
	FlagDescLang  = "Language for labels and dates (en, fr)"
	FlagDescBirth = "Birth date (YYYY-MM-DD)"
	FlagDescVCard = "Read the birth date from a local vCard file"
	FlagDescVURL  = "Read the birth date from a remote vCard (CardDAV/WebDAV URL)"
	FlagDescVUser = "Username for the remote vCard; the password is read from the OS keyring"
	FlagDescAt    = "Evaluate the grid on this date (YYYY-MM-DD) instead of today"
	FlagDescPort  = "Local HTTP port"
	FlagDescRefr  = "Interval between background recomputations"
	FlagDescColor = "Disable terminal colors"
	FlagDescOut   = "Output file (defaults to stdout)"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
	StdoutPath       = "-"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 1100
	MainWindowHeight    = 800
	SettingsWindowWidth = 520

	// Grid cell geometry (device independent pixels).
	CellSize          = 14
	CellRadius        = 3
	CellRadiusCurrent = 5

	// Preference Keys. The birth date is deliberately absent.
	PrefLanguage   = "language"
	PrefServerPort = "server_port"
	PrefVCardURL   = "vcard_url"
	PrefUsername   = "username"
	PrefLastRun    = "last_run_version"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle        = "win_title"
	TKeyWinSettings     = "win_settings_title"
	TKeyHeadline        = "headline"
	TKeyUsedLeft        = "used_left"
	TKeyAgeProgress     = "age_progress"
	TKeyLegendUsed      = "legend_used"
	TKeyLegendNow       = "legend_now"
	TKeyLegendRemaining = "legend_remaining"
	TKeyRealityCheck    = "reality_check"
	TKeyMetricWeeksLeft = "metric_weeks_left"
	TKeyMetricPercent   = "metric_percent"
	TKeyMetricYearsLeft = "metric_years_left"
	TKeyMetricEnd       = "metric_expected_end"
	TKeyDecadeRange     = "decade_range"
	TKeyDecadeAges      = "decade_ages"
	TKeyDecadeBonus     = "decade_bonus"
	TKeyBonusBadge      = "bonus_badge"
	TKeyWeekTooltip     = "week_tooltip"
	TKeyBonusTooltip    = "bonus_tooltip"
	TKeyDateShort       = "format_date_short"
	TKeyDateFull        = "format_date_full"
	TKeyMonthInitials   = "month_initials"
	TKeyMonthsShort     = "months_short"
	TKeyMonthsLong      = "months_long"
	TKeyWeekdays        = "weekdays"
	TKeyLblBirthDate    = "lbl_birth_date"
	TKeyBtnImport       = "btn_import_contact"
	TKeyBtnImportWeb    = "btn_import_web"
	TKeyBtnSettings     = "btn_settings"
	TKeyBtnSave         = "btn_save"
	TKeyBtnCancel       = "btn_cancel"
	TKeyBtnShow         = "btn_show"
	TKeyLblLanguage     = "lbl_language"
	TKeyHelpLanguage    = "help_language"
	TKeyLblPort         = "lbl_server_port"
	TKeyHelpPort        = "help_port"
	TKeyLblGeneral      = "lbl_general"
	TKeyLblSource       = "lbl_contact_source"
	TKeyLblURL          = "lbl_url"
	TKeyHelpURL         = "help_vcard_url"
	TKeyLblUser         = "lbl_user"
	TKeyLblPass         = "lbl_pass"
	TKeyLblFooter       = "lbl_footer"
	TKeyHintTapWeek     = "hint_tap_week"
	TKeyImported        = "msg_imported"
	TKeyErrBirthDate    = "err_birth_date"
	TKeyErrImport       = "err_import"
	TKeyEvtDecade       = "event_decade"
	TKeyEvtBonusDecade  = "event_bonus_decade"
	TKeyEvtCurrentWeek  = "event_current_week"
	TKeyEvtExpectedEnd  = "event_expected_end"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb     = "web"
	SourceModeLocal   = "local"
	DefaultPort       = "18081"
	DefaultRefreshMin = 60
	DefaultLanguage   = "en"
	UIDSalt           = "go-lifeweeks-v1-" // Salt for deterministic UID generation
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Life Weeks//Engine//EN"
	ICalCalName = "Life in Weeks"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "golifeweeks"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTEnd       = "DTEND"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	// Milestone kinds used in UIDs.
	MilestoneDecade  = "decade"
	MilestoneCurrent = "week"
	MilestoneEnd     = "end"

	DefaultICalRefresh = 24 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	// Limits
	MinPort = 1
	MaxPort = 65535

	PortMaxDigits = 5

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%d|%s"
	FormatUID       = "%s@%s"

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB, a single contact card
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	RouteCalendar       = "/calendar.ics"
	RouteHealth         = "/healthz"
	QueryBirth          = "birth"
	QueryLang           = "lang"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextHTML        = "text/html; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"
	CacheControlNoStore = "no-store"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidBirthDate = "invalid birth date (expected YYYY-MM-DD)"
	ErrNoBirthday       = "no contact with a full birth date found"
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrVCardParse       = "failed to read vCard stream"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrRenderPage       = "failed to render page"
	ErrRenderMissing    = "internal error: page renderer is not initialized"
	ErrExportWrite      = "failed to write calendar export"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTemplateParse    = "failed to parse page template"
	ErrImportFailed     = "contact import failed"
	ErrInvalidAt        = "invalid --at date (expected YYYY-MM-DD)"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Life grid initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
	HTTPMsgHealthy      = "ok"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackDecade      = "Ages %d to %d"
	FallbackBonusDecade = "Bonus years %d to %d"
	FallbackCurrentWeek = "Week %d of %d"
	FallbackExpectedEnd = "Expected end"
	FallbackName        = "Unknown"

	TitleStartupError = "Startup Error"

	MsgPortBusy      = "Port %s is busy or unavailable."
	MsgRecomputed    = "Life grid recomputed"
	MsgRejectedInput = "Birth date rejected"
	MsgWorkerStart   = "Background worker started"
	MsgWorkerStop    = "Worker stopping due to context cancellation"
	MsgAppStop       = "Application stopped gracefully"
	MsgCtxCancel     = "Context cancelled, shutting down UI"
	MsgSkippedDate   = "Skipping unusable birth date"
	MsgImported      = "Birth date imported from contact"
	MsgCalendarBuilt = "Milestone calendar generated"
	MsgExported      = "Milestone calendar exported"
	MsgAppStarting   = "Starting application"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Page cache updated"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgWeekSelected  = "Week selected"

	PlaceholderURL   = "https://..."
	PlaceholderBirth = "YYYY-MM-DD"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyInterval  = "interval"
	LogKeyUser      = "user"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"
	LogKeyRoute     = "route"
	LogKeyWeek      = "week"
	LogKeyLived     = "weeks_lived"
	LogKeyCurrent   = "current_week"
	LogKeyPercent   = "percent_complete"
	LogKeyEvents    = "events"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompUISet    = "ui_settings"
	CompView     = "view"
	CompImporter = "importer"
	CompCalendar = "calendar"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompWorker   = "worker"
	CompRender   = "render"
	CompMain     = "main"
	CompI18n     = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
	LayoutMetricColumns = 4
)
