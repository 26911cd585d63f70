package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
// This prevents accidental deletion of keys required for runtime or UI logic.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"KeyringService", config.KeyringService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestGrid_Geometry pins the shape of the life grid. Every renderer relies on
// 100 rows of 52 weeks split into ten bands.
func TestGrid_Geometry(t *testing.T) {
	assert.Equal(t, 5200, config.TotalWeeks)
	assert.Equal(t, config.TotalWeeks, config.WeeksPerYear*(config.MaxAge+1))
	assert.Equal(t, config.TotalWeeks, config.WeeksPerDecade*config.DecadeCount)
	assert.Equal(t, int64(7*24*time.Hour/time.Millisecond), config.WeekMillis)
	assert.Equal(t, 80, config.BonusDecadeStart)
	assert.Zero(t, config.BonusDecadeStart%config.YearsPerDecade, "the bonus zone starts on a band boundary")
}

func TestMonthMarkers(t *testing.T) {
	assert.Len(t, config.MonthMarkerWeeks, 12)
	for i := 1; i < len(config.MonthMarkerWeeks); i++ {
		assert.Greater(t, config.MonthMarkerWeeks[i], config.MonthMarkerWeeks[i-1])
		assert.Less(t, config.MonthMarkerWeeks[i], config.WeeksPerYear)
	}
}

// TestDefaults_Sanity checks that default values make sense logically.
func TestDefaults_Sanity(t *testing.T) {
	assert.Greater(t, config.DefaultRefreshMin, 0, "Default refresh interval must be positive")

	_, err := time.Parse(config.BirthDateLayout, config.DefaultBirthDate)
	assert.NoError(t, err, "DefaultBirthDate must parse with BirthDateLayout")

	assert.Equal(t, 30*time.Second, config.HTTPTimeout)
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-LifeWeeks/"), "UserAgent must start with AppName/")
}

// TestTimeoutsAndLimits ensures that operational constraints are reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")

	// A contact card is small; the cap only guards against endless streams.
	assert.GreaterOrEqual(t, int64(config.MaxHTTPResponseSize), int64(1024*1024), "MaxHTTPResponseSize should fit a card with a photo")
	assert.Less(t, int64(config.MaxHTTPResponseSize), int64(1*1024*1024*1024), "MaxHTTPResponseSize should stay under 1GB to protect RAM")
}
