package locale_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/locale"
)

var translationKeys = []string{
	config.TKeyWinTitle,
	config.TKeyWinSettings,
	config.TKeyHeadline,
	config.TKeyUsedLeft,
	config.TKeyAgeProgress,
	config.TKeyLegendUsed,
	config.TKeyLegendNow,
	config.TKeyLegendRemaining,
	config.TKeyRealityCheck,
	config.TKeyMetricWeeksLeft,
	config.TKeyMetricPercent,
	config.TKeyMetricYearsLeft,
	config.TKeyMetricEnd,
	config.TKeyDecadeRange,
	config.TKeyDecadeAges,
	config.TKeyDecadeBonus,
	config.TKeyBonusBadge,
	config.TKeyWeekTooltip,
	config.TKeyBonusTooltip,
	config.TKeyDateShort,
	config.TKeyDateFull,
	config.TKeyMonthInitials,
	config.TKeyMonthsShort,
	config.TKeyMonthsLong,
	config.TKeyWeekdays,
	config.TKeyLblBirthDate,
	config.TKeyBtnImport,
	config.TKeyBtnImportWeb,
	config.TKeyBtnSettings,
	config.TKeyBtnSave,
	config.TKeyBtnCancel,
	config.TKeyBtnShow,
	config.TKeyLblLanguage,
	config.TKeyHelpLanguage,
	config.TKeyLblPort,
	config.TKeyHelpPort,
	config.TKeyLblGeneral,
	config.TKeyLblSource,
	config.TKeyLblURL,
	config.TKeyHelpURL,
	config.TKeyLblUser,
	config.TKeyLblPass,
	config.TKeyLblFooter,
	config.TKeyHintTapWeek,
	config.TKeyImported,
	config.TKeyErrBirthDate,
	config.TKeyErrImport,
	config.TKeyEvtDecade,
	config.TKeyEvtBonusDecade,
	config.TKeyEvtCurrentWeek,
	config.TKeyEvtExpectedEnd,
	config.TKeyErrPortReq,
	config.TKeyErrPortNum,
	config.TKeyErrPortRange,
}

// TestI18nIntegrity ensures that every translation key defined in config.go
// exists in every locale file, and that list messages have the right length.
func TestI18nIntegrity(t *testing.T) {
	definedKeys := make(map[string]bool)
	for _, k := range translationKeys {
		definedKeys[k] = true
	}

	for _, lang := range locale.Languages() {
		t.Run(lang, func(t *testing.T) {
			content, err := os.ReadFile(filepath.Join("locales", "active."+lang+".json"))
			require.NoError(t, err, "Must load active.%s.json", lang)

			var jsonMap map[string]any
			require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")

			for key := range definedKeys {
				_, exists := jsonMap[key]
				assert.Truef(t, exists, "Key '%s' defined in config.go is missing in active.%s.json", key, lang)
			}

			for jsonKey := range jsonMap {
				if strings.HasPrefix(jsonKey, "_") {
					continue
				}
				if !definedKeys[jsonKey] {
					t.Logf("Warning: Key '%s' exists in JSON but is not checked in the test suite (might be unused)", jsonKey)
				}
			}

			tr := locale.New(lang)
			assert.Len(t, tr.MonthInitials(), 12)
			assert.Len(t, tr.List(config.TKeyMonthsShort), 12)
			assert.Len(t, tr.List(config.TKeyMonthsLong), 12)
			assert.Len(t, tr.List(config.TKeyWeekdays), 7)
		})
	}
}

func TestLanguages(t *testing.T) {
	langs := locale.Languages()
	assert.Equal(t, []string{"en", "fr"}, langs)
	assert.True(t, locale.Supported("fr"))
	assert.False(t, locale.Supported("de"))
}

func TestNew_UnknownLanguageFallsBack(t *testing.T) {
	tr := locale.New("de")
	assert.Equal(t, config.DefaultLanguage, tr.Lang)
	assert.Equal(t, "Life in Weeks", tr.Msg(config.TKeyWinTitle))
}

func TestMsg_MissingKeyReturnsKey(t *testing.T) {
	tr := locale.New("en")
	assert.Equal(t, "no_such_key", tr.Msg("no_such_key"))

	var nilTr *locale.Translator
	assert.Equal(t, config.TKeyWinTitle, nilTr.Msg(config.TKeyWinTitle))
}

func TestNumberFormatting(t *testing.T) {
	tr := locale.New("en")
	assert.Equal(t, "5,200", tr.Number(5200))
	assert.Equal(t, "52", tr.Number(52))
	assert.Equal(t, "10.0", tr.Percent(10.02))
	assert.Equal(t, "34.3", tr.Percent(34.346))
}

func TestDates(t *testing.T) {
	tr := locale.New("en")
	d := time.Date(1991, 3, 18, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Mar 18, 1991", tr.ShortDate(d))
	assert.Equal(t, "Monday, March 18, 1991", tr.FullDate(d))

	fr := locale.New("fr")
	assert.Equal(t, "18 mars 1991", fr.ShortDate(d))
	assert.Equal(t, "lundi 18 mars 1991", fr.FullDate(d))
}

func TestSummaryLines(t *testing.T) {
	tr := locale.New("en")
	birth := time.Date(1991, 3, 18, 0, 0, 0, 0, time.UTC)
	s := engine.ComputeSummary(birth, time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, "Week 1,787 of 5,200", tr.Headline(s))
	assert.Equal(t, "1,786 used • 3,414 left • 65 years", tr.UsedLeft(s))
	assert.Equal(t, "Age: 34 • Progress: 34.3%", tr.AgeProgress(s))
	assert.Equal(t, "Used (1,786)", tr.LegendUsed(s))
	assert.Equal(t, "Remaining (3,414)", tr.LegendRemaining(s))
	assert.Equal(t, "This week ends in 7 days. What are you building?", tr.RealityCheck(s))

	s.DaysLeftInWeek = 1
	assert.Equal(t, "This week ends in 1 day. What are you building?", tr.RealityCheck(s))
}

func TestDecadeLabels(t *testing.T) {
	tr := locale.New("en")
	bands := engine.DecadeBands()

	assert.Equal(t, "0-9", tr.DecadeRange(bands[0]))
	assert.Equal(t, "Ages 0 to 9", tr.DecadeCaption(bands[0]))
	assert.Equal(t, "Bonus years 80 to 89 - Grace and wisdom", tr.DecadeCaption(bands[8]))
	assert.Equal(t, "Bonus years 90 to 99", tr.DecadeMilestone(bands[9]))
	assert.Equal(t, "Ages 10 to 19", tr.DecadeMilestone(bands[1]))
}

func TestWeekTooltip(t *testing.T) {
	tr := locale.New("en")
	birth := time.Date(1991, 3, 18, 0, 0, 0, 0, time.UTC)
	s := engine.ComputeSummary(birth, birth)

	tip := tr.WeekTooltip(engine.ClassifyWeek(1, s))
	assert.Equal(t, "Week 1 (Age 0, Week 1)\nMonday, March 18, 1991 - Sunday, March 24, 1991", tip)

	bonus := tr.WeekTooltip(engine.ClassifyWeek(4161, s))
	assert.True(t, strings.HasPrefix(bonus, "Week 4161 (Age 80, Week 1)\n"))
	assert.True(t, strings.HasSuffix(bonus, "\n🎁 BONUS DECADE - A gift of time"))
}

func TestMilestoneFormatter(t *testing.T) {
	var f engine.MilestoneFormatter = locale.New("fr")

	assert.Equal(t, "Semaine 1787 sur 5200", f.CurrentWeekMilestone(1787, 5200))
	assert.Equal(t, "Fin prévue", f.ExpectedEndMilestone())
}
