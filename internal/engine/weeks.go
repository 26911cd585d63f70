package engine

import (
	"iter"
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// State is the visual category a renderer picks for a week cell.
type State int

const (
	StateRemaining State = iota
	StateLived
	StateCurrent
)

// String returns the lowercase name, also used as the CSS class of a cell.
func (s State) String() string {
	switch s {
	case StateLived:
		return "lived"
	case StateCurrent:
		return "current"
	default:
		return "remaining"
	}
}

// Summary holds the figures derived from a birth date and a sampled "now".
// It is an immutable snapshot: a new one is computed on every input change.
type Summary struct {
	BirthDate time.Time
	Now       time.Time

	// WeeksLived is max(0, floor((now - birth) / 7 days)).
	WeeksLived int

	// CurrentWeekNumber is elapsedWeeks + 1 and is not clamped: it is <= 0
	// before birth and > TotalWeeks after the grid ends.
	CurrentWeekNumber int

	TotalWeeks       int
	WeeksRemaining   int
	PercentComplete  float64
	YearsRemaining   int
	ProjectedEndYear int
	CurrentAge       int

	// DaysLeftInWeek counts down to the next Sunday (7 on Sundays).
	DaysLeftInWeek int
}

// DisplayWeekNumber is the current week clamped to at least 1 for headlines.
func (s Summary) DisplayWeekNumber() int {
	return max(1, s.CurrentWeekNumber)
}

// HasCurrentWeek reports whether the current week falls inside the grid.
func (s Summary) HasCurrentWeek() bool {
	return s.CurrentWeekNumber >= 1 && s.CurrentWeekNumber <= s.TotalWeeks
}

// ProjectedEnd is the instant the last grid week ends.
func (s Summary) ProjectedEnd() time.Time {
	return addMillis(s.BirthDate, int64(s.TotalWeeks)*config.WeekMillis)
}

// WeekRecord describes one cell of the grid.
type WeekRecord struct {
	Index         int
	Start         time.Time
	End           time.Time
	Age           int
	WeekInYear    int
	IsLived       bool
	IsCurrent     bool
	IsBonusDecade bool
}

// State picks one category per cell. Current takes precedence over lived.
func (w WeekRecord) State() State {
	switch {
	case w.IsCurrent:
		return StateCurrent
	case w.IsLived:
		return StateLived
	default:
		return StateRemaining
	}
}

// DateRange is the first and last day of a grid week.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ComputeSummary derives the grid figures. It never fails; a birth date after
// now simply yields zero lived weeks.
func ComputeSummary(birth, now time.Time) Summary {
	elapsedWeeks := floorDiv64(now.UnixMilli()-birth.UnixMilli(), config.WeekMillis)
	weeksLived := int(max(0, elapsedWeeks))
	current := int(elapsedWeeks) + 1
	remaining := config.TotalWeeks - weeksLived

	s := Summary{
		BirthDate:         birth,
		Now:               now,
		WeeksLived:        weeksLived,
		CurrentWeekNumber: current,
		TotalWeeks:        config.TotalWeeks,
		WeeksRemaining:    remaining,
		PercentComplete:   float64(weeksLived) / float64(config.TotalWeeks) * 100,
		YearsRemaining:    floorDiv(remaining, config.WeeksPerYear),
		CurrentAge:        AgeAtWeek(current),
		DaysLeftInWeek:    config.DaysPerWeek - int(now.Weekday()),
	}
	s.ProjectedEndYear = s.ProjectedEnd().Year()
	return s
}

// WeekDateRange returns the span of week weekIndex (1-based):
// start = birth + (index-1)*7 days, end = start + 6 days.
func WeekDateRange(weekIndex int, birth time.Time) DateRange {
	start := addMillis(birth, int64(weekIndex-1)*config.WeekMillis)
	end := addMillis(start, int64(config.DaysPerWeek-1)*config.DayMillis)
	return DateRange{Start: start, End: end}
}

// AgeAtWeek is floor((weekIndex-1)/52).
func AgeAtWeek(weekIndex int) int {
	return floorDiv(weekIndex-1, config.WeeksPerYear)
}

// ClassifyWeek builds the record of week weekIndex against a summary.
func ClassifyWeek(weekIndex int, s Summary) WeekRecord {
	age := AgeAtWeek(weekIndex)
	span := WeekDateRange(weekIndex, s.BirthDate)
	return WeekRecord{
		Index:         weekIndex,
		Start:         span.Start,
		End:           span.End,
		Age:           age,
		WeekInYear:    weekIndex - age*config.WeeksPerYear,
		IsLived:       weekIndex <= s.WeeksLived,
		IsCurrent:     weekIndex == s.CurrentWeekNumber,
		IsBonusDecade: age >= config.BonusDecadeStart,
	}
}

// -----------------------------------------------------------------------------
// Decade bands
// -----------------------------------------------------------------------------

// DecadeBand groups ten consecutive ages of the grid.
type DecadeBand struct {
	Index    int
	StartAge int
	EndAge   int
	IsBonus  bool
}

// DecadeBands returns the ten bands, the last one capped at age 99.
func DecadeBands() []DecadeBand {
	bands := make([]DecadeBand, 0, config.DecadeCount)
	for i := range config.DecadeCount {
		start := i * config.YearsPerDecade
		bands = append(bands, DecadeBand{
			Index:    i,
			StartAge: start,
			EndAge:   min(start+config.YearsPerDecade-1, config.MaxAge),
			IsBonus:  start >= config.BonusDecadeStart,
		})
	}
	return bands
}

// FirstWeek is the index of the first week of the band.
func (d DecadeBand) FirstWeek() int {
	return d.StartAge*config.WeeksPerYear + 1
}

// Weeks yields the records of the band row-major (year, then week in year).
// The sequence is bounded on TotalWeeks and the maximum age rather than on the
// band size, so it may yield fewer than 520 records.
func (d DecadeBand) Weeks(s Summary) iter.Seq[WeekRecord] {
	return func(yield func(WeekRecord) bool) {
		for year := range config.YearsPerDecade {
			age := d.StartAge + year
			if age > config.MaxAge {
				return
			}
			for week := range config.WeeksPerYear {
				index := age*config.WeeksPerYear + week + 1
				if index > s.TotalWeeks {
					return
				}
				if !yield(ClassifyWeek(index, s)) {
					return
				}
			}
		}
	}
}

// EnumerateGrid yields every week of the grid paired with its decade band.
// Each call restarts from week 1.
func EnumerateGrid(s Summary) iter.Seq2[DecadeBand, WeekRecord] {
	return func(yield func(DecadeBand, WeekRecord) bool) {
		for _, band := range DecadeBands() {
			for rec := range band.Weeks(s) {
				if !yield(band, rec) {
					return
				}
			}
		}
	}
}

// -----------------------------------------------------------------------------
// Arithmetic helpers
// -----------------------------------------------------------------------------

func addMillis(t time.Time, ms int64) time.Time {
	return t.Add(time.Duration(ms) * time.Millisecond)
}

// floorDiv64 rounds toward negative infinity, unlike Go's truncating division.
func floorDiv64(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorDiv(a, b int) int {
	return int(floorDiv64(int64(a), int64(b)))
}
