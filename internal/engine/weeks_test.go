package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestComputeSummary covers the reference scenarios of the life grid.
func TestComputeSummary(t *testing.T) {
	birth := date(1991, 3, 18)

	tests := []struct {
		name        string
		now         time.Time
		wantLived   int
		wantCurrent int
		wantAge     int
	}{
		{"Birth day", birth, 0, 1, 0},
		{"Six days later", birth.AddDate(0, 0, 6), 0, 1, 0},
		{"One week later", birth.AddDate(0, 0, 7), 1, 2, 0},
		{"Ten years later", date(2001, 3, 18), 521, 522, 10},
		{"Mid June 2025", time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC), 1786, 1787, 34},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ComputeSummary(birth, tt.now)
			assert.Equal(t, tt.wantLived, s.WeeksLived)
			assert.Equal(t, tt.wantCurrent, s.CurrentWeekNumber)
			assert.Equal(t, tt.wantCurrent, s.WeeksLived+1, "current week follows the last lived week")
			assert.Equal(t, tt.wantAge, s.CurrentAge)
			assert.Equal(t, config.TotalWeeks, s.TotalWeeks)
			assert.Equal(t, config.TotalWeeks-tt.wantLived, s.WeeksRemaining)
		})
	}
}

func TestComputeSummary_DerivedFigures(t *testing.T) {
	birth := date(1991, 3, 18)

	s := ComputeSummary(birth, date(2001, 3, 18))
	assert.InDelta(t, 10.0, s.PercentComplete, 0.05, "Ten years is about 10% of the grid")
	assert.Equal(t, 2090, s.ProjectedEndYear)
	assert.Equal(t, date(2090, 11, 13), s.ProjectedEnd())

	s = ComputeSummary(birth, time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, 65, s.YearsRemaining, "floor(3414 / 52)")
	assert.InDelta(t, 34.346, s.PercentComplete, 0.001)
}

func TestComputeSummary_DaysLeftInWeek(t *testing.T) {
	birth := date(1991, 3, 18)

	// 1991-03-18 is a Monday, 2025-06-15 is a Sunday.
	assert.Equal(t, 6, ComputeSummary(birth, birth).DaysLeftInWeek)
	assert.Equal(t, 7, ComputeSummary(birth, date(2025, 6, 15)).DaysLeftInWeek)
	assert.Equal(t, 1, ComputeSummary(birth, date(2025, 6, 14)).DaysLeftInWeek)
}

// TestComputeSummary_BeforeBirth checks that negative elapsed time floors
// instead of truncating toward zero.
func TestComputeSummary_BeforeBirth(t *testing.T) {
	birth := date(2030, 1, 1)

	s := ComputeSummary(birth, birth.Add(-time.Hour))
	assert.Equal(t, 0, s.WeeksLived)
	assert.Equal(t, 0, s.CurrentWeekNumber, "one hour before birth is elapsed week -1")
	assert.Equal(t, 1, s.DisplayWeekNumber())
	assert.False(t, s.HasCurrentWeek())
	assert.Equal(t, -1, s.CurrentAge)

	s = ComputeSummary(birth, birth.AddDate(0, 0, -15))
	assert.Equal(t, -2, s.CurrentWeekNumber)
	assert.Equal(t, config.TotalWeeks, s.WeeksRemaining)
}

func TestComputeSummary_AfterGrid(t *testing.T) {
	birth := date(1900, 1, 1)
	now := WeekDateRange(config.TotalWeeks+3, birth).Start

	s := ComputeSummary(birth, now)
	assert.Equal(t, config.TotalWeeks+2, s.WeeksLived)
	assert.Equal(t, config.TotalWeeks+3, s.CurrentWeekNumber)
	assert.False(t, s.HasCurrentWeek())
	assert.Equal(t, -2, s.WeeksRemaining)
	assert.Equal(t, -1, s.YearsRemaining, "floor division keeps negatives consistent")
}

func TestWeekDateRange(t *testing.T) {
	birth := date(1991, 3, 18)

	first := WeekDateRange(1, birth)
	assert.Equal(t, birth, first.Start)
	assert.Equal(t, date(1991, 3, 24), first.End)

	bonus := WeekDateRange(4161, birth)
	assert.Equal(t, date(2070, 12, 8), bonus.Start)

	for n := 1; n < config.TotalWeeks; n++ {
		r := WeekDateRange(n, birth)
		next := WeekDateRange(n+1, birth)
		require.Equal(t, 6*24*time.Hour, r.End.Sub(r.Start), "week %d must span 6 days", n)
		require.Equal(t, 7*24*time.Hour, next.Start.Sub(r.Start), "week %d must start 7 days after week %d", n+1, n)
	}
}

func TestAgeAtWeek(t *testing.T) {
	tests := []struct {
		week int
		age  int
	}{
		{1, 0},
		{52, 0},
		{53, 1},
		{520, 9},
		{521, 10},
		{4160, 79},
		{4161, 80},
		{5200, 99},
		{0, -1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.age, AgeAtWeek(tt.week), "week %d", tt.week)
	}

	for n := 1; n <= config.TotalWeeks; n++ {
		age := AgeAtWeek(n)
		require.GreaterOrEqual(t, age, 0)
		require.LessOrEqual(t, age, config.MaxAge)
	}
}

func TestClassifyWeek(t *testing.T) {
	birth := date(1991, 3, 18)
	s := ComputeSummary(birth, time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))

	lived := ClassifyWeek(1786, s)
	assert.True(t, lived.IsLived)
	assert.False(t, lived.IsCurrent)
	assert.Equal(t, StateLived, lived.State())

	current := ClassifyWeek(1787, s)
	assert.True(t, current.IsCurrent)
	assert.Equal(t, StateCurrent, current.State())
	assert.Equal(t, 34, current.Age)
	assert.Equal(t, 1787-34*52, current.WeekInYear)
	assert.Equal(t, date(2025, 6, 9), current.Start)
	assert.Equal(t, date(2025, 6, 15), current.End)

	remaining := ClassifyWeek(1788, s)
	assert.False(t, remaining.IsLived)
	assert.Equal(t, StateRemaining, remaining.State())
	assert.Equal(t, "remaining", remaining.State().String())
}

func TestClassifyWeek_CurrentWinsOverLived(t *testing.T) {
	rec := WeekRecord{IsLived: true, IsCurrent: true}
	assert.Equal(t, StateCurrent, rec.State())
}

func TestClassifyWeek_BonusDecade(t *testing.T) {
	s := ComputeSummary(date(1991, 3, 18), date(1991, 3, 18))

	assert.False(t, ClassifyWeek(4160, s).IsBonusDecade, "age 79")
	assert.True(t, ClassifyWeek(4161, s).IsBonusDecade, "age 80")
	assert.True(t, ClassifyWeek(5200, s).IsBonusDecade)
}

func TestDecadeBands(t *testing.T) {
	bands := DecadeBands()
	require.Len(t, bands, config.DecadeCount)

	assert.Equal(t, DecadeBand{Index: 0, StartAge: 0, EndAge: 9}, bands[0])
	assert.Equal(t, DecadeBand{Index: 8, StartAge: 80, EndAge: 89, IsBonus: true}, bands[8])
	assert.Equal(t, DecadeBand{Index: 9, StartAge: 90, EndAge: 99, IsBonus: true}, bands[9])
	assert.False(t, bands[7].IsBonus)
	assert.Equal(t, 4161, bands[8].FirstWeek())
}

func TestEnumerateGrid(t *testing.T) {
	s := ComputeSummary(date(1991, 3, 18), time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))

	count := 0
	currentCount := 0
	perBand := map[int]int{}
	expected := 1
	for band, rec := range EnumerateGrid(s) {
		require.Equal(t, expected, rec.Index, "weeks must be emitted in order")
		require.Equal(t, band.Index, rec.Age/config.YearsPerDecade)
		require.Equal(t, band.IsBonus, rec.IsBonusDecade)
		if rec.IsCurrent {
			currentCount++
		}
		perBand[band.Index]++
		expected++
		count++
	}

	assert.Equal(t, config.TotalWeeks, count)
	assert.Equal(t, 1, currentCount, "exactly one current week inside the grid")
	for i := range config.DecadeCount {
		assert.Equal(t, config.WeeksPerDecade, perBand[i])
	}
}

func TestEnumerateGrid_Restartable(t *testing.T) {
	s := ComputeSummary(date(1991, 3, 18), date(2001, 3, 18))
	seq := EnumerateGrid(s)

	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	assert.Equal(t, first, second)
}

func TestEnumerateGrid_EarlyStop(t *testing.T) {
	s := ComputeSummary(date(1991, 3, 18), date(2001, 3, 18))

	seen := 0
	for _, rec := range EnumerateGrid(s) {
		seen++
		if rec.Index == 10 {
			break
		}
	}
	assert.Equal(t, 10, seen)
}

func TestEnumerateGrid_NoCurrentOutsideGrid(t *testing.T) {
	birth := date(2030, 1, 1)
	s := ComputeSummary(birth, birth.AddDate(0, 0, -30))

	for _, rec := range EnumerateGrid(s) {
		require.False(t, rec.IsCurrent)
		require.False(t, rec.IsLived)
	}
}

// TestDecadeWeeks_BoundedOnTotal shrinks the grid to make sure the
// enumeration stops on TotalWeeks instead of assuming 520 weeks per band.
func TestDecadeWeeks_BoundedOnTotal(t *testing.T) {
	s := ComputeSummary(date(1991, 3, 18), date(2001, 3, 18))
	s.TotalWeeks = 100

	var got []int
	for _, band := range DecadeBands() {
		for rec := range band.Weeks(s) {
			got = append(got, rec.Index)
		}
	}
	assert.Len(t, got, 100)
	assert.Equal(t, 100, got[len(got)-1])
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, int64(1), floorDiv64(7, 7))
	assert.Equal(t, int64(0), floorDiv64(6, 7))
	assert.Equal(t, int64(-1), floorDiv64(-1, 7))
	assert.Equal(t, int64(-1), floorDiv64(-7, 7))
	assert.Equal(t, int64(-2), floorDiv64(-8, 7))
	assert.Equal(t, -1, floorDiv(-1, 52))
}
