package locale

import (
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
)

// Number groups digits the way the language expects (5,200 or 5 200).
func (t *Translator) Number(n int) string {
	return t.printer.Sprintf("%d", n)
}

// Percent formats a percentage with one decimal, without the sign.
func (t *Translator) Percent(p float64) string {
	return t.printer.Sprintf("%.1f", p)
}

// ShortDate renders "Mar 18, 1991" style dates.
func (t *Translator) ShortDate(d time.Time) string {
	return t.Tmpl(config.TKeyDateShort, map[string]any{
		"Month": pick(t.List(config.TKeyMonthsShort), int(d.Month())-1),
		"Day":   d.Day(),
		"Year":  d.Year(),
	})
}

// FullDate renders "Monday, March 18, 1991" style dates.
func (t *Translator) FullDate(d time.Time) string {
	return t.Tmpl(config.TKeyDateFull, map[string]any{
		"Weekday": pick(t.List(config.TKeyWeekdays), int(d.Weekday())),
		"Month":   pick(t.List(config.TKeyMonthsLong), int(d.Month())-1),
		"Day":     d.Day(),
		"Year":    d.Year(),
	})
}

// MonthInitials returns the twelve single letter month markers.
func (t *Translator) MonthInitials() []string {
	return t.List(config.TKeyMonthInitials)
}

// Headline is "Week N of 5,200".
func (t *Translator) Headline(s engine.Summary) string {
	return t.Tmpl(config.TKeyHeadline, map[string]any{
		"Week":  t.Number(s.DisplayWeekNumber()),
		"Total": t.Number(s.TotalWeeks),
	})
}

// UsedLeft is the "used, left, years" summary line.
func (t *Translator) UsedLeft(s engine.Summary) string {
	return t.Tmpl(config.TKeyUsedLeft, map[string]any{
		"Used":  t.Number(s.WeeksLived),
		"Left":  t.Number(s.WeeksRemaining),
		"Years": s.YearsRemaining,
	})
}

// AgeProgress is the "age, progress" summary line.
func (t *Translator) AgeProgress(s engine.Summary) string {
	return t.Tmpl(config.TKeyAgeProgress, map[string]any{
		"Age":     s.CurrentAge,
		"Percent": t.Percent(s.PercentComplete),
	})
}

// RealityCheck reminds the reader how many days are left in this week.
func (t *Translator) RealityCheck(s engine.Summary) string {
	return t.Plural(config.TKeyRealityCheck, s.DaysLeftInWeek, nil)
}

// LegendUsed and LegendRemaining carry the counters shown in the legend.
func (t *Translator) LegendUsed(s engine.Summary) string {
	return t.Tmpl(config.TKeyLegendUsed, map[string]any{"Count": t.Number(s.WeeksLived)})
}

func (t *Translator) LegendRemaining(s engine.Summary) string {
	return t.Tmpl(config.TKeyLegendRemaining, map[string]any{"Count": t.Number(s.WeeksRemaining)})
}

// DecadeRange is the short "0-9" row label.
func (t *Translator) DecadeRange(b engine.DecadeBand) string {
	return t.Tmpl(config.TKeyDecadeRange, bandData(b))
}

// DecadeCaption is the longer description next to a band.
func (t *Translator) DecadeCaption(b engine.DecadeBand) string {
	if b.IsBonus {
		return t.Tmpl(config.TKeyDecadeBonus, bandData(b))
	}
	return t.Tmpl(config.TKeyDecadeAges, bandData(b))
}

// WeekTooltip describes one cell: index, age, week of year and full dates.
func (t *Translator) WeekTooltip(rec engine.WeekRecord) string {
	tip := t.Tmpl(config.TKeyWeekTooltip, map[string]any{
		"Week":       rec.Index,
		"Age":        rec.Age,
		"WeekInYear": rec.WeekInYear,
		"Start":      t.FullDate(rec.Start),
		"End":        t.FullDate(rec.End),
	})
	if rec.IsBonusDecade {
		tip += "\n" + t.Msg(config.TKeyBonusTooltip)
	}
	return tip
}

// DecadeMilestone implements engine.MilestoneFormatter.
func (t *Translator) DecadeMilestone(b engine.DecadeBand) string {
	if b.IsBonus {
		return t.Tmpl(config.TKeyEvtBonusDecade, bandData(b))
	}
	return t.Tmpl(config.TKeyEvtDecade, bandData(b))
}

// CurrentWeekMilestone implements engine.MilestoneFormatter.
func (t *Translator) CurrentWeekMilestone(week, total int) string {
	return t.Tmpl(config.TKeyEvtCurrentWeek, map[string]any{"Week": week, "Total": total})
}

// ExpectedEndMilestone implements engine.MilestoneFormatter.
func (t *Translator) ExpectedEndMilestone() string {
	return t.Msg(config.TKeyEvtExpectedEnd)
}

func bandData(b engine.DecadeBand) map[string]any {
	return map[string]any{"Start": b.StartAge, "End": b.EndAge}
}

func pick(list []string, i int) string {
	if i < 0 || i >= len(list) {
		return ""
	}
	return list[i]
}
