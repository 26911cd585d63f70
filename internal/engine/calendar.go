package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// MilestoneFormatter localizes event summaries so the engine stays free of
// translations. A nil formatter falls back to English.
type MilestoneFormatter interface {
	DecadeMilestone(band DecadeBand) string
	CurrentWeekMilestone(week, total int) string
	ExpectedEndMilestone() string
}

// BuildCalendar exports the grid milestones as an iCalendar document:
// the first day of every decade band, the current week and the projected end.
func BuildCalendar(s Summary, f MilestoneFormatter) ([]byte, error) {
	if f == nil {
		f = englishMilestones{}
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	// SetText would add VALUE=TEXT, which some clients ignore on X- properties.
	cal.Props.Set(&ical.Prop{Name: config.PropXWRCalName, Params: ical.Params{}, Value: config.ICalCalName})
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(s.Now.UTC())

	birthKey := FormatBirthDate(s.BirthDate)
	var events []*ical.Event

	for _, band := range DecadeBands() {
		start := WeekDateRange(band.FirstWeek(), s.BirthDate).Start
		e := newAllDayEvent(milestoneUID(birthKey, config.MilestoneDecade, band.Index), f.DecadeMilestone(band), start)
		events = append(events, e)
	}

	if s.HasCurrentWeek() {
		span := WeekDateRange(s.CurrentWeekNumber, s.BirthDate)
		e := newAllDayEvent(milestoneUID(birthKey, config.MilestoneCurrent, s.CurrentWeekNumber),
			f.CurrentWeekMilestone(s.CurrentWeekNumber, s.TotalWeeks), span.Start)
		// DTEND is exclusive for all-day events.
		endProp := ical.NewProp(config.PropDTEnd)
		endProp.SetDate(span.End.AddDate(0, 0, 1))
		e.Props.Set(endProp)
		events = append(events, e)
	}

	end := s.ProjectedEnd()
	events = append(events, newAllDayEvent(milestoneUID(birthKey, config.MilestoneEnd, s.TotalWeeks), f.ExpectedEndMilestone(), end))

	for _, e := range events {
		e.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, e.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgCalendarBuilt,
		config.LogKeyComponent, config.CompCalendar,
		config.LogKeyDOB, birthKey,
		config.LogKeyEvents, len(events),
	)
	return buf.Bytes(), nil
}

func newAllDayEvent(uid, summary string, day time.Time) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, uid)
	event.Props.SetText(config.PropSummary, summary)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(day)
	event.Props.Set(dtStartProp)
	return event
}

// milestoneUID is deterministic so calendar clients update events in place.
func milestoneUID(birth, kind string, index int) string {
	input := fmt.Sprintf(config.FormatHashInput, birth, kind, index, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), config.ICalDomain)
}

// englishMilestones is the formatter used when none is injected.
type englishMilestones struct{}

func (englishMilestones) DecadeMilestone(band DecadeBand) string {
	if band.IsBonus {
		return fmt.Sprintf(config.FallbackBonusDecade, band.StartAge, band.EndAge)
	}
	return fmt.Sprintf(config.FallbackDecade, band.StartAge, band.EndAge)
}

func (englishMilestones) CurrentWeekMilestone(week, total int) string {
	return fmt.Sprintf(config.FallbackCurrentWeek, week, total)
}

func (englishMilestones) ExpectedEndMilestone() string {
	return config.FallbackExpectedEnd
}
