// Package feed renders a month of event occurrences as an iCalendar feed.
// Weekly events become a single VEVENT carrying an RRULE; everything else
// becomes one VEVENT per occurrence day.
package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/zneright/tourkita-core/internal/model"
	"github.com/zneright/tourkita-core/internal/temporal"
)

const productID = "-//TourKita//Event Calendar//EN"

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// Labeler supplies the location line of a VEVENT.
type Labeler func(ev model.Event) string

// DefaultLabel uses the event's own address fields without a store lookup.
func DefaultLabel(ev model.Event) string {
	if ev.CustomAddress != nil && ev.CustomAddress.Label != "" {
		return ev.CustomAddress.Label
	}
	return ev.Address
}

// BuildMonthCalendar assembles the calendar for one month. Events that never
// occur inside the month are skipped.
func BuildMonthCalendar(events []model.Event, year int, month time.Month, label Labeler) *ics.Calendar {
	if label == nil {
		label = DefaultLabel
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	for _, ev := range events {
		occurrences := temporal.OccurrencesInRange(ev, first, last)
		if len(occurrences) == 0 {
			continue
		}

		if rule, ok := weeklyRule(ev); ok {
			vevent := cal.AddEvent(fmt.Sprintf("%s@tourkita", ev.ID))
			fillEvent(vevent, ev, occurrences[0], label)
			vevent.AddRrule(rule)
			continue
		}

		for _, day := range occurrences {
			vevent := cal.AddEvent(fmt.Sprintf("%s-%s@tourkita", ev.ID, day.Format("20060102")))
			fillEvent(vevent, ev, day, label)
		}
	}

	return cal
}

func fillEvent(vevent *ics.VEvent, ev model.Event, day time.Time, label Labeler) {
	vevent.SetSummary(ev.Title)
	vevent.SetStartAt(withTime(day, ev.StartTime, "00:00"))
	vevent.SetEndAt(withTime(day, ev.EndTime, "23:59"))
	if ev.Description != "" {
		vevent.SetDescription(ev.Description)
	}
	if loc := label(ev); loc != "" {
		vevent.SetLocation(loc)
	}
	if ev.ImageURL != "" {
		vevent.SetURL(ev.ImageURL)
	}
}

// weeklyRule builds the RRULE value for a weekly event. The rule runs until
// the end of the event's own span, not the rendered month.
func weeklyRule(ev model.Event) (string, bool) {
	if ev.Recurrence == nil || ev.Recurrence.Frequency != model.FrequencyWeekly {
		return "", false
	}
	days := make([]rrule.Weekday, 0, len(ev.Recurrence.DaysOfWeek))
	for _, name := range ev.Recurrence.DaysOfWeek {
		if wd, ok := model.ParseWeekday(name); ok {
			days = append(days, rruleWeekdays[wd])
		}
	}
	if len(days) == 0 {
		return "", false
	}

	_, until, ok := temporal.Span(ev)
	if !ok {
		return "", false
	}
	opt := rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: days,
		Until:     until.Add(24*time.Hour - time.Second),
	}
	return opt.String(), true
}

// withTime anchors an "HH:MM" string onto a calendar day.
func withTime(day time.Time, hm, fallback string) time.Time {
	if hm == "" {
		hm = fallback
	}
	parts := strings.SplitN(hm, ":", 2)
	if len(parts) != 2 {
		return day
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return day
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return day
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}
