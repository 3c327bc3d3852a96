package main

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

// BuildDayCalendar renders one day's events as an iCalendar document so a
// day can be pulled into a regular calendar app. Events without an end get
// a zero-length VEVENT; inverted ranges are emitted exactly as imported.
func BuildDayCalendar(docID string, day time.Time, events []Event) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//retrace//timeline//EN")

	now := time.Now()
	for i, ev := range events {
		uid := fmt.Sprintf("%s-%s-%d", docID, day.Format("20060102"), i)
		ve := cal.AddEvent(uid)
		ve.SetDtStampTime(now)
		ve.SetStartAt(ev.Start)
		if ev.End != nil {
			ve.SetEndAt(*ev.End)
		} else {
			ve.SetEndAt(ev.Start)
		}
		ve.SetSummary(ev.Title)
		ve.SetDescription(ev.Subtitle)
		if ev.Point != nil {
			ve.SetLocation(fmt.Sprintf("%.7f, %.7f", ev.Point.Lat, ev.Point.Lon))
			ve.SetGeo(ev.Point.Lat, ev.Point.Lon)
		}
	}

	return cal.Serialize()
}
