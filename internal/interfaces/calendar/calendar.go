// Package calendar renders fixture lists as iCalendar feeds.
package calendar

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	ics "github.com/arran4/golang-ical"
	"github.com/riskibarqy/fbref-fixtures/internal/domain/fixture"
)

const ContentType = "text/calendar; charset=utf-8"

// Encode returns one all-day event per fixture. Rows without a YYYY-MM-DD
// date or without both teams (spacer rows, repeated headers) are left out and
// counted in skipped.
func Encode(season string, fixtures []fixture.Fixture, now time.Time) (feed string, skipped int) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//fbref-fixtures//Premier League schedule//EN")
	cal.SetXWRCalName("Premier League " + season)

	for i, f := range fixtures {
		day, err := time.Parse(time.DateOnly, f.Date)
		if err != nil || f.Home == "" || f.Away == "" {
			skipped++
			continue
		}

		event := cal.AddEvent(eventUID(season, i, f))
		event.SetDtStampTime(now.UTC())
		event.SetProperty(ics.ComponentPropertyDtStart, day.Format("20060102"), ics.WithValue(string(ics.ValueDataTypeDate)))
		event.SetProperty(ics.ComponentPropertyDtEnd, day.AddDate(0, 0, 1).Format("20060102"), ics.WithValue(string(ics.ValueDataTypeDate)))
		event.SetSummary(summary(f))
		if f.Venue != "" {
			event.SetLocation(f.Venue)
		}
		if f.Round != "" {
			event.SetDescription("Matchweek " + f.Round)
		}
	}

	return cal.Serialize(), skipped
}

// Filename is the attachment name offered for a season's feed.
func Filename(season string) string {
	return "premier-league-" + slug(season) + ".ics"
}

func summary(f fixture.Fixture) string {
	if f.Score == "" {
		return f.Home + " vs " + f.Away
	}
	return f.Home + " " + f.Score + " " + f.Away
}

// eventUID stays stable across re-scrapes of the same schedule so calendar
// clients update events instead of duplicating them.
func eventUID(season string, index int, f fixture.Fixture) string {
	return fmt.Sprintf("%s-%03d-%s-%s@fbref-fixtures", slug(season), index+1, slug(f.Home), slug(f.Away))
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
