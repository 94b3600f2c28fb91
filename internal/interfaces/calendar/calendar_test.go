package calendar

import (
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/riskibarqy/fbref-fixtures/internal/domain/fixture"
)

func TestEncode_OneAllDayEventPerFixture(t *testing.T) {
	fixtures := []fixture.Fixture{
		{Date: "2023-08-11", Round: "1", Home: "Burnley", Away: "Manchester City", Score: "0–3", Venue: "Turf Moor"},
		{Date: "", Round: "", Home: "", Away: "", Score: "", Venue: ""},
		{Date: "2024-05-19", Round: "38", Home: "West Ham", Away: "Manchester City", Venue: "London Stadium"},
	}

	feed, skipped := Encode("2023-2024", fixtures, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	if skipped != 1 {
		t.Fatalf("expected the spacer row to be skipped, got %d", skipped)
	}

	cal, err := ics.ParseCalendar(strings.NewReader(feed))
	if err != nil {
		t.Fatalf("parse feed: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	first := events[0]
	if got := first.GetProperty(ics.ComponentPropertySummary).Value; got != "Burnley 0–3 Manchester City" {
		t.Fatalf("unexpected summary: %q", got)
	}
	if got := first.GetProperty(ics.ComponentPropertyDtStart).Value; got != "20230811" {
		t.Fatalf("unexpected start: %q", got)
	}
	if got := first.GetProperty(ics.ComponentPropertyDtEnd).Value; got != "20230812" {
		t.Fatalf("unexpected end: %q", got)
	}
	if got := first.GetProperty(ics.ComponentPropertyLocation).Value; got != "Turf Moor" {
		t.Fatalf("unexpected location: %q", got)
	}
	if got := first.GetProperty(ics.ComponentPropertyUniqueId).Value; got != "2023-2024-001-burnley-manchester-city@fbref-fixtures" {
		t.Fatalf("unexpected uid: %q", got)
	}

	if got := events[1].GetProperty(ics.ComponentPropertySummary).Value; got != "West Ham vs Manchester City" {
		t.Fatalf("unplayed fixture should read as a pairing, got %q", got)
	}
}

func TestEncode_EmptySeasonIsValidFeed(t *testing.T) {
	feed, skipped := Encode("2023-2024", nil, time.Now())
	if skipped != 0 {
		t.Fatalf("unexpected skipped count: %d", skipped)
	}
	if !strings.HasPrefix(feed, "BEGIN:VCALENDAR") || !strings.Contains(feed, "END:VCALENDAR") {
		t.Fatalf("expected an empty calendar, got %q", feed)
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Nott'ham Forest":   "nott-ham-forest",
		" Brighton & Hove ": "brighton-hove",
		"2023-2024":         "2023-2024",
		"Atlético":          "atlético",
	}
	for in, want := range cases {
		if got := slug(in); got != want {
			t.Fatalf("slug(%q)=%q want %q", in, got, want)
		}
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("2023-2024"); got != "premier-league-2023-2024.ics" {
		t.Fatalf("unexpected filename: %q", got)
	}
}
