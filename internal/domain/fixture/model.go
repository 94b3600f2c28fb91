package fixture

import "strings"

// Column names the schedule table must expose.
const (
	ColumnDate  = "Date"
	ColumnRound = "Round"
	ColumnHome  = "Home"
	ColumnAway  = "Away"
	ColumnScore = "Score"
	ColumnVenue = "Venue"
)

// RequiredColumns lists the schedule columns mapped into a Fixture.
var RequiredColumns = [...]string{
	ColumnDate,
	ColumnRound,
	ColumnHome,
	ColumnAway,
	ColumnScore,
	ColumnVenue,
}

// Fixture is one scheduled or played match. Every field is always present;
// values missing upstream are empty strings.
type Fixture struct {
	Date  string `json:"date"`
	Round string `json:"round"`
	Home  string `json:"home"`
	Away  string `json:"away"`
	Score string `json:"score"`
	Venue string `json:"venue"`
}

// FromColumns builds a Fixture from a row lookup keyed by column name.
func FromColumns(value func(column string) string) Fixture {
	return Fixture{
		Date:  value(ColumnDate),
		Round: value(ColumnRound),
		Home:  value(ColumnHome),
		Away:  value(ColumnAway),
		Score: value(ColumnScore),
		Venue: value(ColumnVenue),
	}
}

// NormalizeSeason trims the season identifier.
func NormalizeSeason(season string) string {
	return strings.TrimSpace(season)
}
