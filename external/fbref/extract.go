package fbref

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/fbref-fixtures/internal/domain/fixture"
)

// ExtractFixtures maps the first table of a schedule page into fixtures.
// It fails with fixture.ErrNoTableFound when the page has no table, and with a
// *fixture.SchemaMismatchError when the first table lacks a required column.
// An empty table yields an empty, non-nil slice.
func ExtractFixtures(html string) ([]fixture.Fixture, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", fixture.ErrNoTableFound, err)
	}

	tables := parseTables(doc)
	if len(tables) == 0 {
		return nil, fixture.ErrNoTableFound
	}

	schedule := tables[0]
	index := schedule.columnIndex()

	var missing []string
	for _, column := range fixture.RequiredColumns {
		if _, ok := index[column]; !ok {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, fixture.NewSchemaMismatchError(missing)
	}

	out := make([]fixture.Fixture, 0, len(schedule.rows))
	for _, row := range schedule.rows {
		out = append(out, fixture.FromColumns(func(column string) string {
			return cellAt(row, index[column])
		}))
	}

	return out, nil
}

// NormalizeCell turns raw cell text into its display string: whitespace runs
// (non-breaking spaces included) collapse to one space and the ends are trimmed.
func NormalizeCell(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
