package fbref

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxSpan = 1000

// htmlTable is one <table> flattened to named columns and string rows.
type htmlTable struct {
	columns []string
	rows    [][]string
}

type rawCell struct {
	text    string
	colspan int
	rowspan int
}

type carriedCell struct {
	text string
	left int
}

// parseTables returns every table with at least one row, in document order.
// Nested tables are returned as tables of their own.
func parseTables(doc *goquery.Document) []htmlTable {
	var tables []htmlTable
	doc.Find("table").Each(func(_ int, s *goquery.Selection) {
		if t, ok := parseTable(s); ok {
			tables = append(tables, t)
		}
	})
	return tables
}

func parseTable(s *goquery.Selection) (htmlTable, bool) {
	headRows := rowsOf(s.ChildrenFiltered("thead"))
	bodyRows := rowsOf(s.ChildrenFiltered("tbody"))
	bodyRows = append(bodyRows, rowsOf(s)...)
	footRows := rowsOf(s.ChildrenFiltered("tfoot"))
	if len(headRows)+len(bodyRows)+len(footRows) == 0 {
		return htmlTable{}, false
	}

	// Without a <thead>, leading all-<th> rows are the header.
	if len(headRows) == 0 {
		for len(bodyRows) > 0 && isHeaderRow(bodyRows[0]) {
			headRows = append(headRows, bodyRows[0])
			bodyRows = bodyRows[1:]
		}
	}

	header := expandSpans(readCells(headRows))
	rows := expandSpans(readCells(bodyRows))
	rows = append(rows, expandSpans(readCells(footRows))...)

	width := 0
	for _, line := range header {
		width = max(width, len(line))
	}
	for _, line := range rows {
		width = max(width, len(line))
	}

	return htmlTable{
		columns: columnNames(header, width),
		rows:    rows,
	}, true
}

func rowsOf(parents *goquery.Selection) []*goquery.Selection {
	var rows []*goquery.Selection
	parents.ChildrenFiltered("tr").Each(func(_ int, tr *goquery.Selection) {
		rows = append(rows, tr)
	})
	return rows
}

func isHeaderRow(tr *goquery.Selection) bool {
	return tr.ChildrenFiltered("th").Length() > 0 && tr.ChildrenFiltered("td").Length() == 0
}

// readCells drops rows that carry no cells at all.
func readCells(rows []*goquery.Selection) [][]rawCell {
	out := make([][]rawCell, 0, len(rows))
	for _, tr := range rows {
		var cells []rawCell
		tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, rawCell{
				text:    NormalizeCell(cell.Text()),
				colspan: spanAttr(cell, "colspan"),
				rowspan: spanAttr(cell, "rowspan"),
			})
		})
		if len(cells) == 0 {
			continue
		}
		out = append(out, cells)
	}
	return out
}

func spanAttr(cell *goquery.Selection, name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(cell.AttrOr(name, "1")))
	if err != nil || n < 1 {
		return 1
	}
	return min(n, maxSpan)
}

// expandSpans repeats colspan cells across columns and rowspan cells into the
// following rows, so every row lines up with the header grid.
func expandSpans(rows [][]rawCell) [][]string {
	out := make([][]string, 0, len(rows))
	carried := make(map[int]carriedCell)

	for _, cells := range rows {
		line := make([]string, 0, len(cells))
		next := 0
		for col := 0; next < len(cells) || hasCarryFrom(carried, col); col++ {
			if c, ok := carried[col]; ok {
				line = append(line, c.text)
				c.left--
				if c.left == 0 {
					delete(carried, col)
				} else {
					carried[col] = c
				}
				continue
			}
			if next >= len(cells) {
				line = append(line, "")
				continue
			}

			cell := cells[next]
			next++
			for k := 0; k < cell.colspan; k++ {
				line = append(line, cell.text)
				if cell.rowspan > 1 {
					carried[col+k] = carriedCell{text: cell.text, left: cell.rowspan - 1}
				}
			}
			col += cell.colspan - 1
		}
		out = append(out, line)
	}

	return out
}

func hasCarryFrom(carried map[int]carriedCell, col int) bool {
	for c := range carried {
		if c >= col {
			return true
		}
	}
	return false
}

// columnNames takes the last header row as the column labels. Blank labels
// become "Unnamed: <i>", repeated labels get ".1", ".2", ... suffixes, and a
// table without a header is labelled by position.
func columnNames(header [][]string, width int) []string {
	names := make([]string, width)
	if len(header) == 0 {
		for i := range names {
			names[i] = strconv.Itoa(i)
		}
		return names
	}

	labels := header[len(header)-1]
	seen := make(map[string]int, width)
	for i := range names {
		name := ""
		if i < len(labels) {
			name = labels[i]
		}
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = name + "." + strconv.Itoa(n+1)
		} else {
			seen[name] = 0
		}
		names[i] = name
	}
	return names
}

func (t htmlTable) columnIndex() map[string]int {
	index := make(map[string]int, len(t.columns))
	for i, name := range t.columns {
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	return index
}
