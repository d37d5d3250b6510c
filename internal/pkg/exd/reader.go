// Package exd reads the CSV sheets an extraction tool dumps from the game
// client. A dump carries one file per sheet; depending on the generation of
// the extraction tool the file starts with either an index marker row,
// a column name row and a column type row (data from row 3), or just the
// name and type rows (data from row 2). Read sniffs which layout it got.
package exd

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Sheet struct {
	Name string

	columns map[string]int
	ordered []string
	rows    []Row
	byKey   map[int]int
}

// ReadFile reads the sheet dumped at path. The caller decides whether a
// missing file is fatal; ReadFile reports it as-is.
func ReadFile(path, name string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f, name)
}

// Read parses a sheet dump. Rows whose key cell does not parse are dropped.
func Read(r io.Reader, name string) (*Sheet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse sheet %s", name)
	}

	nameRow, dataRow := detectLayout(records)
	if nameRow < 0 || nameRow >= len(records) {
		return nil, errors.Errorf("sheet %s carries no header", name)
	}
	if dataRow > len(records) {
		dataRow = len(records)
	}

	sheet := &Sheet{
		Name:    name,
		columns: make(map[string]int, len(records[nameRow])),
		byKey:   make(map[int]int),
	}

	for i, col := range records[nameRow] {
		if col == "" || col == "#" {
			continue
		}
		if _, ok := sheet.columns[col]; !ok {
			sheet.columns[col] = i
			sheet.ordered = append(sheet.ordered, col)
		}
	}

	dropped := 0
	for _, cells := range records[dataRow:] {
		if len(cells) == 0 {
			continue
		}
		key, subKey, ok := parseKey(cells[0])
		if !ok {
			dropped++
			continue
		}
		if _, exists := sheet.byKey[key]; !exists {
			sheet.byKey[key] = len(sheet.rows)
		}
		sheet.rows = append(sheet.rows, Row{
			sheet:  sheet,
			key:    key,
			subKey: subKey,
			cells:  cells,
		})
	}

	if dropped > 0 {
		log.Debug().
			Str("evt.name", "exd.read").
			Str("sheet", name).
			Int("dropped", dropped).
			Msg("dropped rows with unparsable keys")
	}

	return sheet, nil
}

// detectLayout locates the column name row and the first data row. An index
// marker row starts with the literal cell "key"; when present, names sit on
// the following row and a type row separates them from the data.
func detectLayout(records [][]string) (nameRow, dataRow int) {
	if len(records) < 2 || len(records[0]) == 0 {
		return -1, -1
	}
	if records[0][0] == "key" {
		return 1, 3
	}
	return 0, 2
}

// parseKey splits a row key cell. Sub-table sheets join the parent key and
// the sub-row index with a dot, e.g. "262144.3".
func parseKey(cell string) (key, subKey int, ok bool) {
	head, tail, split := strings.Cut(cell, ".")

	key, err := strconv.Atoi(head)
	if err != nil {
		return 0, 0, false
	}
	if split {
		subKey, err = strconv.Atoi(tail)
		if err != nil {
			return 0, 0, false
		}
	}
	return key, subKey, true
}

// Empty returns a sheet with no rows, used when a dump file is absent and
// the caller downgrades that to a warning.
func Empty(name string) *Sheet {
	return &Sheet{
		Name:    name,
		columns: map[string]int{},
		byKey:   map[int]int{},
	}
}

func (s *Sheet) Len() int {
	return len(s.rows)
}

// Rows returns every data row in file order, sub-rows included.
func (s *Sheet) Rows() []Row {
	return s.rows
}

// Row returns the first row carrying the given key.
func (s *Sheet) Row(key int) (Row, bool) {
	i, ok := s.byKey[key]
	if !ok {
		return Row{}, false
	}
	return s.rows[i], true
}

// HasColumn reports whether the dump carries a column with this name.
func (s *Sheet) HasColumn(name string) bool {
	_, ok := s.columns[name]
	return ok
}

// Columns returns the column names in file order.
func (s *Sheet) Columns() []string {
	return s.ordered
}
