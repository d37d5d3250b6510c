package exd

import "strconv"

// Row is one data row of a sheet. Accessors never fail: a missing column,
// a short row or an unparsable cell all yield the zero value, which keeps
// a single malformed dump row from poisoning a whole build.
type Row struct {
	sheet  *Sheet
	key    int
	subKey int
	cells  []string
}

func (r Row) Key() int {
	return r.key
}

func (r Row) SubKey() int {
	return r.subKey
}

func (r Row) Str(col string) string {
	i, ok := r.sheet.columns[col]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

func (r Row) Int(col string) int {
	v, err := strconv.Atoi(r.Str(col))
	if err != nil {
		return 0
	}
	return v
}

func (r Row) Float(col string) float64 {
	v, err := strconv.ParseFloat(r.Str(col), 64)
	if err != nil {
		return 0
	}
	return v
}

// Bool parses the capitalized booleans the extraction tool writes.
func (r Row) Bool(col string) bool {
	return r.Str(col) == "True" || r.Str(col) == "true"
}
