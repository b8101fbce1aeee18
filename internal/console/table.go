// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// TitleColumn is the synthetic column identifying a record.
const TitleColumn = "Title"

// columnSeparator joins table cells.
const columnSeparator = "|"

// ErrUnknownColumn is returned when sorting on a column no record has.
var ErrUnknownColumn = errors.New("console: unknown column")

// Record is one table row: column name to scalar or array value.
type Record map[string]any

// Title returns the record's TitleColumn rendered as text.
func (r Record) Title() string {
	return FormatValue(r[TitleColumn])
}

// Direction is a sort order.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Table lays out records sharing a column set as an aligned, pipe-separated
// text table.
type Table struct {
	surface Surface
	cfg     Config
	records []Record
	columns []string
}

// NewTable creates a table over records. The column set is the union of
// every record's keys, TitleColumn first and the rest alphabetically.
func NewTable(s Surface, cfg Config, records []Record) *Table {
	return &Table{
		surface: s,
		cfg:     cfg.withDefaults(),
		records: records,
		columns: columnsOf(records),
	}
}

func columnsOf(records []Record) []string {
	seen := map[string]bool{}
	var cols []string
	for _, r := range records {
		for k := range r {
			if !seen[k] && k != TitleColumn {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	sort.Strings(cols)
	for _, r := range records {
		if _, ok := r[TitleColumn]; ok {
			return append([]string{TitleColumn}, cols...)
		}
	}
	return cols
}

// Columns returns the table's column names in display order.
func (t *Table) Columns() []string { return t.columns }

// Records returns the table's records in their current order.
func (t *Table) Records() []Record { return t.records }

// Len is the number of records.
func (t *Table) Len() int { return len(t.records) }

// Widths returns the display width of every column: the wider of its header
// and its longest value, capped at the configured MaxCellWidth.
func (t *Table) Widths() []int {
	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		w := DisplayWidth(col)
		for _, r := range t.records {
			w = max(w, DisplayWidth(FormatValue(r[col])))
		}
		widths[i] = min(w, t.cfg.MaxCellWidth)
	}
	return widths
}

// Header returns the formatted header line without styling.
func (t *Table) Header() string {
	widths := t.Widths()
	cells := make([]string, len(t.columns))
	for i, col := range t.columns {
		cells[i] = Center(Truncate(col, widths[i]), widths[i])
	}
	return strings.Join(cells, columnSeparator)
}

// Rows returns one formatted line per record.
func (t *Table) Rows() []string {
	widths := t.Widths()
	rows := make([]string, len(t.records))
	cells := make([]string, len(t.columns))
	for i, r := range t.records {
		for j, col := range t.columns {
			v := r[col]
			text := Truncate(FormatValue(v), widths[j])
			if isNumeric(v) {
				cells[j] = Center(text, widths[j])
			} else {
				cells[j] = PadRight(text, widths[j])
			}
		}
		rows[i] = strings.Join(cells, columnSeparator)
	}
	return rows
}

// Sort orders records by column. Numbers compare numerically, everything
// else as text; numbers come before text and missing values come first.
func (t *Table) Sort(column string, dir Direction) error {
	if !t.hasColumn(column) {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	sort.SliceStable(t.records, func(i, j int) bool {
		a, b := t.records[i][column], t.records[j][column]
		if dir == Descending {
			return compareValues(b, a) < 0
		}
		return compareValues(a, b) < 0
	})
	return nil
}

// Filter returns a new table holding the records for which keep is true.
func (t *Table) Filter(keep func(Record) bool) *Table {
	var out []Record
	for _, r := range t.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return NewTable(t.surface, t.cfg, out)
}

// View renders the table and lets the user page through it. The surface is
// widened first when it can resize and the header does not fit.
func (t *Table) View() error {
	if len(t.records) == 0 {
		return NewListView(t.surface, t.cfg).Render(nil, ListOptions{})
	}
	return NewListView(t.surface, t.cfg).Browse(t.Rows(), t.listOptions(0))
}

// Pick renders the table as a selectable list and returns the Title of the
// chosen record.
func (t *Table) Pick() (string, error) {
	if len(t.records) == 0 {
		_, err := NewSelector(t.surface, t.cfg).Select(nil, ListOptions{})
		return "", err
	}
	i, err := NewSelector(t.surface, t.cfg).Select(t.Rows(), t.listOptions(DisplayWidth(cursorMarker)))
	if err != nil {
		return "", err
	}
	return t.records[i].Title(), nil
}

// listOptions fits the surface to the header plus extra cells taken by a
// row prefix such as the selection cursor.
func (t *Table) listOptions(extra int) ListOptions {
	header := t.Header()
	t.fit(DisplayWidth(header) + BorderPadding + extra)
	return ListOptions{Header: headerStyle.Render(header)}
}

// fit widens a resizable surface to at least width cells.
func (t *Table) fit(width int) {
	w, h := t.surface.Size()
	if width <= w {
		return
	}
	if r, ok := t.surface.(Resizer); ok {
		r.Resize(width, h)
	}
}

func (t *Table) hasColumn(c string) bool {
	for _, col := range t.columns {
		if col == c {
			return true
		}
	}
	return false
}

// FormatValue renders a record value as cell text. Arrays and slices render
// as their length, nil as the empty string.
func FormatValue(v any) string {
	if v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		return x.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return strconv.Itoa(rv.Len())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	}
	return fmt.Sprint(v)
}

// number converts numeric values to float64.
func number(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// isNumeric reports whether v is centered in its cell: numbers, bools and
// the element counts shown for arrays.
func isNumeric(v any) bool {
	if _, ok := v.(bool); ok {
		return true
	}
	if _, ok := number(v); ok {
		return true
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	an, aNum := number(a)
	bn, bNum := number(b)
	switch {
	case aNum && bNum:
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	case aNum:
		return -1
	case bNum:
		return 1
	}
	return strings.Compare(FormatValue(a), FormatValue(b))
}
