// Package ui - Terminal output for hashmap commands
// Key/value blocks and sorted tables.
package ui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"
)

// Colors for terminal output
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Red   = "\033[31m"
)

// Writer is the UI output destination
type Writer struct {
	out     io.Writer
	noColor bool
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:     out,
		noColor: noColor,
	}
}

// color applies color if enabled
func (w *Writer) color(c, text string) string {
	if w.noColor {
		return text
	}
	return c + text + Reset
}

// Println writes formatted text and a newline
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println("%s", w.color(Red, "ERROR: ")+msg)
}

// PrintDict prints one entity as a Property/Value table, keys ascending
func (w *Writer) PrintDict(d map[string]string) {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := w.NewTable("Property", "Value")
	for _, k := range keys {
		t.AddRow(k, d[k])
	}
	t.Render()
}

// PrintList prints rows as a table. fields selects and orders the columns,
// labels are their headers, rows are sorted ascending by column sortBy.
func (w *Writer) PrintList(rows []map[string]string, fields, labels []string, sortBy int) {
	t := w.NewTable(labels...)
	for _, row := range rows {
		cells := make([]string, len(fields))
		for i, f := range fields {
			cells[i] = row[f]
		}
		t.AddRow(cells...)
	}
	t.SortBy(sortBy)
	t.Render()
}

// Table renders a table
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		rows:    [][]string{},
		widths:  widths,
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	// Pad or truncate cells to match header count
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if n := utf8.RuneCountInString(row[i]); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	t.rows = append(t.rows, row)
}

// SortBy orders rows ascending by one column. Out of range columns are ignored.
func (t *Table) SortBy(col int) {
	if col < 0 || col >= len(t.headers) {
		return
	}
	sort.SliceStable(t.rows, func(i, j int) bool {
		return t.rows[i][col] < t.rows[j][col]
	})
}

// Render prints the table. Widths count runes, which is also how fmt pads.
func (t *Table) Render() {
	// Build format string
	format := ""
	for i, w := range t.widths {
		if i > 0 {
			format += " │ "
		}
		format += fmt.Sprintf("%%-%ds", w)
	}

	// Header
	headerArgs := make([]interface{}, len(t.headers))
	for i, h := range t.headers {
		headerArgs[i] = h
	}
	t.w.Println("%s", t.w.color(Bold, strings.TrimRight(fmt.Sprintf(format, headerArgs...), " ")))

	// Separator
	sep := ""
	for i, w := range t.widths {
		if i > 0 {
			sep += "─┼─"
		}
		sep += strings.Repeat("─", w)
	}
	t.w.Println("%s", sep)

	// Rows
	for _, row := range t.rows {
		args := make([]interface{}, len(row))
		for i, cell := range row {
			args[i] = cell
		}
		t.w.Println("%s", strings.TrimRight(fmt.Sprintf(format, args...), " "))
	}
}
