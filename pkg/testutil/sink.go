package testutil

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/tabexport/pkg/header"
)

// Cell is one recorded write.
type Cell struct {
	Row   int
	Col   int
	Value any
}

// RecordingSink records writes in memory. It satisfies export.Sink and
// export.Excluder.
type RecordingSink struct {
	// Rows is the number of header rows reported when headers are enabled.
	Rows int
	// Excluded is returned by ExcludedProperties.
	Excluded []string
	// FailWrite, when set, is returned by every WriteValue.
	FailWrite error

	Header        bool
	Writes        []Cell
	Headers       []*header.Header
	TypeLabels    []string
	ColumnLabels  []string
	InitCalls     int
	FinalizeCalls int

	cells map[[2]int]any
}

// NewRecordingSink returns a sink reserving one header row.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{Rows: 1}
}

func (s *RecordingSink) Init(enabledHeader bool) error {
	s.InitCalls++
	s.Header = enabledHeader
	s.Writes = nil
	s.cells = make(map[[2]int]any)
	return nil
}

func (s *RecordingSink) HeaderRows() int {
	return s.Rows
}

func (s *RecordingSink) WriteValue(row, col int, value any) error {
	if s.FailWrite != nil {
		return s.FailWrite
	}
	s.Writes = append(s.Writes, Cell{Row: row, Col: col, Value: value})
	s.cells[[2]int{row, col}] = value
	return nil
}

func (s *RecordingSink) Finalize(headers []*header.Header, labels header.Labeler) error {
	s.FinalizeCalls++
	s.Headers = headers
	s.TypeLabels = nil
	s.ColumnLabels = nil
	if !s.Header {
		return nil
	}
	for _, h := range headers {
		l, err := labels.TypeLabel(h)
		if err != nil {
			return err
		}
		s.TypeLabels = append(s.TypeLabels, l)
	}
	for _, ph := range header.Columns(headers) {
		l, err := labels.ColumnLabel(ph)
		if err != nil {
			return err
		}
		s.ColumnLabels = append(s.ColumnLabels, l)
	}
	return nil
}

// WriteTo dumps the recorded cells as "row,col=value" lines in row-major
// order.
func (s *RecordingSink) WriteTo(w io.Writer) (int64, error) {
	keys := make([][2]int, 0, len(s.cells))
	for k := range s.cells {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%d,%d=%v\n", k[0], k[1], s.cells[k])
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func (s *RecordingSink) ExcludedProperties() []string {
	return s.Excluded
}

// Get returns the value written at row, col and whether it was written.
func (s *RecordingSink) Get(row, col int) (any, bool) {
	v, ok := s.cells[[2]int{row, col}]
	return v, ok
}

// Row returns the values of row up to its last written column.
func (s *RecordingSink) Row(row int) []any {
	width := 0
	for k := range s.cells {
		if k[0] == row && k[1]+1 > width {
			width = k[1] + 1
		}
	}
	out := make([]any, width)
	for c := range out {
		out[c] = s.cells[[2]int{row, c}]
	}
	return out
}

// WritesOn returns the writes recorded on row, in write order.
func (s *RecordingSink) WritesOn(row int) []Cell {
	var out []Cell
	for _, c := range s.Writes {
		if c.Row == row {
			out = append(out, c)
		}
	}
	return out
}
