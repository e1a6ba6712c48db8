package text

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cast"

	"github.com/arthur-debert/tabexport/pkg/errors"
	"github.com/arthur-debert/tabexport/pkg/header"
	"github.com/arthur-debert/tabexport/pkg/logging"
)

// Options controls the delimited output.
type Options struct {
	Separator string
	// Enclosure surrounds every non-empty value; occurrences inside a
	// value are doubled.
	Enclosure string
	// DateFormat is a Go time layout.
	DateFormat string
	LineEnd    string
	// Exclude lists properties this format always omits.
	Exclude []string
}

// DefaultOptions returns semicolon separated, double quoted output.
func DefaultOptions() Options {
	return Options{
		Separator:  ";",
		Enclosure:  `"`,
		DateFormat: "02/01/2006 15:04",
		LineEnd:    "\n",
	}
}

// Sink renders values into a Grid with a single header row.
type Sink struct {
	opts   Options
	grid   *Grid
	header bool
	logger zerolog.Logger
}

// New creates a text sink.
func New(opts Options) *Sink {
	return &Sink{
		opts:   opts,
		grid:   NewGrid(),
		logger: logging.GetLogger("sink.text"),
	}
}

func (s *Sink) Init(enabledHeader bool) error {
	s.grid = NewGrid()
	s.header = enabledHeader
	return nil
}

func (s *Sink) HeaderRows() int {
	return 1
}

func (s *Sink) WriteValue(row, col int, value any) error {
	text, err := s.format(value)
	if err != nil {
		return err
	}
	s.grid.Set(row, col, text)
	return nil
}

func (s *Sink) format(value any) (string, error) {
	if value == nil {
		return "", nil
	}
	var text string
	if t, ok := value.(time.Time); ok {
		text = t.Format(s.opts.DateFormat)
	} else {
		var err error
		if text, err = cast.ToStringE(value); err != nil {
			return "", errors.Wrapf(err, errors.ErrSinkWrite, "cannot render %T as text", value)
		}
	}
	if s.opts.Enclosure == "" {
		return text, nil
	}
	text = strings.ReplaceAll(text, s.opts.Enclosure, s.opts.Enclosure+s.opts.Enclosure)
	return s.opts.Enclosure + text + s.opts.Enclosure, nil
}

// Finalize writes the column labels on row 0 when headers are enabled.
// Type labels have no place in a single header row.
func (s *Sink) Finalize(headers []*header.Header, labels header.Labeler) error {
	if !s.header {
		return nil
	}
	for _, ph := range header.Columns(headers) {
		label, err := labels.ColumnLabel(ph)
		if err != nil {
			return err
		}
		s.grid.Set(0, ph.Column, label)
	}
	s.logger.Debug().Int("columns", s.grid.Cols()).Msg("Header written")
	return nil
}

func (s *Sink) WriteTo(w io.Writer) (int64, error) {
	n, err := s.grid.Render(w, s.opts.Separator, s.opts.LineEnd)
	if err != nil {
		return n, errors.Wrap(err, errors.ErrSinkWrite, "cannot write text export")
	}
	s.logger.Debug().Int("rows", s.grid.Rows()).Int64("bytes", n).Msg("Text export written")
	return n, nil
}

// ExcludedProperties returns the properties this format omits.
func (s *Sink) ExcludedProperties() []string {
	return s.opts.Exclude
}

// Grid exposes the rendered cells.
func (s *Sink) Grid() *Grid {
	return s.grid
}
