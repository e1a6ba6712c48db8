// Package xlsx renders exports as an Excel workbook with a two row header:
// a merged, centered type label over each block of columns and the column
// labels below it.
package xlsx

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/arthur-debert/tabexport/pkg/errors"
	"github.com/arthur-debert/tabexport/pkg/header"
	"github.com/arthur-debert/tabexport/pkg/logging"
)

const (
	integerFormat = "0"
	floatFormat   = "0.00"
	decimalFormat = "#,##0.0000"
)

// Options controls the workbook layout.
type Options struct {
	Sheet string
	// DateFormat is an Excel number format.
	DateFormat string
	// Exclude lists properties this format always omits.
	Exclude []string
}

// DefaultOptions returns a single "export" sheet with day-first dates.
func DefaultOptions() Options {
	return Options{
		Sheet:      "export",
		DateFormat: "dd/mm/yyyy hh:mm",
	}
}

type styles struct {
	integer int
	float   int
	decimal int
	date    int
	title   int
}

// Sink writes values into an in-memory workbook.
type Sink struct {
	opts   Options
	file   *excelize.File
	styles styles
	header bool
	logger zerolog.Logger
}

// New creates an xlsx sink. Init must be called before use.
func New(opts Options) *Sink {
	return &Sink{
		opts:   opts,
		logger: logging.GetLogger("sink.xlsx"),
	}
}

// Init replaces the workbook with an empty one holding a single sheet.
func (s *Sink) Init(enabledHeader bool) error {
	if s.file != nil {
		_ = s.file.Close()
	}
	s.header = enabledHeader
	s.file = excelize.NewFile()
	if err := s.file.SetSheetName(s.file.GetSheetName(0), s.opts.Sheet); err != nil {
		return errors.Wrapf(err, errors.ErrSinkState, "invalid sheet name %q", s.opts.Sheet)
	}

	var err error
	if s.styles.integer, err = s.numberStyle(integerFormat); err != nil {
		return err
	}
	if s.styles.float, err = s.numberStyle(floatFormat); err != nil {
		return err
	}
	if s.styles.decimal, err = s.numberStyle(decimalFormat); err != nil {
		return err
	}
	if s.styles.date, err = s.numberStyle(s.opts.DateFormat); err != nil {
		return err
	}
	s.styles.title, err = s.file.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrSinkState, "cannot create header style")
	}
	return nil
}

func (s *Sink) numberStyle(format string) (int, error) {
	f := format
	id, err := s.file.NewStyle(&excelize.Style{CustomNumFmt: &f})
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrSinkState, "invalid number format %q", format)
	}
	return id, nil
}

// HeaderRows is two: type labels, then column labels.
func (s *Sink) HeaderRows() int {
	return 2
}

func (s *Sink) WriteValue(row, col int, value any) error {
	if s.file == nil {
		return errors.New(errors.ErrSinkState, "xlsx sink used before Init")
	}
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return errors.Wrap(err, errors.ErrSinkWrite, "invalid cell coordinates")
	}

	style := 0
	switch v := value.(type) {
	case nil:
		value = ""
	case time.Time:
		style = s.styles.date
	case int64, uint64:
		style = s.styles.integer
	case float64:
		style = s.styles.float
	case decimal.Decimal:
		value = v.InexactFloat64()
		style = s.styles.decimal
	}

	if err := s.file.SetCellValue(s.opts.Sheet, cell, value); err != nil {
		return errors.Wrapf(err, errors.ErrSinkWrite, "cannot set %s", cell)
	}
	if style != 0 {
		if err := s.file.SetCellStyle(s.opts.Sheet, cell, cell, style); err != nil {
			return errors.Wrapf(err, errors.ErrSinkWrite, "cannot style %s", cell)
		}
	}
	return nil
}

// Finalize writes both header rows when headers are enabled. Type labels
// are merged across a block only when it spans more than one column.
func (s *Sink) Finalize(headers []*header.Header, labels header.Labeler) error {
	if s.file == nil {
		return errors.New(errors.ErrSinkState, "xlsx sink used before Init")
	}
	if !s.header {
		return nil
	}

	for _, span := range header.Spans(headers) {
		label, err := labels.TypeLabel(span.Header)
		if err != nil {
			return err
		}
		start, _ := excelize.CoordinatesToCellName(span.Start+1, 1)
		end, _ := excelize.CoordinatesToCellName(span.End+1, 1)
		if err := s.file.SetCellStr(s.opts.Sheet, start, label); err != nil {
			return errors.Wrapf(err, errors.ErrSinkWrite, "cannot set %s", start)
		}
		if span.End > span.Start {
			if err := s.file.MergeCell(s.opts.Sheet, start, end); err != nil {
				return errors.Wrapf(err, errors.ErrSinkWrite, "cannot merge %s:%s", start, end)
			}
		}
		if err := s.file.SetCellStyle(s.opts.Sheet, start, end, s.styles.title); err != nil {
			return errors.Wrapf(err, errors.ErrSinkWrite, "cannot style %s", start)
		}
	}

	for _, ph := range header.Columns(headers) {
		label, err := labels.ColumnLabel(ph)
		if err != nil {
			return err
		}
		cell, _ := excelize.CoordinatesToCellName(ph.Column+1, 2)
		if err := s.file.SetCellStr(s.opts.Sheet, cell, label); err != nil {
			return errors.Wrapf(err, errors.ErrSinkWrite, "cannot set %s", cell)
		}
	}
	s.logger.Debug().Int("blocks", len(headers)).Msg("Header written")
	return nil
}

func (s *Sink) WriteTo(w io.Writer) (int64, error) {
	if s.file == nil {
		return 0, errors.New(errors.ErrSinkState, "xlsx sink used before Init")
	}
	n, err := s.file.WriteTo(w)
	if err != nil {
		return n, errors.Wrap(err, errors.ErrSinkWrite, "cannot write workbook")
	}
	s.logger.Debug().Int64("bytes", n).Msg("Workbook written")
	return n, nil
}

// ExcludedProperties returns the properties this format omits.
func (s *Sink) ExcludedProperties() []string {
	return s.opts.Exclude
}

// File exposes the workbook for further editing before WriteTo.
func (s *Sink) File() *excelize.File {
	return s.file
}

// Close releases the workbook's temporary files.
func (s *Sink) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
