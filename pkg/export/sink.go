package export

import (
	"io"

	"github.com/arthur-debert/tabexport/pkg/header"
)

// Sink renders the cells written by an Exporter.
type Sink interface {
	// Init resets the sink for a new run.
	Init(enabledHeader bool) error
	// HeaderRows is the number of leading rows reserved for headers.
	HeaderRows() int
	// WriteValue writes a canonical scalar (see bean.Scalar) or nil.
	WriteValue(row, col int, value any) error
	// Finalize renders the headers, if enabled, after every row is written.
	Finalize(headers []*header.Header, labels header.Labeler) error
	// WriteTo serializes the rendered result.
	WriteTo(w io.Writer) (int64, error)
}

// Excluder is implemented by sinks that always omit some properties, such
// as optimistic locking versions.
type Excluder interface {
	ExcludedProperties() []string
}
