package export

import (
	"io"
	"reflect"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/tabexport/pkg/bean"
	"github.com/arthur-debert/tabexport/pkg/errors"
	"github.com/arthur-debert/tabexport/pkg/header"
	"github.com/arthur-debert/tabexport/pkg/i18n"
	"github.com/arthur-debert/tabexport/pkg/logging"
	"github.com/arthur-debert/tabexport/pkg/meta"
)

// Option configures an Exporter.
type Option func(*Exporter)

// WithResolver sets the text lookup used for label and prefix keys.
func WithResolver(r i18n.Resolver) Option {
	return func(e *Exporter) { e.resolver = r }
}

// WithRegistry sets the metadata registry, for programmatic declarations.
func WithRegistry(r *meta.Registry) Option {
	return func(e *Exporter) { e.registry = r }
}

// WithHeader enables or disables the header rows. Enabled by default.
func WithHeader(enabled bool) Option {
	return func(e *Exporter) { e.enabledHeader = enabled }
}

// WithExcluded adds property names that are never exported.
func WithExcluded(names ...string) Option {
	return func(e *Exporter) {
		for _, n := range names {
			e.exclude[n] = true
		}
	}
}

// WithExclusionHook sets a function consulted for every property of every
// object; the property is skipped when its name is in the returned list.
func WithExclusionHook(hook func() []string) Option {
	return func(e *Exporter) { e.hook = hook }
}

// WithLogger replaces the default component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Exporter) { e.logger = l }
}

type state int

const (
	stateNew state = iota
	stateInitialized
	stateFinalized
)

type identity struct {
	typ  reflect.Type
	addr uintptr
}

// Exporter lays out object graphs on a Sink. It holds the column model of
// one run and is not safe for concurrent use; use one Exporter per
// concurrent export.
type Exporter struct {
	sink          Sink
	registry      *meta.Registry
	beans         *bean.Introspector
	resolver      i18n.Resolver
	model         *header.Model
	enabledHeader bool
	exclude       map[string]bool
	hook          func() []string
	logger        zerolog.Logger

	state       state
	currentRow  int
	ordered     map[reflect.Type][]ordered
	expanded    map[identity]bool
	occurrences map[reflect.Type]int
}

// New creates an Exporter writing to sink.
func New(sink Sink, opts ...Option) *Exporter {
	e := &Exporter{
		sink:          sink,
		registry:      meta.NewRegistry(),
		beans:         bean.NewIntrospector(),
		model:         header.NewModel(),
		enabledHeader: true,
		exclude:       make(map[string]bool),
		logger:        logging.GetLogger("export"),
		ordered:       make(map[reflect.Type][]ordered),
		expanded:      make(map[identity]bool),
		occurrences:   make(map[reflect.Type]int),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Init starts a new run: the column model is cleared and the first data
// row follows the sink's header rows when headers are enabled.
func (e *Exporter) Init() error {
	e.model.Reset()
	e.currentRow = 0
	if e.enabledHeader {
		e.currentRow = e.sink.HeaderRows()
	}
	if err := e.sink.Init(e.enabledHeader); err != nil {
		return errors.Wrap(err, errors.ErrSinkState, "cannot initialize sink")
	}
	e.state = stateInitialized
	return nil
}

// Export exports every element of a slice or array on its own row, or a
// single object on one row. A nil element still takes its row.
func (e *Exporter) Export(items any) error {
	if e.state != stateInitialized {
		return errors.New(errors.ErrSinkState, "export requires Init and must precede Finalize")
	}

	v := reflect.ValueOf(items)
	if !v.IsValid() {
		return nil
	}
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		if k := v.Elem().Kind(); k == reflect.Slice || k == reflect.Array {
			v = v.Elem()
		}
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := e.exportRow(v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return e.exportRow(v)
	}
}

func (e *Exporter) exportRow(v reflect.Value) error {
	row := e.currentRow
	e.currentRow++
	clear(e.expanded)
	clear(e.occurrences)

	col, err := e.expand(row, 0, v)
	if err != nil {
		return err
	}
	e.logger.Debug().Int("row", row).Int("columns", col).Msg("Row exported")
	return nil
}

// Finalize hands the accumulated headers to the sink. It must be called
// once, after the last Export.
func (e *Exporter) Finalize() error {
	if e.state != stateInitialized {
		return errors.New(errors.ErrSinkState, "finalize requires Init and may only be called once")
	}
	if err := e.sink.Finalize(e.model.Headers(), e.Labels()); err != nil {
		return err
	}
	e.state = stateFinalized
	return nil
}

// WriteTo serializes the sink to w.
func (e *Exporter) WriteTo(w io.Writer) (int64, error) {
	if e.state != stateFinalized {
		return 0, errors.New(errors.ErrSinkState, "write requires Finalize")
	}
	n, err := e.sink.WriteTo(w)
	if err != nil {
		return n, errors.Wrap(err, errors.ErrSinkWrite, "cannot serialize export")
	}
	return n, nil
}

// Run exports items and writes the result to w.
func (e *Exporter) Run(w io.Writer, items any) error {
	done := logging.LogOperationStart(e.logger, "export")
	defer done()

	if err := e.Init(); err != nil {
		return err
	}
	if err := e.Export(items); err != nil {
		return err
	}
	if err := e.Finalize(); err != nil {
		return err
	}
	_, err := e.WriteTo(w)
	return err
}

// Headers returns the headers accumulated so far in first-seen order.
func (e *Exporter) Headers() []*header.Header {
	return e.model.Headers()
}

// Width returns the number of columns bound so far.
func (e *Exporter) Width() int {
	return e.model.Width()
}

// NextRow returns the row the next exported object will take.
func (e *Exporter) NextRow() int {
	return e.currentRow
}

// Labels returns the labeler the sink receives on Finalize.
func (e *Exporter) Labels() header.Labeler {
	return labeler{e: e}
}

func (e *Exporter) resolve(key string) (string, error) {
	if e.resolver == nil {
		return "", errors.Newf(errors.ErrTextLookup, "text lookup of %q requires a resolver", key).
			WithDetail("key", key)
	}
	text, err := e.resolver.Resolve(key)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTextLookup, "cannot resolve %q", key).WithDetail("key", key)
	}
	return text, nil
}

func (e *Exporter) isExcluded(p *bean.Property) bool {
	if e.exclude[p.Name] || e.exclude[p.Field.Name] {
		return true
	}
	if e.hook != nil && contains(e.hook(), p) {
		return true
	}
	if ex, ok := e.sink.(Excluder); ok && contains(ex.ExcludedProperties(), p) {
		return true
	}
	return false
}

func contains(names []string, p *bean.Property) bool {
	for _, n := range names {
		if n == p.Name || n == p.Field.Name {
			return true
		}
	}
	return false
}
