package config

import (
	stderrors "errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/arthur-debert/tabexport/pkg/errors"
	"github.com/arthur-debert/tabexport/pkg/sink/text"
	"github.com/arthur-debert/tabexport/pkg/sink/xlsx"
)

const (
	FormatText = "text"
	FormatXlsx = "xlsx"
)

// Config is the complete export configuration.
type Config struct {
	Format   string         `koanf:"format" validate:"oneof=text xlsx"`
	Header   HeaderConfig   `koanf:"header"`
	Exclude  []string       `koanf:"exclude"`
	Text     TextConfig     `koanf:"text"`
	Xlsx     XlsxConfig     `koanf:"xlsx"`
	Messages MessagesConfig `koanf:"messages"`
}

type HeaderConfig struct {
	Enabled bool `koanf:"enabled"`
}

type TextConfig struct {
	Separator  string `koanf:"separator"   validate:"required"`
	Enclosure  string `koanf:"enclosure"`
	DateFormat string `koanf:"date_format" validate:"required"`
	LineEnd    string `koanf:"line_end"    validate:"required"`
}

type XlsxConfig struct {
	// Excel limits sheet names to 31 characters.
	Sheet      string `koanf:"sheet"       validate:"required,max=31"`
	DateFormat string `koanf:"date_format" validate:"required"`
}

type MessagesConfig struct {
	// File is a TOML or YAML message catalog; empty means built-in labels.
	File   string `koanf:"file"`
	Locale string `koanf:"locale" validate:"oneof=en it"`
}

// Validate checks every field constraint and reports all violations in
// one error.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.Wrap(err, errors.ErrConfigValid, "cannot validate configuration")
	}
	problems := make([]string, 0, len(fieldErrs))
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		fields = append(fields, field)
		if fe.Param() != "" {
			problems = append(problems, field+" must satisfy "+fe.Tag()+"="+fe.Param())
		} else {
			problems = append(problems, field+" is "+fe.Tag())
		}
	}
	return errors.New(errors.ErrConfigValid, "invalid configuration: "+strings.Join(problems, "; ")).
		WithDetail("fields", fields)
}

// TextOptions returns the text sink options.
func (c *Config) TextOptions() text.Options {
	return text.Options{
		Separator:  c.Text.Separator,
		Enclosure:  c.Text.Enclosure,
		DateFormat: c.Text.DateFormat,
		LineEnd:    c.Text.LineEnd,
		Exclude:    c.Exclude,
	}
}

// XlsxOptions returns the xlsx sink options.
func (c *Config) XlsxOptions() xlsx.Options {
	return xlsx.Options{
		Sheet:      c.Xlsx.Sheet,
		DateFormat: c.Xlsx.DateFormat,
		Exclude:    c.Exclude,
	}
}
