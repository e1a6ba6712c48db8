package tabexport

import (
	"embed"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/tabexport/internal/demo"
	"github.com/arthur-debert/tabexport/internal/version"
	"github.com/arthur-debert/tabexport/pkg/cobrax/topics"
	"github.com/arthur-debert/tabexport/pkg/config"
	"github.com/arthur-debert/tabexport/pkg/display"
	"github.com/arthur-debert/tabexport/pkg/errors"
	"github.com/arthur-debert/tabexport/pkg/export"
	"github.com/arthur-debert/tabexport/pkg/i18n"
	"github.com/arthur-debert/tabexport/pkg/logging"
	"github.com/arthur-debert/tabexport/pkg/sink/text"
	"github.com/arthur-debert/tabexport/pkg/sink/xlsx"
)

//go:embed topics
var helpTopics embed.FS

// exportFlags holds the flags shared by export and preview.
type exportFlags struct {
	configPath string
	format     string
	out        string
	noHeader   bool
	messages   string
	locale     string
	exclude    []string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs())
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	initTemplateFormatting()

	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "tabexport",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newExportCmd(fs))
	rootCmd.AddCommand(newPreviewCmd(fs))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	err := topics.InitializeWithOptions(rootCmd, afero.FromIOFS{FS: helpTopics}, "topics", topics.Options{
		Renderer: topics.NewGlamourRenderer(),
	})
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

func bindExportFlags(cmd *cobra.Command, f *exportFlags) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", MsgFlagConfig)
	cmd.Flags().BoolVar(&f.noHeader, "no-header", false, MsgFlagNoHeader)
	cmd.Flags().StringVarP(&f.messages, "messages", "m", "", MsgFlagMessages)
	cmd.Flags().StringVarP(&f.locale, "locale", "l", "", MsgFlagLocale)
	cmd.Flags().StringSliceVarP(&f.exclude, "exclude", "x", nil, MsgFlagExclude)
}

func newExportCmd(fs afero.Fs) *cobra.Command {
	var f exportFlags
	cmd := &cobra.Command{
		Use:     "export [orders.yaml]",
		Short:   MsgExportShort,
		Long:    MsgExportLong,
		Example: MsgExportExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, fs, &f, args)
		},
	}
	bindExportFlags(cmd, &f)
	cmd.Flags().StringVarP(&f.format, "format", "f", "", MsgFlagFormat)
	cmd.Flags().StringVarP(&f.out, "out", "o", "", MsgFlagOut)
	return cmd
}

func newPreviewCmd(fs afero.Fs) *cobra.Command {
	var f exportFlags
	cmd := &cobra.Command{
		Use:     "preview [orders.yaml]",
		Short:   MsgPreviewShort,
		Long:    MsgPreviewLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, fs, &f, args)
		},
	}
	bindExportFlags(cmd, &f)
	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), config.DefaultContent())
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionLine, version.Version, version.Commit, version.Date)
		},
	}
}

// loadConfig layers the command line flags over the loaded configuration.
func loadConfig(cmd *cobra.Command, f *exportFlags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = f.format
	}
	if flags.Changed("no-header") {
		cfg.Header.Enabled = !f.noHeader
	}
	if flags.Changed("messages") {
		cfg.Messages.File = f.messages
	}
	if flags.Changed("locale") {
		cfg.Messages.Locale = f.locale
	}
	if flags.Changed("exclude") {
		cfg.Exclude = f.exclude
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadOrders(fs afero.Fs, args []string) ([]demo.Order, error) {
	if len(args) == 0 {
		return demo.Sample(), nil
	}
	return demo.Load(fs, args[0])
}

// loadLabels returns the built-in catalog for the configured locale,
// overlaid with the entries of the configured message file.
func loadLabels(fs afero.Fs, cfg *config.Config) (*i18n.Catalog, error) {
	catalog, err := demo.Messages(cfg.Messages.Locale)
	if err != nil {
		return nil, err
	}
	if cfg.Messages.File == "" {
		return catalog, nil
	}
	data, err := afero.ReadFile(fs, cfg.Messages.File)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read messages from %s", cfg.Messages.File)
	}
	messages, err := i18n.Parse(data, strings.TrimPrefix(filepath.Ext(cfg.Messages.File), "."))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "cannot parse messages from %s", cfg.Messages.File)
	}
	if err := catalog.AddAll(messages); err != nil {
		return nil, err
	}
	return catalog, nil
}

// prepare loads everything an export needs.
func prepare(cmd *cobra.Command, fs afero.Fs, f *exportFlags, args []string) (*config.Config, []demo.Order, *i18n.Catalog, error) {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return nil, nil, nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	orders, err := loadOrders(fs, args)
	if err != nil {
		return nil, nil, nil, fmt.Errorf(MsgErrLoadOrders, err)
	}
	catalog, err := loadLabels(fs, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf(MsgErrLoadLabels, err)
	}
	return cfg, orders, catalog, nil
}

func newExporter(sink export.Sink, cfg *config.Config, catalog *i18n.Catalog) *export.Exporter {
	return export.New(sink,
		export.WithResolver(catalog),
		export.WithHeader(cfg.Header.Enabled),
		export.WithExcluded(cfg.Exclude...),
	)
}

func runExport(cmd *cobra.Command, fs afero.Fs, f *exportFlags, args []string) error {
	cfg, orders, catalog, err := prepare(cmd, fs, f, args)
	if err != nil {
		return err
	}

	var sink export.Sink
	switch cfg.Format {
	case config.FormatXlsx:
		wb := xlsx.New(cfg.XlsxOptions())
		defer func() { _ = wb.Close() }()
		sink = wb
	default:
		sink = text.New(cfg.TextOptions())
	}

	var w io.Writer = cmd.OutOrStdout()
	if f.out != "" {
		file, err := fs.Create(f.out)
		if err != nil {
			return fmt.Errorf(MsgErrCreateOut, f.out, err)
		}
		defer func() { _ = file.Close() }()
		w = file
	} else if cfg.Format == config.FormatXlsx && isTerminal(w) {
		return errors.New(errors.ErrInvalidInput, MsgErrBinaryToTTY)
	}

	counter := &countingWriter{w: w}
	if err := newExporter(sink, cfg, catalog).Run(counter, orders); err != nil {
		return fmt.Errorf(MsgErrExport, err)
	}
	if f.out != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgWrote, counter.n, f.out)
	}
	return nil
}

func runPreview(cmd *cobra.Command, fs afero.Fs, f *exportFlags, args []string) error {
	cfg, orders, catalog, err := prepare(cmd, fs, f, args)
	if err != nil {
		return err
	}

	opts := cfg.TextOptions()
	opts.Enclosure = ""
	sink := text.New(opts)
	e := newExporter(sink, cfg, catalog)
	if err := e.Init(); err != nil {
		return fmt.Errorf(MsgErrExport, err)
	}
	if err := e.Export(orders); err != nil {
		return fmt.Errorf(MsgErrExport, err)
	}
	if err := e.Finalize(); err != nil {
		return fmt.Errorf(MsgErrExport, err)
	}
	return display.Table(cmd.OutOrStdout(), sink.Grid(), cfg.Header.Enabled)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
