package tabexport

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort    = "Export object graphs as spreadsheets or delimited text"
	MsgExportShort  = "Export an order book"
	MsgPreviewShort = "Show an export as a terminal table"
	MsgConfigShort  = "Print the default configuration"
	MsgVersionShort = "Print version information"

	// Status messages
	MsgWrote       = "Wrote %d bytes to %s\n"
	MsgVersionLine = "tabexport %s (commit %s, built %s)\n"

	// Error messages
	MsgErrNoCommand   = "no command specified"
	MsgErrLoadConfig  = "failed to load configuration: %w"
	MsgErrLoadOrders  = "failed to load orders: %w"
	MsgErrLoadLabels  = "failed to load labels: %w"
	MsgErrCreateOut   = "failed to create %s: %w"
	MsgErrExport      = "export failed: %w"
	MsgErrBinaryToTTY = "refusing to write an xlsx workbook to a terminal, use --out"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Configuration file (default: user configuration)"
	MsgFlagFormat   = "Output format: text or xlsx"
	MsgFlagOut      = "Write to this file instead of stdout"
	MsgFlagNoHeader = "Omit the header rows"
	MsgFlagMessages = "TOML or YAML message file overriding the built-in labels"
	MsgFlagLocale   = "Locale of the built-in labels (en, it)"
	MsgFlagExclude  = "Property names never exported (comma separated)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/export-long.txt
	msgExportLongRaw string
	MsgExportLong    = strings.TrimSpace(msgExportLongRaw)

	//go:embed msgs/export-example.txt
	msgExportExampleRaw string
	MsgExportExample    = strings.TrimRight(msgExportExampleRaw, "\n")

	//go:embed msgs/preview-long.txt
	msgPreviewLongRaw string
	MsgPreviewLong    = strings.TrimSpace(msgPreviewLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
