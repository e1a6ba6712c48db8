// Package config loads export settings from the built-in defaults, an
// optional TOML file and TABEXPORT_ environment variables, in that order
// of precedence.
package config
