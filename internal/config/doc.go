// Package config loads the cardeditor application settings.
//
// Settings come from a YAML file (cardeditor.yaml by default) and are then
// overridden by CARDEDITOR_* environment variables. Command-line flags are
// applied last by the caller. A missing file is not an error; defaults apply.
package config
