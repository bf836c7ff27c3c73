// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.orgagenda/orgagenda.toml or OS-specific config directory)
// 3. Project config file (orgagenda.toml, .orgagenda.toml or orgagenda.yaml)
// 4. Environment variables (ORGAGENDA_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.orgagenda/orgagenda.toml (preferred)
// - Windows: %APPDATA%\orgagenda\orgagenda.toml
// - macOS: ~/Library/Application Support/orgagenda/orgagenda.toml
// - Linux/BSD: $XDG_CONFIG_HOME/orgagenda/orgagenda.toml or ~/.config/orgagenda/orgagenda.toml
package config
