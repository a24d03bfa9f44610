// Package config provides user configuration for the calendar permissions console.
//
// The configuration is a YAML file with three sections: exchange (admin API
// endpoint, tenant, timeout, retries), ui (color mode, border style, default
// foreground, window title) and logging (diagnostic level and the audit log).
// A missing file is not an error; every setting has a default.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/calperm/config.yaml or $HOME/.config/calperm/config.yaml
//   - macOS: $HOME/.config/calperm/config.yaml
//   - Windows: %LOCALAPPDATA%\calperm\config.yaml
//
// # Security
//
// Access tokens are never written here. They live in the OS keyring or in
// the CALPERM_TOKEN environment variable.
//
// # Example
//
//	version: 1
//	exchange:
//	  tenant: contoso.onmicrosoft.com
//	  max_retries: 3
//	ui:
//	  color_mode: 8bit
//	  border: rounded
//	logging:
//	  file: calendar-permissions
//	  timestamp: true
package config
