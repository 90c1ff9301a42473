// Package config handles loading and parsing the atlas configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/atlas/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	catalog_url = "https://restcountries.com/v3.1/all?fields=..."
//	api_bind = "127.0.0.1:8080"
//	request_timeout = "10s"   # empty: requests may stay pending forever
//	log_file = "~/.local/state/atlas/atlas.log"
//	log_level = "info"
//
//	[server]
//	listen = "127.0.0.1:8080"
//	database = "~/.local/share/atlas/atlas.db"
//
// All fields are optional. Tilde expansion is performed for log_file and
// server.database.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and malformed or negative durations.
// A missing file is not an error.
package config
