// Package config loads perch settings from TOML.
//
// # Resolution
//
//  1. The path passed to Load, or ~/.config/perch/config.toml when empty
//  2. Missing file: built-in defaults
//  3. Blank or missing keys: the default for that key
//  4. PERCH_API_URL, PERCH_DB_PATH, PERCH_LOG_DIR and PERCH_LOG_LEVEL
//     override whatever the file said
//
// The binaries load a .env file from the working directory before calling
// Load, so the environment overrides can live there too.
//
// # Keys
//
//	api_url                  = ""                 # empty: run the embedded mock API
//	mock_bind                = "127.0.0.1:7488"
//	db_path                  = "~/.local/share/perch/perch.db"
//	log_dir                  = "~/.local/share/perch/logs"
//	log_level                = "info"             # debug, info, warn, error
//	log_format               = "text"             # text, json
//	request_timeout_seconds  = 5
//	busy_timeout_seconds     = 5
//
// Paths accept a leading ~ and are returned absolute.
package config
