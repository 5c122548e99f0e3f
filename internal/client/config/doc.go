// Package config loads runtime configuration for the questionnaire CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the questionnaire API
//	-s string   path of the local session database
//	-t int      request timeout (seconds)
//	-p string   route opened on startup
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8080",
//	  "storage_path": "questionnaire.db",
//	  "request_timeout": "10s",
//	  "start_path": "/",
//	  "log_level": "info"
//	}
package config
