// Package config loads runtime configuration for the profile client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c / -config, or PROFILE_CONFIG.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the profile API (default http://localhost:4000)
//	-d string   SQLite file holding the session token (default profile.db)
//	-t int      request timeout in seconds, 0 disables it (default 0)
//	-i int      online status check interval in seconds (default 3)
//	-l string   log level: debug, info, warn, error (default info)
//
// # JSON schema
//
// Durations accept "5s"-style strings or integer nanoseconds. Absent keys
// leave the default untouched.
//
//	{
//	  "api_base_url": "http://localhost:4000",
//	  "database_path": "profile.db",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s",
//	  "log_level": "debug"
//	}
package config
