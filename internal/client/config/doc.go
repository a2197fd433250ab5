// Package config loads runtime configuration for the gophauth CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the API server
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-f string   session file
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:5000",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s",
//	  "session_file": "session.db"
//	}
package config
