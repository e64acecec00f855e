// Package cli implements the command-line interface for the ruvalidate tool.
//
// # Overview
//
// ruvalidate checks a Read Until configuration file against a JSON Schema
// and, with --targets, checks the target list files the configuration
// references line by line.
//
// # Commands
//
// Validate a configuration (root command):
//
//	ruvalidate [--targets] [--targets-dir DIR] [--fail-on-violation] TOML SCHEMA
//	ruvalidate -t --format json --output report.json experiment.toml rules.schema.json
//
// The configuration is TOML; files ending in .yaml, .yml or .json are read
// in that format. On a schema failure the report starts with
//
//	😾 this TOML file is not valid and may not work with Read Until:
//
// followed by one line per schema error. Rejected target lines are printed
// as PATH:LINE is invalid (CONTENT).
//
// patterns - List the target patterns a schema declares:
//
//	ruvalidate patterns rules.schema.json
//
// # Global Flags
//
//	--format, -f     Output format: text, json, yaml, table (default: text)
//	--output, -o     Output file path (default: stdout)
//	--draft          JSON Schema draft for schemas without $schema (default: 2020)
//	--metrics-file   Write run metrics in Prometheus text format
//	--debug          Enable debug logging
//	--log-json       Output logs in JSON format
//	--help, -h       Show command help
//	--version, -v    Show version information
//
// # Environment Variables
//
//	LOG_LEVEL               Set logging verbosity (debug, info, warn, error)
//	RUVALIDATE_DEBUG        Same as --debug
//	RUVALIDATE_LOG_JSON     Same as --log-json
//	RUVALIDATE_TARGETS_DIR  Same as --targets-dir
//
// # Exit Codes
//
//	0  Valid (target violations are reported but do not fail the run)
//	1  Invalid configuration, unreadable or malformed input, or target
//	   violations with --fail-on-violation
//	2  Usage error
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/readuntil/ruvalidate/pkg/cli.version=1.0.0'"
package cli
