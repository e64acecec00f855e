// Package defaults provides centralized configuration constants for ruvalidate.
//
// This package defines the fixed schema locations the tool reads, input
// limits, and matching bounds used across the codebase. Centralizing these
// values keeps the CLI, the schema loader and the validator in agreement.
//
// # Categories
//
//   - Schema layout: where condition definitions and target patterns live
//   - Input buffers: read buffer size for target files
//   - Matching bounds: regex match timeout
//   - Suggestions: edit distance for unknown-key hints
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/readuntil/ruvalidate/pkg/defaults"
//
//	r := bufio.NewReaderSize(f, defaults.InitialLineBuffer)
package defaults
