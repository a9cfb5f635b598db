// Package cli contains the command-line interface for sapling.
//
// # Usage
//
//	sapling run program.sap
//	sapling run --compile --time program.sap
//	sapling run --recursive examples/
//	sapling fmt --yaml program.sap
//	sapling repl
//
// # Logging options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-output: Log output file ('-' for stderr)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-callsite: Include callsite information in log output
//
// # Profiling options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o sapling .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/sapling/pprof)
package cli
