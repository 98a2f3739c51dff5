// Package instrument wires OpenTelemetry tracing, metrics and logs and installs
// the process-wide slog logger.
//
// Every log record is written as JSON to stdout, tagged with the service name
// and the request correlation id, and has configured sensitive keys masked.
package instrument
