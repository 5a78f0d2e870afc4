// Package observability builds the structured zap loggers used by the
// console server and the outreachctl CLI.
package observability
