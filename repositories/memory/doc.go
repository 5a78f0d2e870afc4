// Package memory implements the repositories on seeded in-process state.
// It backs the console when no database is configured and in tests.
package memory
