// Package logger provides structured logging for the BSS client.
//
// It wraps the standard library log/slog behind a small Logger interface:
//
//   - JSON structured logging (default) or text output
//   - Automatic redaction of secrets, preauth signatures and tokens
//   - Context-aware logging with request ID propagation
//   - Runtime level adjustment per logger
//
// Libraries embedding the client pass their own Logger; otherwise the
// package default is used.
package logger
