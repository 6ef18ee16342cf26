// Package errors provides the classified error primitives used across staticfiles.
//
// Every error carries a category (which selects the CLI exit code), a severity
// (fatal errors are always logged) and a retry hint. Nothing in staticfiles
// retries; the hint tells the user whether re-running can help without
// changing their configuration.
//
// Example usage:
//
//	err := errors.FileSystemError("copy file failed").
//		WithCause(cause).
//		WithContext("path", src).
//		Build()
package errors
