// Package model holds the data types shared by the sessionizer packages:
// live session stats, selection candidates, configuration entries and the
// error kinds every layer wraps its failures with.
package model

import "errors"

// Error kinds. Every failure is wrapped with exactly one of these so callers
// can classify it with errors.Is.
var (
	// ErrConfig marks malformed configuration.
	ErrConfig = errors.New("config error")
	// ErrIO marks directory listing or file read failures.
	ErrIO = errors.New("io error")
	// ErrPath marks a path that cannot be represented as text.
	ErrPath = errors.New("path error")
	// ErrEnvSubst marks a reference to an unset environment variable.
	ErrEnvSubst = errors.New("env substitution error")
	// ErrParse marks a malformed session listing line.
	ErrParse = errors.New("parse error")
	// ErrProcess marks a failed external command.
	ErrProcess = errors.New("process error")
)
