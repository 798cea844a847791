// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// Logger is the optional, narrow observability seam the core exposes to
// its host. Host integration, and therefore logging configuration, is
// out of scope for this core (see the package doc); coro never mandates
// a logging stack and defaults to NopLogger everywhere a Logger field
// exists.
type Logger interface {
	Warn(msg string, fields ...Field)
}

// Field is a minimal key/value pair, kept deliberately narrow so the
// core does not take a structural dependency on any particular
// structured-logging library's field type.
type Field struct {
	Key   string
	Value any
}

// NopLogger discards every message. It is the default Logger everywhere
// this package accepts one.
type NopLogger struct{}

// Warn implements Logger by doing nothing.
func (NopLogger) Warn(string, ...Field) {}
