// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import "go.uber.org/zap"

// ZapLogger adapts a *zap.Logger to the Logger interface. It is the only
// non-default Logger implementation this package ships; a host that
// wants a different structured-logging library can satisfy Logger
// directly without pulling in zap at all.
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger wraps logger as a Logger. Passing a nil logger is
// equivalent to NopLogger.
func NewZapLogger(logger *zap.Logger) ZapLogger {
	return ZapLogger{logger: logger}
}

// Warn implements Logger by forwarding to the wrapped *zap.Logger.
func (z ZapLogger) Warn(msg string, fields ...Field) {
	if z.logger == nil {
		return
	}
	z.logger.Warn(msg, toZapFields(fields)...)
}

func toZapFields(fields []Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		out[i] = zap.Any(f.Key, f.Value)
	}
	return out
}
