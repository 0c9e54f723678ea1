package debug

import (
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

// Logger returns the debug sink. It defaults to a development logger
// writing to stderr.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		l = zap.NewNop()
	}
	if logger.CompareAndSwap(nil, l) {
		return l
	}
	return logger.Load()
}

// SetLogger replaces the debug sink. It is safe to call while other
// goroutines log.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// Logf formats msg with args and writes it at debug level. Arguments
// implementing fmt.Stringer, such as expressions, render in their
// concrete syntax.
func Logf(msg string, args ...any) {
	for i, a := range args {
		if s, ok := a.(fmt.Stringer); ok {
			args[i] = s.String()
		}
	}
	Logger().WithOptions(zap.AddCallerSkip(1)).Sugar().Debugf(strings.TrimRight(msg, "\n"), args...)
}

// LogAny writes v as a structured field.
func LogAny(msg string, v any) {
	Logger().WithOptions(zap.AddCallerSkip(1)).Debug(msg, zap.Any("value", v))
}
