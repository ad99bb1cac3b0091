package logging

import "log/slog"

// Info logs at info level. A nil logger drops the record.
func Info(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Info(msg, args...)
}

// Warn logs at warn level. A nil logger drops the record.
func Warn(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, args...)
}

// Error logs at error level, attaching err under FieldError when set.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if logger == nil {
		return
	}
	if err != nil {
		args = append(args, slog.String(FieldError, err.Error()))
	}
	logger.Error(msg, args...)
}
