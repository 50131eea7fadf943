package httpserver_test

import "log/slog"

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
