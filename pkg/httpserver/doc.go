// Package httpserver wraps net/http with graceful shutdown driven by context
// cancellation or SIGINT/SIGTERM, plus stop hooks for releasing resources
// such as the database connection once in-flight requests have drained.
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(conn.Disconnect),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
package httpserver
