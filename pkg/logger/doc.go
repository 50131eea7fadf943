// Package logger builds the process *slog.Logger.
//
// New picks a text or JSON handler from the options and wraps it so that
// values stored in a request context (request id, environment) are added to
// every record logged with the *Context methods:
//
//	log := logger.New(
//		logger.WithEnvironment(env, "contactdesk"),
//		logger.WithContextExtractors(
//			requestid.LoggerExtractor(),
//			environment.LoggerExtractor(),
//		),
//	)
//	log.InfoContext(ctx, "contact created", logger.ContactID(id))
//
// The attribute helpers keep key names consistent across packages. Error and
// RequestID return an empty attribute for empty input, which slog drops.
package logger
