package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/contactdesk/pkg/binder"
	"github.com/dmitrymomot/contactdesk/pkg/environment"
	"github.com/dmitrymomot/contactdesk/pkg/logger"
	"github.com/dmitrymomot/contactdesk/pkg/requestid"
	"github.com/dmitrymomot/contactdesk/pkg/validator"
)

// Classify maps err to a status code and the envelope sent to the client.
// The error detail is only exposed outside production.
func Classify(r *http.Request, err error) (int, Envelope) {
	status, env := classify(err)
	if !environment.IsProduction(r.Context()) {
		env.Error = err.Error()
	}
	env.RequestID = requestid.FromContext(r.Context())
	now := time.Now().UTC()
	env.Timestamp = &now
	return status, env
}

func classify(err error) (int, Envelope) {
	if ve := validator.ExtractValidationErrors(err); ve != nil {
		return http.StatusBadRequest, Envelope{Message: "Dados inválidos", Errors: ve.Fields()}
	}

	switch {
	case errors.Is(err, binder.ErrBodyTooLarge):
		return ErrRequestTooLarge.Code, Envelope{Message: ErrRequestTooLarge.Message}
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return ErrUnsupportedMediaType.Code, Envelope{Message: ErrUnsupportedMediaType.Message}
	case errors.Is(err, binder.ErrInvalidJSON), errors.Is(err, binder.ErrInvalidQuery), errors.Is(err, binder.ErrInvalidPath):
		return ErrBadRequest.Code, Envelope{Message: ErrBadRequest.Message}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, Envelope{Message: httpErr.Message}
	}
	return ErrInternal.Code, Envelope{Message: ErrInternal.Message}
}

// NewErrorHandler logs the failure and writes the JSON error envelope.
// Client errors are logged at warn level, server errors at error level.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}
	return func(ctx Context, err error) {
		r := ctx.Request()
		status, env := Classify(r, err)

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.Component("http"),
			logger.HTTPRequest(r.Method, r.URL.Path),
			logger.StatusCode(status),
			logger.Error(err),
		)

		if werr := WriteJSON(ctx.ResponseWriter(), status, env); werr != nil {
			log.ErrorContext(r.Context(), "failed to write error response",
				logger.Component("http"),
				logger.Error(werr),
			)
		}
	}
}
