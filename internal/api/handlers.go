package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/contactdesk/handler"
	"github.com/dmitrymomot/contactdesk/pkg/environment"
	"github.com/dmitrymomot/contactdesk/pkg/health"
	"github.com/dmitrymomot/contactdesk/pkg/logger"
	"github.com/dmitrymomot/contactdesk/pkg/mongo"
	"github.com/dmitrymomot/contactdesk/pkg/ratelimiter"
)

type healthResponse struct {
	Success     bool                    `json:"success"`
	Message     string                  `json:"message"`
	Timestamp   time.Time               `json:"timestamp"`
	Environment environment.Environment `json:"environment"`
	Database    *health.DatabaseStatus  `json:"database,omitempty"`
}

// healthHandler serves /api/health. Only ?db=true touches the database.
func healthHandler(rep *health.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deep := r.URL.Query().Get("db") == "true"
		report := rep.Report(r.Context(), deep)

		resp := healthResponse{
			Success:     report.OK,
			Message:     "API funcionando",
			Timestamp:   report.Timestamp,
			Environment: report.Environment,
			Database:    report.Database,
		}
		status := http.StatusOK
		if !report.OK {
			resp.Message = "Banco de dados indisponível"
			status = http.StatusServiceUnavailable
		}
		_ = handler.WriteJSON(w, status, resp)
	}
}

type diagnosticsResponse struct {
	Success     bool                    `json:"success"`
	Message     string                  `json:"message"`
	Error       string                  `json:"error,omitempty"`
	Timestamp   time.Time               `json:"timestamp"`
	Environment environment.Environment `json:"environment"`
	Database    *health.DatabaseStatus  `json:"database,omitempty"`
	Stats       *mongo.Stats            `json:"stats,omitempty"`
}

// dbTestHandler serves /api/db-test: ping plus dbStats, 500 on any failure.
func dbTestHandler(rep *health.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		diag, err := rep.Diagnostics(r.Context())
		resp := diagnosticsResponse{
			Success:     diag.OK,
			Message:     "Conexão com MongoDB bem-sucedida",
			Timestamp:   diag.Timestamp,
			Environment: diag.Environment,
			Database:    diag.Database,
			Stats:       diag.Stats,
		}
		if err != nil {
			resp.Message = "Erro ao conectar com MongoDB"
			if errors.Is(err, mongo.ErrConfiguration) {
				resp.Message = "Erro de configuração do MongoDB"
			}
			if diag.Database != nil && !environment.IsProduction(r.Context()) {
				resp.Error = diag.Database.Message
			}
			_ = handler.WriteJSON(w, http.StatusInternalServerError, resp)
			return
		}
		_ = handler.WriteJSON(w, http.StatusOK, resp)
	}
}

func index(cfg Config) http.HandlerFunc {
	body := map[string]any{
		"success":     true,
		"message":     "API de contatos",
		"service":     cfg.ServiceName,
		"version":     cfg.Version,
		"environment": cfg.Environment,
		"endpoints": map[string]string{
			"health":      "GET /api/health",
			"healthDeep":  "GET /api/health?db=true",
			"dbTest":      "GET /api/db-test",
			"ready":       "GET /api/ready",
			"createForm":  "POST /api/contacts",
			"list":        "GET /api/contacts",
			"get":         "GET /api/contacts/{id}",
			"updateState": "PATCH /api/contacts/{id}/status",
		},
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		_ = handler.WriteJSON(w, http.StatusOK, body)
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	_ = handler.WriteJSON(w, http.StatusNotFound, handler.Envelope{
		Message: "Rota não encontrada",
		Path:    r.URL.Path,
	})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	_ = handler.WriteJSON(w, http.StatusMethodNotAllowed, handler.Envelope{
		Message: "Método não permitido",
		Path:    r.URL.Path,
	})
}

// gateReject turns a connector failure into 503.
func gateReject(log *slog.Logger) mongo.RejectHandler {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		log.WarnContext(r.Context(), "request rejected, database unavailable",
			logger.Component("gate"),
			logger.HTTPRequest(r.Method, r.URL.Path),
			logger.Error(err),
		)
		status, env := handler.Classify(r, handler.ErrServiceUnavailable.Wrap(err))
		_ = handler.WriteJSON(w, status, env)
	}
}

func rateLimited(w http.ResponseWriter, r *http.Request, _ *ratelimiter.Result) {
	status, env := handler.Classify(r, handler.ErrTooManyRequests)
	_ = handler.WriteJSON(w, status, env)
}
