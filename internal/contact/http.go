package contact

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/contactdesk/handler"
	"github.com/dmitrymomot/contactdesk/pkg/binder"
	"github.com/dmitrymomot/contactdesk/pkg/clientip"
	"github.com/dmitrymomot/contactdesk/pkg/mongo"
)

var (
	errNotFoundHTTP  = handler.NewHTTPError(http.StatusNotFound, "Contato não encontrado")
	errInvalidIDHTTP = handler.NewHTTPError(http.StatusBadRequest, "ID inválido")
)

type idRequest struct {
	ID string `path:"id"`
}

type statusRequest struct {
	ID     string `path:"id" json:"-"`
	Status Status `json:"status"`
}

// HTTPOption configures Routes.
type HTTPOption func(*httpConfig)

type httpConfig struct {
	errorHandler  handler.ErrorHandler
	createLimiter func(http.Handler) http.Handler
}

func WithErrorHandler(h handler.ErrorHandler) HTTPOption {
	return func(c *httpConfig) { c.errorHandler = h }
}

// WithCreateLimiter guards the public form endpoint, usually with a per-IP rate limiter.
func WithCreateLimiter(mw func(http.Handler) http.Handler) HTTPOption {
	return func(c *httpConfig) { c.createLimiter = mw }
}

// Routes mounts the contact endpoints on r.
func Routes(svc *Service, opts ...HTTPOption) func(r chi.Router) {
	cfg := &httpConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	with := func(binders ...handler.Bind) []handler.WrapOption {
		return []handler.WrapOption{
			handler.WithErrorHandler(cfg.errorHandler),
			handler.WithBinders(binders...),
		}
	}
	path := binder.Path(chi.URLParam)

	return func(r chi.Router) {
		create := handler.Wrap(createHandler(svc), with(binder.JSON(0))...)
		if cfg.createLimiter != nil {
			r.With(cfg.createLimiter).Post("/", create)
		} else {
			r.Post("/", create)
		}
		r.Get("/", handler.Wrap(listHandler(svc), with(binder.Query())...))
		r.Get("/{id}", handler.Wrap(getHandler(svc), with(path)...))
		r.Patch("/{id}/status", handler.Wrap(statusHandler(svc), with(binder.JSON(0), path)...))
	}
}

func createHandler(svc *Service) handler.HandlerFunc[CreateInput] {
	return func(ctx handler.Context, req CreateInput) handler.Response {
		origin := Origin{
			IP:        clientip.FromContext(ctx),
			UserAgent: ctx.Request().UserAgent(),
		}
		c, err := svc.Create(ctx, req, origin)
		if err != nil {
			return handler.Fail(httpError(err))
		}
		return handler.Created(c, "Mensagem enviada com sucesso")
	}
}

func listHandler(svc *Service) handler.HandlerFunc[ListInput] {
	return func(ctx handler.Context, req ListInput) handler.Response {
		page, err := svc.List(ctx, req)
		if err != nil {
			return handler.Fail(httpError(err))
		}
		return handler.List(page.Items, map[string]any{
			"total": page.Total,
			"page":  page.Page,
			"limit": page.Limit,
			"pages": page.Pages,
		})
	}
}

func getHandler(svc *Service) handler.HandlerFunc[idRequest] {
	return func(ctx handler.Context, req idRequest) handler.Response {
		c, err := svc.Get(ctx, req.ID)
		if err != nil {
			return handler.Fail(httpError(err))
		}
		return handler.OK(c, "")
	}
}

func statusHandler(svc *Service) handler.HandlerFunc[statusRequest] {
	return func(ctx handler.Context, req statusRequest) handler.Response {
		c, err := svc.UpdateStatus(ctx, req.ID, req.Status)
		if err != nil {
			return handler.Fail(httpError(err))
		}
		return handler.OK(c, "Status atualizado")
	}
}

func httpError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return errNotFoundHTTP.Wrap(err)
	case errors.Is(err, ErrInvalidID):
		return errInvalidIDHTTP.Wrap(err)
	case mongo.KindOf(err) != mongo.KindUnknown:
		return handler.ErrServiceUnavailable.Wrap(err)
	}
	return err
}
