package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/jminango20/data-docs-api/api/handler"
)

type Handlers struct {
	Document *apiHandler.DocumentHandler
	Search   *apiHandler.SearchHandler
	Health   *apiHandler.HealthHandler
}

// Options carries cross-cutting route configuration.
type Options struct {
	Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler
	Metrics    fasthttp.RequestHandler
}

func New(handlers Handlers, opts Options) *router.Router {
	wrap := opts.Middleware
	if wrap == nil {
		wrap = func(next fasthttp.RequestHandler) fasthttp.RequestHandler { return next }
	}

	r := router.New()

	r.GET("/health", wrap(handlers.Health.Check))
	if opts.Metrics != nil {
		r.GET("/metrics", opts.Metrics)
	}

	// Document routes
	r.POST("/api/v1/documents", wrap(handlers.Document.AddDocuments))
	r.DELETE("/api/v1/documents", wrap(handlers.Document.RemoveDocuments))
	r.PATCH("/api/v1/documents", wrap(handlers.Document.UpdateDocuments))
	r.GET("/api/v1/documents/{id}", wrap(handlers.Document.GetDocument))
	r.POST("/api/v1/documents/search", wrap(handlers.Search.Search))

	return r
}
