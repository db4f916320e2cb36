// Package kernel assembles the HTTP stack: global middleware, the
// operational endpoints, and the application routes.
package kernel

import (
	"net/http"
	"time"

	"github.com/risewynn/qellum/app/routes"
	"github.com/risewynn/qellum/pkg/metrics"
	"github.com/risewynn/qellum/pkg/middleware"
	"github.com/risewynn/qellum/pkg/reqid"
	"github.com/risewynn/qellum/pkg/response"
	"github.com/risewynn/qellum/pkg/router"
)

// NewHTTPKernel builds the router with the full middleware chain.
// Order matters: metrics wraps everything, recovery catches panics from
// all inner layers, request id and logger run before any handler.
func NewHTTPKernel() *router.Router {
	r := router.New()

	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(120, time.Minute),
	)

	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	routes.RegisterAPI(r)

	return r
}
