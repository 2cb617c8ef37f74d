// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	healthfeature "github.com/openjam/jamcore/internal/app/features/health"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// JamCore is an engine, not a web application: the discovery, visibility,
// and recording-claim logic lives in internal/app/core and is consumed as a
// library. The only route this process serves is the health endpoint for
// load balancers and orchestrators.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	healthHandler := healthfeature.NewHandler(deps.JamCoreMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	return r, nil
}
