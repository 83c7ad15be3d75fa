// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/sharehub/sharehub/internal/app/engine"
	groupsfeature "github.com/sharehub/sharehub/internal/app/features/groups"
	healthfeature "github.com/sharehub/sharehub/internal/app/features/health"
	reportsfeature "github.com/sharehub/sharehub/internal/app/features/reports"
	resourcesfeature "github.com/sharehub/sharehub/internal/app/features/resources"
	usersfeature "github.com/sharehub/sharehub/internal/app/features/users"
	"github.com/sharehub/sharehub/internal/app/store"
	"github.com/sharehub/sharehub/internal/app/system/requestlog"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. ShareHub builds one store
// bundle and one resolution engine over it, then mounts the JSON API
// feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.ShareHubMongoDatabase

	bundle := store.NewBundle(db)
	eng := engine.New(bundle, logger, appCfg.ResolverConcurrency)

	r := chi.NewRouter()

	// Request id + structured access log on every request.
	r.Use(requestlog.Middleware(logger))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.ShareHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(api chi.Router) {
		usersHandler := usersfeature.NewHandler(db, eng, logger)
		api.Mount("/users", usersfeature.Routes(usersHandler))

		groupsHandler := groupsfeature.NewHandler(db, logger)
		api.Mount("/groups", groupsfeature.Routes(groupsHandler))

		resourcesHandler := resourcesfeature.NewHandler(db, eng, logger)
		api.Mount("/resources", resourcesfeature.Routes(resourcesHandler))

		reportsHandler := reportsfeature.NewHandler(eng, logger)
		api.Mount("/reports", reportsfeature.Routes(reportsHandler))
	})

	return r, nil
}
