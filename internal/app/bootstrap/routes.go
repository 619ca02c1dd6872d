// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	assessmentsfeature "github.com/mindhaven/mindhaven/internal/app/features/assessments"
	authapifeature "github.com/mindhaven/mindhaven/internal/app/features/authapi"
	healthfeature "github.com/mindhaven/mindhaven/internal/app/features/health"
	historyfeature "github.com/mindhaven/mindhaven/internal/app/features/history"
	meditationsfeature "github.com/mindhaven/mindhaven/internal/app/features/meditations"
	moodfeature "github.com/mindhaven/mindhaven/internal/app/features/mood"
	profilefeature "github.com/mindhaven/mindhaven/internal/app/features/profile"
	reportsfeature "github.com/mindhaven/mindhaven/internal/app/features/reports"
	statsfeature "github.com/mindhaven/mindhaven/internal/app/features/stats"
	"github.com/mindhaven/mindhaven/internal/app/system/auth"
	"github.com/mindhaven/mindhaven/internal/app/system/ratelimit"
	"github.com/mindhaven/mindhaven/internal/app/system/webjson"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. Token verification and the
// per-IP limiters are built here and shared across feature routers:
// registration and login carry their own tight limits on top of the
// global one.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	authMgr := auth.New(appCfg.JWTSecret, appCfg.AccessTokenTTL, appCfg.RefreshTokenTTL)

	globalLimiter := ratelimit.New(appCfg.GlobalRateLimit, time.Minute)
	registerLimiter := ratelimit.New(appCfg.RegisterRateLimit, time.Minute)
	loginLimiter := ratelimit.New(appCfg.LoginRateLimit, time.Minute)

	r := chi.NewRouter()
	r.Use(globalLimiter.Middleware)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		webjson.Write(w, http.StatusOK, map[string]string{
			"service": "mindhaven",
			"message": "mental wellness tracking API",
		})
	})

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Registration, login, and token refresh live at the top level, so
	// they register onto the root router instead of a mounted one.
	authHandler := authapifeature.NewHandler(deps.Gateway, authMgr, logger)
	authapifeature.Register(r, authHandler, registerLimiter, loginLimiter)

	// Public meditation catalog, with the authenticated session log
	// nested under /meditations/history.
	meditationsHandler := meditationsfeature.NewHandler(deps.Gateway, logger)
	historyHandler := historyfeature.NewHandler(deps.Gateway, logger)
	medRouter := meditationsfeature.Routes(meditationsHandler)
	medRouter.Mount("/history", historyfeature.Routes(historyHandler, authMgr))
	r.Mount("/meditations", medRouter)

	// Public aggregate counters
	statsHandler := statsfeature.NewHandler(deps.Gateway, logger)
	r.Mount("/stats", statsfeature.Routes(statsHandler))

	// Everything below requires a bearer access token.
	profileHandler := profilefeature.NewHandler(deps.Gateway, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler, authMgr))
	r.Mount("/users", profilefeature.DeleteRoutes(profileHandler, authMgr))

	moodHandler := moodfeature.NewHandler(deps.Gateway, logger)
	r.Mount("/mood", moodfeature.Routes(moodHandler, authMgr))

	assessmentsHandler := assessmentsfeature.NewHandler(deps.Gateway, logger)
	r.Mount("/assessments", assessmentsfeature.Routes(assessmentsHandler, authMgr))

	reportsHandler := reportsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/reports", reportsfeature.Routes(reportsHandler, authMgr))

	return r, nil
}
