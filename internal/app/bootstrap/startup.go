// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/mindhaven/mindhaven/internal/app/store/gateway"
)

// Startup runs one-time application initialization after DB
// connections and schema setup are complete, but before the HTTP
// handler is built. A snapshot of collection counts goes to the log so
// operators can tell an empty database from a populated one at a
// glance.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	users, err := deps.Gateway.CountDocuments(ctx, gateway.UsersCollection)
	if err != nil {
		return err
	}
	meditations, err := deps.Gateway.CountDocuments(ctx, gateway.MeditationsCollection)
	if err != nil {
		return err
	}
	logger.Info("startup complete",
		zap.Int64("users", users),
		zap.Int64("meditations", meditations))
	return nil
}
