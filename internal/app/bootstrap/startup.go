// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/openjam/jamcore/internal/app/system/genres"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It is the
// place to load shared resources, warm caches, or perform any app-wide setup
// that depends on config and backends.
//
// JamCore loads the embedded genre catalog here so a malformed catalog fails
// the boot instead of the first session creation.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := genres.Load(); err != nil {
		logger.Error("genre catalog load failed", zap.Error(err))
		return err
	}
	all, err := genres.All()
	if err != nil {
		return err
	}
	logger.Info("genre catalog loaded", zap.Int("genres", len(all)))
	return nil
}
