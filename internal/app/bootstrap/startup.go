// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	grantstore "github.com/sharehub/sharehub/internal/app/store/grants"
	"github.com/sharehub/sharehub/internal/app/system/seed"
	"github.com/sharehub/sharehub/internal/app/system/timeouts"
	"github.com/sharehub/sharehub/internal/app/system/workers"
	"go.uber.org/zap"
)

// grantSweep is started in Startup and stopped in Shutdown. Nil when
// the sweep is disabled.
var grantSweep *workers.GrantSweep

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeouts configured from environment", zap.Int("overrides", n))
	}

	if appCfg.SeedDemoData {
		if err := seed.DemoData(ctx, deps.ShareHubMongoDatabase, logger); err != nil {
			return err
		}
	}

	if appCfg.GrantSweepMinutes > 0 {
		grants := grantstore.New(deps.ShareHubMongoDatabase)
		grantSweep = workers.NewGrantSweep(grants, logger, time.Duration(appCfg.GrantSweepMinutes)*time.Minute)
		grantSweep.Start()
	}
	return nil
}
