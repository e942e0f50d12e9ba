package health

import (
	"fmt"
	"time"

	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/mhartig/microshop/internal/config"
)

// NewHealthHandler builds the /health endpoint for a service. The database is
// always checked; redis only when the rate limiter is enabled.
func NewHealthHandler(cfg *config.Config, serviceName string) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.URL,
			}),
		},
	}

	if cfg.Redis.Addr != "" {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: true,
			Check: healthRedis.New(healthRedis.Config{
				DSN: redisDSN(cfg.Redis),
			}),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    serviceName,
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

func redisDSN(cfg config.Redis) string {
	return fmt.Sprintf("redis://:%s@%s/%d", cfg.Password, cfg.Addr, cfg.DB)
}
