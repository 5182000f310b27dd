package health

import (
	"net/http"

	"github.com/heptiolabs/healthcheck"
	"go.uber.org/zap"

	"emailbook/backend/internal/storage"
)

// HealthChecker 健康检查器
type HealthChecker struct {
	health healthcheck.Handler
	repo   storage.EmailAddressRepository
	logger *zap.Logger
}

// NewHealthChecker 创建健康检查器
func NewHealthChecker(repo storage.EmailAddressRepository, logger *zap.Logger) *HealthChecker {
	hc := &HealthChecker{
		health: healthcheck.NewHandler(),
		repo:   repo,
		logger: logger,
	}

	hc.addChecks()

	return hc
}

// addChecks 添加健康检查
func (hc *HealthChecker) addChecks() {
	// 数据库连接检查
	hc.health.AddReadinessCheck("database", func() error {
		return hc.repo.Health()
	})

	hc.health.AddLivenessCheck("database", func() error {
		return hc.repo.Health()
	})
}

// LiveEndpoint 存活检查处理器
func (hc *HealthChecker) LiveEndpoint() http.HandlerFunc {
	return hc.health.LiveEndpoint
}

// ReadyEndpoint 就绪检查处理器
func (hc *HealthChecker) ReadyEndpoint() http.HandlerFunc {
	return hc.health.ReadyEndpoint
}
