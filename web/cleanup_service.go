package web

import (
	"context"
	"time"

	"fal-engine/config"
	"fal-engine/guard"
	"fal-engine/web/middleware"

	"go.uber.org/zap"
)

// CleanupService bounds the memory of the in-process stores without
// changing what any recency query returns.
type CleanupService struct {
	history  *guard.HistoryStore
	cooldown *guard.TemplateCooldown
	limiter  *middleware.ClientRateLimiter
	logger   *zap.Logger
}

// CleanupReport summarizes one cleanup pass.
type CleanupReport struct {
	ReadingsCompacted int
	CooldownsPruned   int
	ClientsForgotten  int
}

// NewCleanupService creates a new cleanup service instance
func NewCleanupService(history *guard.HistoryStore, cooldown *guard.TemplateCooldown, limiter *middleware.ClientRateLimiter, logger *zap.Logger) *CleanupService {
	return &CleanupService{
		history:  history,
		cooldown: cooldown,
		limiter:  limiter,
		logger:   logger,
	}
}

// RunOnce compacts histories, prunes lapsed template cooldowns and forgets
// idle rate-limit clients.
func (cs *CleanupService) RunOnce(now time.Time) CleanupReport {
	report := CleanupReport{
		ReadingsCompacted: cs.history.Compact(),
		CooldownsPruned:   cs.cooldown.Prune(now),
	}
	if cs.limiter != nil {
		report.ClientsForgotten = cs.limiter.Cleanup(now)
	}

	users, readings := cs.history.Stats()
	cs.logger.Debug("Store cleanup completed",
		zap.Int("readings_compacted", report.ReadingsCompacted),
		zap.Int("cooldowns_pruned", report.CooldownsPruned),
		zap.Int("clients_forgotten", report.ClientsForgotten),
		zap.Int("users", users),
		zap.Int("readings", readings))

	return report
}

// StartStoreCleanup runs RunOnce every CleanupInterval until ctx is done.
func StartStoreCleanup(ctx context.Context, cfg *config.Config, cs *CleanupService, logger *zap.Logger) {
	if !cfg.CleanupEnabled {
		logger.Info("Store cleanup disabled")
		return
	}

	logger.Info("Starting store cleanup routine", zap.Duration("interval", cfg.CleanupInterval))

	ticker := time.NewTicker(cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping store cleanup routine")
			return
		case now := <-ticker.C:
			cs.RunOnce(now)
		}
	}
}
