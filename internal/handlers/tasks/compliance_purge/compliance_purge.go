package compliance_purge

import (
	"context"
	"time"

	"dispatch/pkg/logger"
)

type Cache interface {
	Purge() int
}

// CompliancePurge удаляет просроченные записи кэша комплаенса.
type CompliancePurge struct {
	log      logger.Logger
	cache    Cache
	interval time.Duration
}

func NewCompliancePurge(log logger.Logger, cache Cache, interval time.Duration) *CompliancePurge {
	return &CompliancePurge{
		log:      log,
		cache:    cache,
		interval: interval,
	}
}

func (c *CompliancePurge) TTL() time.Duration {
	return c.interval
}

func (c *CompliancePurge) Do(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	removed := c.cache.Purge()
	if removed > 0 {
		c.log.With(
			logger.NewField("removed", removed),
		).Info("compliance cache purge")
	}
	return nil
}

func (c *CompliancePurge) Info() string {
	return "compliance cache purge"
}
