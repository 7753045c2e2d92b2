package compliance

import (
	"context"
	"errors"
	"sync"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTTL     = 5 * time.Minute
	DefaultTimeout = 3 * time.Second
)

// Cache хранит статусы комплаенса перевозчиков. Ошибки внешнего сервиса наружу не выходят:
// вместо них используется последнее известное значение, затем статус из сидов, затем UNKNOWN.
type Cache struct {
	client   StatusClient
	carriers CarrierRepository
	log      cacheLogger
	ttl      time.Duration
	timeout  time.Duration
	now      func() time.Time

	mu      sync.RWMutex
	entries map[string]entities.ComplianceEntry
	group   singleflight.Group
}

func New(client StatusClient, carriers CarrierRepository, log cacheLogger, ttl, timeout time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Cache{
		client:   client,
		carriers: carriers,
		log:      log,
		ttl:      ttl,
		timeout:  timeout,
		now:      time.Now,
		entries:  make(map[string]entities.ComplianceEntry),
	}
}

// WithClock подменяет источник времени, используется в тестах.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

func (c *Cache) Status(ctx context.Context, carrierID string) entities.ComplianceStatus {
	if entry, ok := c.lookup(carrierID); ok && entry.ExpiresAt.After(c.now()) {
		CacheLookupsTotal.WithLabelValues(outcomeHit).Inc()
		return entry.Status
	}
	CacheLookupsTotal.WithLabelValues(outcomeMiss).Inc()

	v, _, _ := c.group.Do(carrierID, func() (any, error) {
		return c.refresh(ctx, carrierID), nil
	})

	return v.(entities.ComplianceStatus)
}

// Purge удаляет просроченные записи и возвращает их количество.
func (c *Cache) Purge() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for id, entry := range c.entries {
		if !entry.ExpiresAt.After(now) {
			delete(c.entries, id)
			removed++
		}
	}
	CacheEntries.Set(float64(len(c.entries)))

	return removed
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) refresh(ctx context.Context, carrierID string) entities.ComplianceStatus {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	status, err := c.client.FetchStatus(reqCtx, carrierID)
	if err == nil {
		c.store(carrierID, status)
		return status
	}

	fields := []logger.Field{
		logger.NewField("carrier_id", carrierID),
		logger.NewField("error", err),
	}
	if errors.Is(err, ErrSourceDisabled) {
		c.log.Debug("compliance source disabled, using fallback", fields...)
	} else {
		c.log.Warn("compliance fetch failed, using fallback", fields...)
	}
	CacheLookupsTotal.WithLabelValues(outcomeFallback).Inc()

	status = c.fallback(ctx, carrierID)
	c.store(carrierID, status)

	return status
}

func (c *Cache) fallback(ctx context.Context, carrierID string) entities.ComplianceStatus {
	if entry, ok := c.lookup(carrierID); ok {
		return entry.Status
	}

	carrier, err := c.carriers.GetByID(ctx, carrierID)
	if err != nil {
		c.log.Debug("no seed compliance status",
			logger.NewField("carrier_id", carrierID),
			logger.NewField("error", err),
		)
		return entities.ComplianceUnknown
	}
	if carrier.SeedCompliance == "" {
		return entities.ComplianceUnknown
	}

	return carrier.SeedCompliance
}

func (c *Cache) lookup(carrierID string) (entities.ComplianceEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[carrierID]
	return entry, ok
}

func (c *Cache) store(carrierID string, status entities.ComplianceStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[carrierID] = entities.ComplianceEntry{
		Status:    status,
		ExpiresAt: c.now().Add(c.ttl),
	}
	CacheEntries.Set(float64(len(c.entries)))
}
