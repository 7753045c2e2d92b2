package live_offers

import (
	"context"
	"time"

	"dispatch/pkg/logger"
)

type Engine interface {
	LiveOffers() int
}

// LiveOffersReport обновляет метрику живых предложений и пишет их число в debug-лог.
type LiveOffersReport struct {
	log      logger.Logger
	engine   Engine
	interval time.Duration
}

func NewLiveOffersReport(log logger.Logger, engine Engine, interval time.Duration) *LiveOffersReport {
	return &LiveOffersReport{
		log:      log,
		engine:   engine,
		interval: interval,
	}
}

func (l *LiveOffersReport) TTL() time.Duration {
	return l.interval
}

func (l *LiveOffersReport) Do(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.log.Debug("live offers", logger.NewField("count", l.engine.LiveOffers()))
	return nil
}

func (l *LiveOffersReport) Info() string {
	return "live offers report"
}
