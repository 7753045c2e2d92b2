package healthcheck_head

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"
)

const readinessTimeout = 2 * time.Second

// Handler отвечает 204, пока сервис не останавливается и все зависимости готовы.
type Handler struct {
	isShuttingDown *atomic.Bool
	checkers       []ReadinessChecker
}

func New(isShuttingDown *atomic.Bool, checkers ...ReadinessChecker) *Handler {
	return &Handler{
		isShuttingDown: isShuttingDown,
		checkers:       checkers,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.isShuttingDown.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	if len(h.checkers) > 0 {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		for _, c := range h.checkers {
			if err := c.Ready(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
