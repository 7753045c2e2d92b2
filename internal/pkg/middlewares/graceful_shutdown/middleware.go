package graceful_shutdown

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync/atomic"

	"dispatch/internal/generated/dto"
	"dispatch/pkg/correlation"
)

const retryAfterSeconds = 5

// Middleware во время остановки отвечает 503 в формате dto.ErrorResponse и закрывает соединение.
func Middleware(isShuttingDown *atomic.Bool, ongoingCtx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-ongoingCtx.Done():
				if isShuttingDown.Load() {
					writeUnavailable(w, r)
					return
				}
			default:
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeUnavailable(w http.ResponseWriter, r *http.Request) {
	body := dto.ErrorResponse{Error: "shutting_down"}
	if traceID, ok := correlation.FromContext(r.Context()); ok {
		body.TraceID = &traceID
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Connection", "close")
	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	w.WriteHeader(http.StatusServiceUnavailable)
	_ = json.NewEncoder(w).Encode(body)
}
