// Package response общие помощники REST-хендлеров для записи JSON.
package response

import (
	"encoding/json"
	"net/http"

	"dispatch/internal/generated/dto"
	"dispatch/pkg/logger"
)

type responseLogger interface {
	Error(msg string, fields ...logger.Field)
}

func JSON(w http.ResponseWriter, log responseLogger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("encode JSON response", logger.NewField("error", err))
	}
}

// Error пишет ошибку в формате dto.ErrorResponse. Пустые detail и traceID не выводятся.
func Error(w http.ResponseWriter, log responseLogger, status int, code, detail, traceID string) {
	body := dto.ErrorResponse{Error: code}
	if detail != "" {
		body.Detail = &detail
	}
	if traceID != "" {
		body.TraceID = &traceID
	}
	JSON(w, log, status, body)
}
