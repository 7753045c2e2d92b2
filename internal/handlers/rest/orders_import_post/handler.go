package orders_import_post

import (
	"encoding/json"
	"net/http"

	"dispatch/internal/generated/dto"
	"dispatch/internal/handlers/rest/response"
	"dispatch/pkg/correlation"
	"dispatch/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, traceID := correlation.Ensure(r.Context())

	var raw json.RawMessage
	err := json.NewDecoder(r.Body).Decode(&raw)
	if err != nil {
		response.Error(w, h.log, http.StatusBadRequest, "invalid_json", "", traceID)
		return
	}

	items, err := decodeBatch(raw)
	if err != nil {
		response.Error(w, h.log, http.StatusBadRequest, "invalid_json", err.Error(), traceID)
		return
	}

	imported, err := h.service.Import(ctx, toDomain(items))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("correlation_id", traceID),
		).Error("import orders")
		response.Error(w, h.log, http.StatusInternalServerError, "internal_error", "", traceID)
		return
	}

	response.JSON(w, h.log, http.StatusAccepted, dto.OrderImportResponse{
		Imported: imported,
		TraceID:  traceID,
	})
}
