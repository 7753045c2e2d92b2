package order_get

import (
	"errors"
	"net/http"

	"dispatch/internal/handlers/rest/response"
	"dispatch/internal/service/order"
	"dispatch/pkg/correlation"
	"dispatch/pkg/logger"
	"github.com/gorilla/mux"
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
	orderID := mux.Vars(r)["id"]

	result, err := h.service.Get(ctx, orderID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidOrderID):
			response.Error(w, h.log, http.StatusBadRequest, "invalid_order_id", "", traceID)
		case errors.Is(err, order.ErrOrderNotFound):
			response.Error(w, h.log, http.StatusNotFound, "not_found", "", traceID)
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("order_id", orderID),
			).Error("get order")
			response.Error(w, h.log, http.StatusInternalServerError, "internal_error", "", traceID)
		}
		return
	}

	response.JSON(w, h.log, http.StatusOK, toDTO(result))
}
