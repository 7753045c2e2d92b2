package order_accept_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/generated/dto"
	"dispatch/internal/handlers/rest/response"
	"dispatch/internal/service/dispatch"
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

	var body dto.PostOrdersIDAcceptJSONRequestBody
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		response.Error(w, h.log, http.StatusBadRequest, "invalid_json", "", traceID)
		return
	}

	result, err := h.service.Accept(ctx, orderID, body.CarrierID, traceID)
	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrInvalidOrderID),
			errors.Is(err, dispatch.ErrInvalidCarrierID),
			errors.Is(err, dispatch.ErrNotCurrentCarrier):
			response.Error(w, h.log, http.StatusBadRequest, "invalid_carrier", err.Error(), traceID)
		case errors.Is(err, dispatch.ErrOrderNotFound):
			response.Error(w, h.log, http.StatusNotFound, "not_found", "", traceID)
		case errors.Is(err, dispatch.ErrConcurrentTransition):
			response.Error(w, h.log, http.StatusConflict, "conflict", err.Error(), traceID)
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("order_id", orderID),
				logger.NewField("carrier_id", body.CarrierID),
				logger.NewField("correlation_id", traceID),
			).Error("accept order")
			response.Error(w, h.log, http.StatusInternalServerError, "internal_error", "", traceID)
		}
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.AcceptResponse{
		Status:     dto.OrderStatus(result.Status),
		AcceptedBy: result.AcceptedBy,
		TraceID:    traceID,
	})
}
