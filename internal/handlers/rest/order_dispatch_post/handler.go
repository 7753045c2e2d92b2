package order_dispatch_post

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/generated/dto"
	"dispatch/internal/handlers/rest/response"
	"dispatch/internal/service/dispatch"
	"dispatch/pkg/correlation"
	"dispatch/pkg/logger"
	"github.com/AlekSi/pointer"
	"github.com/gorilla/mux"
)

// HeaderOrgID организация инициатора, выставляется шлюзом перед сервисом.
const HeaderOrgID = "X-Org-ID"

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

	// Тело необязательное.
	var body dto.DispatchRequest
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, h.log, http.StatusBadRequest, "invalid_json", "", traceID)
		return
	}

	result, err := h.service.Dispatch(ctx, entities.DispatchRequest{
		OrderID:         orderID,
		ForceEscalation: pointer.Get(body.ForceEscalation),
		ActorOrgID:      r.Header.Get(HeaderOrgID),
		CorrelationID:   traceID,
	})
	if err != nil {
		h.writeError(w, err, orderID, traceID)
		return
	}

	response.JSON(w, h.log, http.StatusAccepted, toDTO(result, traceID))
}

func (h *Handler) writeError(w http.ResponseWriter, err error, orderID, traceID string) {
	switch {
	case errors.Is(err, dispatch.ErrInvalidOrderID),
		errors.Is(err, dispatch.ErrInvalidStartIndex),
		errors.Is(err, dispatch.ErrMalformedPolicy):
		response.Error(w, h.log, http.StatusBadRequest, "invalid_request", err.Error(), traceID)
	case errors.Is(err, dispatch.ErrFeatureNotEnabled):
		response.Error(w, h.log, http.StatusPaymentRequired, "payment_required",
			"Feature industry.dispatch missing. Upgrade to PRO.", traceID)
	case errors.Is(err, dispatch.ErrOrderNotFound):
		response.Error(w, h.log, http.StatusNotFound, "not_found", "", traceID)
	case errors.Is(err, dispatch.ErrOrderFinalized),
		errors.Is(err, dispatch.ErrConcurrentTransition):
		response.Error(w, h.log, http.StatusConflict, "conflict", err.Error(), traceID)
	default:
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("order_id", orderID),
			logger.NewField("correlation_id", traceID),
		).Error("dispatch order")
		response.Error(w, h.log, http.StatusInternalServerError, "internal_error", "", traceID)
	}
}

func toDTO(result *entities.DispatchResult, traceID string) dto.DispatchResponse {
	resp := dto.DispatchResponse{
		Status:            dto.OrderStatus(result.Status),
		AssignedCarrierID: result.AssignedCarrierID,
		ExpiresAt:         result.ExpiresAt,
		Escalated:         result.Escalated,
		TraceID:           traceID,
	}
	if result.Quote != nil {
		resp.Quote = &dto.Quote{
			Price:    result.Quote.Price,
			Currency: result.Quote.Currency,
		}
	}
	return resp
}
