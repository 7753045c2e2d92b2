package carrier_orders_get

import (
	"errors"
	"net/http"
	"strings"

	"dispatch/internal/entities"
	"dispatch/internal/generated/dto"
	"dispatch/internal/handlers/rest/response"
	"dispatch/internal/service/order"
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

	query := r.URL.Query()
	params := dto.GetCarrierOrdersParams{CarrierID: query.Get("carrierId")}
	if params.CarrierID == "" {
		response.Error(w, h.log, http.StatusBadRequest, "invalid_request", "carrierId required", traceID)
		return
	}

	filter := entities.CarrierOrdersPending
	if status := strings.ToLower(strings.TrimSpace(query.Get("status"))); status != "" {
		filter = entities.CarrierOrdersFilter(status)
	}

	list, err := h.service.CarrierOrders(ctx, params.CarrierID, filter)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidCarrierID),
			errors.Is(err, order.ErrInvalidFilter):
			response.Error(w, h.log, http.StatusBadRequest, "invalid_request", err.Error(), traceID)
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("carrier_id", params.CarrierID),
			).Error("list carrier orders")
			response.Error(w, h.log, http.StatusInternalServerError, "internal_error", "", traceID)
		}
		return
	}

	items := make([]dto.CarrierOrder, 0, len(list))
	for _, o := range list {
		items = append(items, dto.CarrierOrder{
			ID:        o.ID,
			Ref:       o.Ref,
			ExpiresAt: o.ExpiresAt,
		})
	}

	response.JSON(w, h.log, http.StatusOK, dto.CarrierOrdersResponse{Items: items})
}
