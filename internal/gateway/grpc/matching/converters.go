package matching

import (
	"fmt"

	"dispatch/internal/entities"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	fieldOrderID           = "order_id"
	fieldCorrelationID     = "correlation_id"
	fieldAssignedCarrierID = "assigned_carrier_id"
	fieldQuote             = "quote"
	fieldPrice             = "price"
	fieldCurrency          = "currency"
)

func toRequest(orderID, correlationID string) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(map[string]any{
		fieldOrderID:       orderID,
		fieldCorrelationID: correlationID,
	})
	if err != nil {
		return nil, fmt.Errorf("build matching request: %w", err)
	}
	return req, nil
}

func toDomain(resp *structpb.Struct) *entities.EscalationResult {
	result := &entities.EscalationResult{Status: entities.OrderUnassignable}
	if resp == nil {
		return result
	}

	fields := resp.GetFields()
	carrierID := fields[fieldAssignedCarrierID].GetStringValue()
	if carrierID == "" {
		return result
	}

	result.Status = entities.OrderDispatched
	result.AssignedCarrierID = &carrierID

	quote := fields[fieldQuote].GetStructValue()
	if quote != nil {
		result.Quote = &entities.Quote{
			Price:    quote.GetFields()[fieldPrice].GetNumberValue(),
			Currency: quote.GetFields()[fieldCurrency].GetStringValue(),
		}
	}
	return result
}
