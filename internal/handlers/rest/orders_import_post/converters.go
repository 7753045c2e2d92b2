package orders_import_post

import (
	"bytes"
	"encoding/json"
	"errors"

	"dispatch/internal/entities"
	"dispatch/internal/generated/dto"
	"github.com/AlekSi/pointer"
)

var errEmptyBody = errors.New("empty body")

// decodeBatch принимает как массив заказов, так и одиночный объект.
func decodeBatch(raw json.RawMessage) (dto.PostOrdersImportJSONBody, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, errEmptyBody
	}

	if raw[0] == '[' {
		var batch dto.PostOrdersImportJSONBody
		if err := json.Unmarshal(raw, &batch); err != nil {
			return nil, err
		}
		return batch, nil
	}

	var item dto.OrderImportItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, err
	}
	return dto.PostOrdersImportJSONBody{item}, nil
}

func toDomain(items dto.PostOrdersImportJSONBody) []entities.OrderImport {
	batch := make([]entities.OrderImport, 0, len(items))
	for _, item := range items {
		batch = append(batch, entities.OrderImport{
			ID:              pointer.Get(item.ID),
			OwnerOrgID:      pointer.Get(item.OwnerOrgID),
			Ref:             pointer.Get(item.Ref),
			Origin:          pointer.Get(item.Origin),
			Destination:     pointer.Get(item.Destination),
			Pallets:         pointer.Get(item.Pallets),
			WeightKg:        pointer.Get(item.Weight),
			ForceEscalation: pointer.Get(item.ForceEscalation),
		})
	}
	return batch
}
