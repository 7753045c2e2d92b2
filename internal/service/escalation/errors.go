package escalation

import "errors"

// ErrMatchingDisabled возвращает клиент, если адрес сервиса подбора не настроен.
var ErrMatchingDisabled = errors.New("matching service disabled")
