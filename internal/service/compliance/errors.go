package compliance

import "errors"

// ErrSourceDisabled возвращает клиент, если адрес сервиса комплаенса не настроен.
var ErrSourceDisabled = errors.New("compliance source disabled")
