package correlation

import (
	"net/http"

	"dispatch/pkg/correlation"
)

// Middleware берет идентификатор корреляции из X-Correlation-ID или X-Trace-ID,
// при отсутствии создает новый. Идентификатор кладется в контекст и возвращается в ответе.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := correlation.Pick(
				r.Header.Get(correlation.HeaderCorrelationID),
				r.Header.Get(correlation.HeaderTraceID),
			)
			if id == "" {
				id = correlation.New()
			}

			w.Header().Set(correlation.HeaderCorrelationID, id)
			next.ServeHTTP(w, r.WithContext(correlation.WithID(r.Context(), id)))
		})
	}
}
