package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"tokenbound/pkg/requestcontext"
)

// RequestContext stamps each request with a request id and a single request
// time, so every read of the clock within one request sees the same instant.
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithRequestID(r.Context(), uuid.NewString())
		ctx = requestcontext.WithTime(ctx, time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
