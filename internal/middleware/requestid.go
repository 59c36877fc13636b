// Package middleware provides the HTTP middleware that establishes request
// identity: a correlation ID for logs and the acting user for ownership
// checks downstream.
package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/botforge/botforge/internal/logger"
)

const headerRequestID = "X-Request-ID"

// RequestID propagates the caller's X-Request-ID, minting one when absent.
// The ID lands in the context for log correlation and is echoed on the
// response so clients can quote it in bug reports.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = generateID()
		}

		ctx := logger.WithRequestID(r.Context(), id)
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func generateID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
