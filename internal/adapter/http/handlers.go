package http

import (
	"net/http"

	"github.com/botforge/botforge/internal/middleware"
	"github.com/botforge/botforge/internal/service"
)

// Handlers bundles the services used by the HTTP layer.
type Handlers struct {
	Auth     *service.AuthService
	Chatbots *service.ChatbotService
	Blocks   *service.BlockService
	Tags     *service.TagService
}

// actingUser resolves the authenticated user id placed in the context by the
// auth middleware. The middleware rejects unauthenticated requests, so an
// empty id here means the handler was mounted outside the auth chain.
func actingUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := middleware.ActingUserID(r.Context())
	if id == "" {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "authorization required")
		return "", false
	}
	return id, true
}
