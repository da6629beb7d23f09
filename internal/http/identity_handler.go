package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/marawan13001/zmarketfr-sub000/internal/identity"
)

// IdentityClient is what the profile pre-fill endpoint needs from the
// hosted identity backend.
type IdentityClient interface {
	Profile(ctx context.Context, accessToken string) (identity.Profile, error)
}

type MeHandler struct {
	client IdentityClient
}

func NewMeHandler(client IdentityClient) *MeHandler {
	return &MeHandler{client: client}
}

// Me returns the authenticated customer's profile for checkout pre-fill.
func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		writeError(w, http.StatusNotFound, "identity backend not configured")
		return
	}

	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing access token")
		return
	}

	p, err := h.client.Profile(r.Context(), token)
	if err != nil {
		// Profile fetch failures are never fatal to the storefront; the
		// client falls back to manual entry.
		writeError(w, http.StatusBadGateway, "profile unavailable")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if strings.HasPrefix(auth, prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}
	return ""
}
