package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// HeaderSessionID carries the customer's storefront session. When absent,
// the handler mints one and echoes it so the client can stick to it.
const HeaderSessionID = "X-Session-Id"

const requestTimeout = 3 * time.Second

func sessionID(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get(HeaderSessionID)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(HeaderSessionID, id)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{
		"error": msg,
	})
}
