package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newIdentityServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.Header.Get("Authorization") {
		case "Bearer valid-token":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"user-1","email":"auth@example.com"}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"invalid token"}`))
		}
	})
	mux.HandleFunc("/rest/v1/profiles", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") != "eq.user-1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"user-1","first_name":"Amine","last_name":"Marwani","email":"","avatar_url":"/avatars/1.png"}]`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAuthenticated(t *testing.T) {
	srv := newIdentityServer(t)
	client := NewClient(srv.URL, "test-key")

	tests := map[string]struct {
		token string
		want  bool
	}{
		"valid token":    {token: "valid-token", want: true},
		"rejected token": {token: "stale-token", want: false},
		"empty token":    {token: "", want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := client.Authenticated(context.Background(), tt.token)
			if err != nil {
				t.Fatalf("Authenticated: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Authenticated = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProfileMergesAuthEmail(t *testing.T) {
	srv := newIdentityServer(t)
	client := NewClient(srv.URL, "test-key")

	p, err := client.Profile(context.Background(), "valid-token")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.ID != "user-1" || p.FirstName != "Amine" || p.LastName != "Marwani" {
		t.Fatalf("unexpected profile: %+v", p)
	}
	// The profile row carries no email, so the auth record's wins.
	if p.Email != "auth@example.com" {
		t.Fatalf("Email = %q, want auth record email", p.Email)
	}
	if p.AvatarURL != "/avatars/1.png" {
		t.Fatalf("AvatarURL = %q", p.AvatarURL)
	}
}

func TestProfileRejectedToken(t *testing.T) {
	srv := newIdentityServer(t)
	client := NewClient(srv.URL, "test-key")

	if _, err := client.Profile(context.Background(), "stale-token"); err == nil {
		t.Fatal("expected error for rejected token")
	}
}
