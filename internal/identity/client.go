package identity

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Profile is the stored customer record kept by the identity backend.
type Profile struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type authUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type apiError struct {
	Message string `json:"message"`
	Msg     string `json:"msg"`
}

// Client is a resty-backed, read-only consumer of the hosted identity
// backend. The checkout flow only needs two facts from it: whether a
// session token is valid, and the profile email for pre-fill.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL, apiKey string) *Client {
	rc := resty.New()
	rc.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("apikey", apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)

	return &Client{http: rc}
}

// Authenticated reports whether the access token maps to a live session. A
// rejected token is a normal outcome, not an error.
func (c *Client) Authenticated(ctx context.Context, accessToken string) (bool, error) {
	if accessToken == "" {
		return false, nil
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		Get("/auth/v1/user")
	if err != nil {
		return false, fmt.Errorf("identity session check: %w", err)
	}
	switch resp.StatusCode() {
	case http.StatusOK:
		return true, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return false, nil
	default:
		return false, fmt.Errorf("identity session check: unexpected status %d", resp.StatusCode())
	}
}

// Profile resolves the authenticated user and their stored profile row. The
// email always comes from the auth record; profile fields fill in the rest
// when a row exists.
func (c *Client) Profile(ctx context.Context, accessToken string) (Profile, error) {
	user := new(authUser)
	apiErr := new(apiError)

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(user).
		SetError(apiErr).
		Get("/auth/v1/user")
	if err != nil {
		return Profile{}, fmt.Errorf("fetch auth user: %w", err)
	}
	if resp.IsError() {
		return Profile{}, fmt.Errorf("fetch auth user: %s", errMessage(apiErr, resp.StatusCode()))
	}

	var rows []Profile
	resp, err = c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetQueryParam("id", "eq."+user.ID).
		SetQueryParam("select", "id,first_name,last_name,email,avatar_url").
		SetResult(&rows).
		SetError(apiErr).
		Get("/rest/v1/profiles")
	if err != nil {
		return Profile{}, fmt.Errorf("fetch profile: %w", err)
	}
	if resp.IsError() {
		return Profile{}, fmt.Errorf("fetch profile: %s", errMessage(apiErr, resp.StatusCode()))
	}

	p := Profile{ID: user.ID, Email: user.Email}
	if len(rows) > 0 {
		row := rows[0]
		p.FirstName = row.FirstName
		p.LastName = row.LastName
		p.AvatarURL = row.AvatarURL
		if row.Email != "" {
			p.Email = row.Email
		}
	}
	return p, nil
}

func errMessage(e *apiError, status int) string {
	if e.Message != "" {
		return e.Message
	}
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("status %d", status)
}
