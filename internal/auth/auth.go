// Package auth exchanges a username and password for a grocery API token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/donaldgifford/groceries/internal/api/client"
	domain "github.com/donaldgifford/groceries/pkg/types"
)

// Errors returned by Login.
var (
	ErrInvalidCredentials = errors.New("invalid username and/or password")
	ErrMissingToken       = errors.New("login response did not contain a token")
	ErrUnexpectedStatus   = errors.New("unexpected login status")
)

// Requester is the subset of client.Client used by the authenticator.
type Requester interface {
	Request(
		ctx context.Context,
		verb client.Verb,
		path string,
		body any,
		headers http.Header,
	) (*client.Response, error)
}

// Authenticator logs users in against POST /login.
type Authenticator struct {
	api Requester
}

// New creates an Authenticator using api.
func New(api Requester) *Authenticator {
	return &Authenticator{api: api}
}

// Login returns the session token for username/password. The request
// carries no X-Auth-Token header.
func (a *Authenticator) Login(ctx context.Context, username, password string) (string, error) {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	resp, err := a.api.Request(ctx, client.Post, "/login", domain.Credentials{
		Username: username,
		Password: password,
	}, headers)
	if err != nil {
		return "", fmt.Errorf("logging in: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", ErrInvalidCredentials
	default:
		return "", fmt.Errorf("%w (HTTP %d)", ErrUnexpectedStatus, resp.StatusCode)
	}

	var tr domain.TokenResponse
	if err := resp.Decode(&tr); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMissingToken, err)
	}
	if tr.Token == "" {
		return "", ErrMissingToken
	}
	return tr.Token, nil
}
