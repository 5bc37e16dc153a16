package wizard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/donaldgifford/groceries/internal/api/client"
	"github.com/donaldgifford/groceries/internal/auth"
	"github.com/donaldgifford/groceries/internal/config"
	"github.com/donaldgifford/groceries/internal/credential"
	"github.com/donaldgifford/groceries/internal/prompt"
)

// Step keys.
const (
	KeyAPI   = config.KeyAPI
	KeyToken = config.KeyToken
)

// Prompts and error messages shown to the operator.
const (
	QuestionURL      = "What is the URL of the API? "
	QuestionUsername = "What is your username? "
	QuestionPassword = "And your password? "

	ErrMessageURL   = "Invalid URL provided."
	ErrMessageLogin = "Invalid username and/or password provided."
)

// ClientFactory builds an API client for a base URL.
type ClientFactory func(baseURL string) *client.Client

// NormalizeURL trims whitespace and trailing slashes so that paths can be
// appended by concatenation.
func NormalizeURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

// APIStep asks for the API base URL, accepts it only when GET <url>/status
// answers 200, and stores it under "api" in cfg.
func APIStep(cfg *config.Store, p prompt.Prompter, newClient ClientFactory) Step {
	return Step{
		Key:          KeyAPI,
		ErrorMessage: ErrMessageURL,
		Done:         func() bool { return cfg.Has(KeyAPI) },
		Prompt: func(ctx context.Context) (Answers, error) {
			raw, err := p.Line(ctx, QuestionURL)
			if err != nil {
				return nil, err
			}
			return Answers{KeyAPI: raw}, nil
		},
		Validate: func(ctx context.Context, a Answers) (string, error) {
			base := NormalizeURL(a[KeyAPI])
			u, err := url.Parse(base)
			if err != nil {
				return "", Invalid(fmt.Errorf("parsing URL: %w", err))
			}
			if u.Scheme == "" || u.Host == "" {
				return "", Invalid(fmt.Errorf("URL %q must include scheme and host", base))
			}

			resp, err := newClient(base).Get(ctx, "/status")
			if err != nil {
				return "", err
			}
			if resp.StatusCode != http.StatusOK {
				return "", Invalid(fmt.Errorf("status probe answered HTTP %d", resp.StatusCode))
			}
			return base, nil
		},
		Persist: func(value string) error {
			cfg.Set(KeyAPI, value)
			return cfg.Write()
		},
	}
}

// TokenStep asks for a username and password, exchanges them for a token
// at <api>/login and stores the token in creds. It expects the API step
// to have run first.
func TokenStep(
	cfg *config.Store,
	creds *credential.Store,
	p prompt.Prompter,
	newClient ClientFactory,
) Step {
	return Step{
		Key:          KeyToken,
		ErrorMessage: ErrMessageLogin,
		Done:         creds.Present,
		Prompt: func(ctx context.Context) (Answers, error) {
			return Credentials(ctx, p)
		},
		Validate: func(ctx context.Context, a Answers) (string, error) {
			base, ok := cfg.Get(KeyAPI)
			if !ok {
				return "", Invalid(errors.New("api URL is not configured"))
			}
			token, err := auth.New(newClient(base)).Login(ctx, a["username"], a["password"])
			if err != nil {
				return "", err
			}
			return token, nil
		},
		Persist: creds.Write,
	}
}

// Credentials prompts for a username and a masked password.
func Credentials(ctx context.Context, p prompt.Prompter) (Answers, error) {
	username, err := p.Line(ctx, QuestionUsername)
	if err != nil {
		return nil, err
	}
	password, err := p.Password(ctx, QuestionPassword)
	if err != nil {
		return nil, err
	}
	return Answers{"username": username, "password": password}, nil
}

// MigrateLegacyToken moves a token kept in the config file by older
// versions into the token file. It reports whether a token was moved.
func MigrateLegacyToken(cfg *config.Store, creds *credential.Store) (bool, error) {
	legacy, ok := cfg.Get(KeyToken)
	if !ok {
		return false, nil
	}
	if !creds.Present() {
		if err := creds.Write(legacy); err != nil {
			return false, fmt.Errorf("migrating token: %w", err)
		}
	}
	cfg.Delete(KeyToken)
	if err := cfg.Write(); err != nil {
		return false, fmt.Errorf("migrating token: %w", err)
	}
	return true, nil
}
