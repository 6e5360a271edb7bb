// Package auth handles Firebase Authentication for the CLI: email/password
// sign-in and sign-up against the Identity Toolkit REST API, token refresh,
// and a locally cached session. Google sign-in needs a browser redirect flow
// and is delegated to the web client.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

const (
	defaultIdentityURL = "https://identitytoolkit.googleapis.com/v1"
	defaultTokenURL    = "https://securetoken.googleapis.com/v1"

	minPasswordLength = 6
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	ErrPasswordTooShort   = fmt.Errorf("auth: password must be at least %d characters", minPasswordLength)
)

type Firebase struct {
	apiKey      string
	identityURL string
	tokenURL    string
	httpClient  *http.Client
	logger      *slog.Logger
}

type FirebaseOption func(*Firebase)

func WithEndpoints(identityURL, tokenURL string) FirebaseOption {
	return func(f *Firebase) {
		f.identityURL = identityURL
		f.tokenURL = tokenURL
	}
}

func WithHTTPClient(hc *http.Client) FirebaseOption {
	return func(f *Firebase) { f.httpClient = hc }
}

func WithLogger(logger *slog.Logger) FirebaseOption {
	return func(f *Firebase) { f.logger = logger }
}

func NewFirebase(apiKey string, opts ...FirebaseOption) *Firebase {
	f := &Firebase{
		apiKey:      apiKey,
		identityURL: defaultIdentityURL,
		tokenURL:    defaultTokenURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type authPayload struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// SignUpWithEmail registers a Firebase account. The password length check
// happens client-side before any network call.
func (f *Firebase) SignUpWithEmail(ctx context.Context, email, password string) (Session, error) {
	if len(password) < minPasswordLength {
		return Session{}, ErrPasswordTooShort
	}
	return f.authCall(ctx, "/accounts:signUp", email, password)
}

func (f *Firebase) SignInWithEmail(ctx context.Context, email, password string) (Session, error) {
	return f.authCall(ctx, "/accounts:signInWithPassword", email, password)
}

func (f *Firebase) authCall(ctx context.Context, endpoint, email, password string) (Session, error) {
	body := map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}
	url := f.identityURL + endpoint + "?key=" + f.apiKey

	var payload authPayload
	if err := f.postJSON(ctx, url, body, &payload); err != nil {
		return Session{}, err
	}
	if payload.Error != nil {
		f.logger.Debug("identity toolkit rejected request", "message", payload.Error.Message)
		switch payload.Error.Message {
		case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("auth: %s", payload.Error.Message)
	}

	return sessionFromPayload(payload), nil
}

// Refresh exchanges a refresh token for a fresh id token.
func (f *Firebase) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	body := map[string]string{
		"grant_type":    "refresh_token",
		"refresh_token": refreshToken,
	}
	url := f.tokenURL + "/token?key=" + f.apiKey

	var payload struct {
		UserID       string `json:"user_id"`
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    string `json:"expires_in"`
		Error        *struct {
			Message string `json:"message"`
		} `json:"error,omitempty"`
	}
	if err := f.postJSON(ctx, url, body, &payload); err != nil {
		return Session{}, err
	}
	if payload.Error != nil {
		return Session{}, fmt.Errorf("auth: token refresh failed: %s", payload.Error.Message)
	}

	expiresIn, _ := strconv.Atoi(payload.ExpiresIn)
	return Session{
		UID:          payload.UserID,
		IDToken:      payload.IDToken,
		RefreshToken: payload.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(expiresIn) * time.Second),
	}, nil
}

func (f *Firebase) postJSON(ctx context.Context, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("auth: encoding request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("auth: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("auth: reading response: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("auth: decoding response: %w", err)
	}
	return nil
}

func sessionFromPayload(p authPayload) Session {
	expiresIn, _ := strconv.Atoi(p.ExpiresIn)
	return Session{
		UID:          p.LocalID,
		Email:        p.Email,
		DisplayName:  p.DisplayName,
		IDToken:      p.IDToken,
		RefreshToken: p.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(expiresIn) * time.Second),
	}
}
