package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	"github.com/dren-arifi/isrcfind/internal/shared"
)

// SpotifyTokenURL is the client-credentials token endpoint.
const SpotifyTokenURL = "https://accounts.spotify.com/api/token"

// expiryMargin is subtracted from the provider's expires_in so a token
// is never presented moments before the provider rejects it.
const expiryMargin = 30 * time.Second

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

// TokenManager hands out a valid Spotify bearer token, refreshing it via
// the client-credentials grant when the cached one has expired. Callers
// share a single in-flight refresh.
type TokenManager struct {
	mu       sync.Mutex
	store    Store
	creds    *CredentialStore
	client   *http.Client
	tokenURL string
	logger   *log.Logger
	now      func() time.Time
}

func NewTokenManager(store Store, creds *CredentialStore, tokenURL string) *TokenManager {
	if tokenURL == "" {
		tokenURL = SpotifyTokenURL
	}

	return &TokenManager{
		store:    store,
		creds:    creds,
		client:   newHTTPClient(DefaultTimeout),
		tokenURL: tokenURL,
		logger:   discardLogger(),
		now:      time.Now,
	}
}

func (t *TokenManager) WithLogger(logger *log.Logger) *TokenManager {
	t.logger = logger
	return t
}

// Token returns the cached token when it is still valid, otherwise it
// exchanges the stored credentials for a fresh one and caches it.
func (t *TokenManager) Token(ctx context.Context) (*oauth2.Token, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var cached oauth2.Token
	found, err := t.store.GetJSON(tokenKey, &cached)
	if err != nil {
		return nil, err
	}

	if found && cached.AccessToken != "" && t.now().Before(cached.Expiry) {
		return &cached, nil
	}

	creds, err := t.creds.Load()
	if err != nil {
		return nil, err
	}

	t.logger.Debug("refreshing access token", "endpoint", t.tokenURL)

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, t.tokenURL, strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: building token request: %v", shared.ErrAPIRequest, err)
	}

	basic := base64.StdEncoding.EncodeToString(
		[]byte(creds.ClientID + ":" + creds.ClientSecret),
	)
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, wrapTransportErr("token exchange", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// The error payload is decoded best-effort; a non-JSON body still
		// yields a provider error carrying the upstream status.
		var failure tokenResponse
		_ = decodeResponse(resp, &failure)

		msg := failure.Description
		if msg == "" {
			msg = failure.Error
		}

		return nil, fmt.Errorf(
			"%w: token endpoint returned %d: %s", shared.ErrProvider, resp.StatusCode, msg,
		)
	}

	var body tokenResponse
	if err := decodeResponse(resp, &body); err != nil {
		return nil, err
	}

	if body.AccessToken == "" {
		return nil, fmt.Errorf("%w: token endpoint returned no access token", shared.ErrProvider)
	}

	token := &oauth2.Token{
		AccessToken: body.AccessToken,
		TokenType:   body.TokenType,
		Expiry:      t.now().Add(time.Duration(body.ExpiresIn)*time.Second - expiryMargin),
	}

	if err := t.store.SetJSON(tokenKey, token); err != nil {
		return nil, err
	}

	return token, nil
}

// Invalidate drops the cached token so the next call performs a fresh
// exchange.
func (t *TokenManager) Invalidate() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.store.Remove(tokenKey)
}
