package zoho

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/daksa-hr/attendance-gateway/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

const (
	// Tokens are treated as expired this long before the upstream expiry,
	// so in-flight requests never ride a token into its last moments.
	expiryMargin = 10 * time.Second

	maxRefreshAttempts = 3

	// Used when the token endpoint omits expires_in.
	defaultTokenLifetime = 55 * time.Minute
)

var (
	ErrRateLimited = errors.New("token endpoint rate limited")
)

// TokenManager owns the single OAuth bearer token for the upstream API.
// Header is the only integration point: callers never see token state, and
// concurrent callers during a refresh converge on one token-endpoint call.
type TokenManager struct {
	conf         *oauth2.Config
	refreshToken string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
	rateLimited bool
	lastRefresh time.Time
	timer       *time.Timer

	group singleflight.Group

	// Test seams.
	now            func() time.Time
	retryBaseDelay time.Duration
}

func NewTokenManager(cfg config.ZohoConfig) *TokenManager {
	return &TokenManager{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		refreshToken:   cfg.RefreshToken,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		now:            time.Now,
		retryBaseDelay: time.Second,
	}
}

// Header returns a ready-to-use Authorization header value, refreshing the
// token first if needed.
func (m *TokenManager) Header(ctx context.Context) (string, error) {
	token, err := m.AccessToken(ctx)
	if err != nil {
		return "", err
	}
	return "Bearer " + token, nil
}

// AccessToken returns the cached token while it is still inside the safety
// margin, otherwise refreshes.
func (m *TokenManager) AccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	token, expiresAt := m.accessToken, m.expiresAt
	m.mu.Unlock()

	if token != "" && m.now().Before(expiresAt) {
		return token, nil
	}
	return m.Refresh(ctx)
}

// CachedToken returns the held token if it is still inside the safety
// margin. It never triggers a refresh.
func (m *TokenManager) CachedToken() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.accessToken == "" || !m.now().Before(m.expiresAt) {
		return "", false
	}
	return m.accessToken, true
}

// Refresh exchanges the refresh token for a new access token. Concurrent
// callers share a single in-flight exchange.
func (m *TokenManager) Refresh(ctx context.Context) (string, error) {
	v, err, _ := m.group.Do("refresh", func() (interface{}, error) {
		return m.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (m *TokenManager) refresh(ctx context.Context) (string, error) {
	var lastErr error

	for attempt := 0; attempt < maxRefreshAttempts; attempt++ {
		tok, err := m.exchange(ctx)
		if err == nil {
			m.store(tok)
			return tok.AccessToken, nil
		}

		if isRateLimit(err) {
			m.mu.Lock()
			m.rateLimited = true
			stale := m.accessToken
			m.mu.Unlock()

			// A held token is likely still valid; prefer it over hammering
			// a rate-limited endpoint.
			if stale != "" {
				slog.Warn("Token endpoint rate limited, using held token", "attempt", attempt)
				return stale, nil
			}
			lastErr = fmt.Errorf("%w: %v", ErrRateLimited, err)
		} else if isTransient(err) {
			lastErr = err
		} else {
			// Bad credentials and other definitive failures are not worth
			// retrying.
			return "", fmt.Errorf("token refresh failed: %w", err)
		}

		if attempt < maxRefreshAttempts-1 {
			delay := m.retryBaseDelay << attempt
			slog.Warn("Token refresh failed, backing off", "attempt", attempt, "delay", delay, "error", err)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return "", fmt.Errorf("token refresh failed after %d attempts: %w", maxRefreshAttempts, lastErr)
}

func (m *TokenManager) exchange(ctx context.Context) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
	return m.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: m.refreshToken}).Token()
}

func (m *TokenManager) store(tok *oauth2.Token) {
	expiry := tok.Expiry
	if expiry.IsZero() {
		expiry = m.now().Add(defaultTokenLifetime)
	}

	m.mu.Lock()
	m.accessToken = tok.AccessToken
	m.expiresAt = expiry.Add(-expiryMargin)
	m.rateLimited = false
	m.lastRefresh = m.now()
	m.mu.Unlock()

	m.scheduleRefresh()
}

// scheduleRefresh arms a timer that refreshes the token at its adjusted
// expiry. Nobody awaits this path, so failures are logged and swallowed.
func (m *TokenManager) scheduleRefresh() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer != nil {
		m.timer.Stop()
	}

	delay := m.expiresAt.Sub(m.now())
	if delay < 0 {
		delay = 0
	}

	m.timer = time.AfterFunc(delay, func() {
		if _, err := m.Refresh(context.Background()); err != nil {
			slog.Error("Background token refresh failed", "error", err)
		}
	})
}

// Close stops the proactive refresh timer.
func (m *TokenManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// isRateLimit matches the upstream's too-many-requests error body:
// {"error": "Access Denied", "error_description": "...too many requests..."}.
func isRateLimit(err error) bool {
	var rerr *oauth2.RetrieveError
	if !errors.As(err, &rerr) {
		return false
	}
	body := strings.ToLower(string(rerr.Body))
	return strings.Contains(body, "access denied") && strings.Contains(body, "too many requests")
}

// isTransient reports whether a refresh failure is worth retrying with
// backoff: upstream 5xx, timeouts, and connection-level errors.
func isTransient(err error) bool {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return rerr.Response != nil && rerr.Response.StatusCode >= 500
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}
	var uerr *url.Error
	return errors.As(err, &uerr)
}
