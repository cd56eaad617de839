package amadeus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
	"travelbuddy/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	tokenPath = "/v1/security/oauth2/token"

	// Refresh early so an in-flight request never rides an expiring token.
	tokenEarlyRefresh = 30 * time.Second

	maxTokenAttempts = 3
	tokenBackoffBase = 1 * time.Second
	tokenBackoffCap  = 8 * time.Second

	// The self-service tier allows ~10 requests per second.
	requestsPerSecond = 10
)

// Client is an authenticated HTTP client for the travel-inventory provider.
// It owns the OAuth2 client-credentials token lifecycle and rate-limits all
// outgoing calls. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      clientcredentials.Config
	limiter    *rate.Limiter
	logger     logger.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time

	backoffBase time.Duration
}

func NewClient(httpClient *http.Client, baseURL, clientID, clientSecret string, logger logger.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		creds: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     baseURL + tokenPath,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		limiter:     rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		logger:      logger,
		backoffBase: tokenBackoffBase,
	}
}

// bearerToken returns a token valid for at least tokenEarlyRefresh. The mutex
// is held across the refresh so concurrent callers wait on a single in-flight
// token request instead of racing their own.
func (c *Client) bearerToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Until(c.tokenExpiry) > tokenEarlyRefresh {
		return c.token, nil
	}

	tokenCtx := context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	var lastErr error
	wait := c.backoffBase
	for attempt := 1; attempt <= maxTokenAttempts; attempt++ {
		tok, err := c.creds.Token(tokenCtx)
		if err == nil {
			c.token = tok.AccessToken
			c.tokenExpiry = tok.Expiry
			return c.token, nil
		}
		lastErr = err
		c.logger.Warn("token refresh failed",
			logger.Field{Key: "attempt", Value: attempt},
			logger.Field{Key: "err", Value: err.Error()},
		)

		if attempt == maxTokenAttempts {
			break
		}
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return "", &AuthError{Err: ctx.Err()}
		}
		wait *= 2
		if wait > tokenBackoffCap {
			wait = tokenBackoffCap
		}
	}

	return "", &AuthError{Err: lastErr}
}

// Get performs an authenticated GET against path with the given query
// parameters and returns the raw response body. A status >= 400 yields a
// *RequestError carrying the status and body.
func (c *Client) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("amadeus: rate limit wait: %w", err)
	}

	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, err
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("amadeus: failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amadeus: external api call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("amadeus: failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &RequestError{Path: path, Status: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
