package amadeus

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"
	"travelbuddy/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logger.Client {
	return logger.NewWithWriter("development", &bytes.Buffer{})
}

func writeToken(w http.ResponseWriter, token string, expiresIn int) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"access_token":%q,"token_type":"Bearer","expires_in":%d}`, token, expiresIn)
}

func TestClientGet_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case tokenPath:
			writeToken(w, "tok-123", 1799)
		case "/v1/reference-data/locations":
			gotAuth = r.Header.Get("Authorization")
			fmt.Fprint(w, `{"data":[]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "id", "secret", testLogger())

	body, err := client.Get(context.Background(), "/v1/reference-data/locations", url.Values{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.JSONEq(t, `{"data":[]}`, string(body))
}

func TestClientGet_ReusesTokenUntilExpiry(t *testing.T) {
	var tokenCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == tokenPath {
			atomic.AddInt32(&tokenCalls, 1)
			writeToken(w, "tok", 1799)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "id", "secret", testLogger())

	ctx := context.Background()
	_, err := client.Get(ctx, "/a", nil)
	require.NoError(t, err)
	_, err = client.Get(ctx, "/b", nil)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls))
}

func TestClientGet_RefreshesExpiringToken(t *testing.T) {
	var tokenCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == tokenPath {
			atomic.AddInt32(&tokenCalls, 1)
			// Expires inside the early-refresh window, so every call
			// triggers a refresh.
			writeToken(w, "tok", 10)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "id", "secret", testLogger())

	ctx := context.Background()
	_, err := client.Get(ctx, "/a", nil)
	require.NoError(t, err)
	_, err = client.Get(ctx, "/b", nil)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&tokenCalls))
}

func TestBearerToken_RetriesThenSucceeds(t *testing.T) {
	var tokenCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == tokenPath {
			if atomic.AddInt32(&tokenCalls, 1) < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			writeToken(w, "tok-after-retry", 1799)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "id", "secret", testLogger())
	client.backoffBase = time.Millisecond

	token, err := client.bearerToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-after-retry", token)
	assert.Equal(t, int32(3), atomic.LoadInt32(&tokenCalls))
}

func TestBearerToken_AuthErrorAfterMaxAttempts(t *testing.T) {
	var tokenCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&tokenCalls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "id", "secret", testLogger())
	client.backoffBase = time.Millisecond

	_, err := client.bearerToken(context.Background())
	require.Error(t, err)

	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, int32(maxTokenAttempts), atomic.LoadInt32(&tokenCalls))
}

func TestClientGet_RequestErrorCarriesStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == tokenPath {
			writeToken(w, "tok", 1799)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"errors":[{"title":"NOT FOUND"}]}`)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "id", "secret", testLogger())

	_, err := client.Get(context.Background(), "/v1/missing", nil)
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusNotFound, reqErr.Status)
	assert.Equal(t, "/v1/missing", reqErr.Path)
	assert.Contains(t, reqErr.Body, "NOT FOUND")
}
