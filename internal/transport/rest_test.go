package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/ynab-mcp-go/internal/types"
)

func newTestTransport(serverURL string) *RESTTransport {
	tr := NewRESTTransport(&Options{BaseURL: serverURL})
	tr.SetAuth("test-token")
	return tr
}

func TestDo_MissingToken(t *testing.T) {
	tr := NewRESTTransport(&Options{BaseURL: "http://localhost:1"})

	err := tr.Do(context.Background(), http.MethodGet, "/budgets", nil, nil, nil)
	assert.ErrorIs(t, err, types.ErrMissingToken)
}

func TestDo_SendsAuthHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, types.UserAgent, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"name": "My Budget"}}`))
	}))
	defer server.Close()

	tr := newTestTransport(server.URL)

	var result struct {
		Name string `json:"name"`
	}
	err := tr.Do(context.Background(), http.MethodGet, "/budgets", nil, nil, &result)
	require.NoError(t, err)
	assert.Equal(t, "My Budget", result.Name)
}

func TestDo_EncodesQueryParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025-01-01", r.URL.Query().Get("since_date"))
		assert.Equal(t, "unapproved", r.URL.Query().Get("type"))
		_, _ = w.Write([]byte(`{"data": {}}`))
	}))
	defer server.Close()

	tr := newTestTransport(server.URL)

	query := url.Values{}
	query.Set("since_date", "2025-01-01")
	query.Set("type", "unapproved")

	err := tr.Do(context.Background(), http.MethodGet, "/budgets/b1/transactions", query, nil, nil)
	require.NoError(t, err)
}

func TestDo_SendsJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["memo"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data": {}}`))
	}))
	defer server.Close()

	tr := newTestTransport(server.URL)

	err := tr.Do(context.Background(), http.MethodPost, "/budgets/b1/transactions",
		nil, map[string]string{"memo": "hello"}, nil)
	require.NoError(t, err)
}

func TestDo_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"id":"401","name":"unauthorized","detail":"Unauthorized"}}`, types.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ``, types.ErrUnauthorized},
		{"not found", http.StatusNotFound, `{"error":{"id":"404.2","name":"resource_not_found","detail":"Account not found"}}`, types.ErrNotFound},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"id":"429","name":"too_many_requests","detail":"Too many requests"}}`, types.ErrRateLimited},
		{"request timeout", http.StatusRequestTimeout, ``, types.ErrTimeout},
		{"gateway timeout", http.StatusGatewayTimeout, ``, types.ErrTimeout},
		{"server error", http.StatusInternalServerError, ``, types.ErrServerError},
		{"bad gateway", http.StatusBadGateway, ``, types.ErrServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			tr := newTestTransport(server.URL)

			err := tr.Do(context.Background(), http.MethodGet, "/budgets", nil, nil, nil)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestDo_ErrorCarriesEnvelopeDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"id":"404.2","name":"resource_not_found","detail":"Account not found"}}`))
	}))
	defer server.Close()

	tr := newTestTransport(server.URL)

	err := tr.Do(context.Background(), http.MethodGet, "/budgets/b1/accounts/a1", nil, nil, nil)
	require.Error(t, err)

	var apiErr *types.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "resource_not_found", apiErr.Code)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.RequestID)
}

func TestDo_BadRequestWithoutSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"id":"400","name":"bad_request","detail":"invalid since_date"}}`))
	}))
	defer server.Close()

	tr := newTestTransport(server.URL)

	err := tr.Do(context.Background(), http.MethodGet, "/budgets", nil, nil, nil)
	require.Error(t, err)

	var apiErr *types.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "bad_request", apiErr.Code)
	assert.NotErrorIs(t, err, types.ErrNotFound)
}

func TestDo_MalformedEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	tr := newTestTransport(server.URL)

	var result struct{}
	err := tr.Do(context.Background(), http.MethodGet, "/budgets", nil, nil, &result)
	assert.Error(t, err)
}

func TestDo_NilResultSkipsDecode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"ignored": true}}`))
	}))
	defer server.Close()

	tr := newTestTransport(server.URL)

	err := tr.Do(context.Background(), http.MethodGet, "/budgets", nil, nil, nil)
	assert.NoError(t, err)
}

func TestNewRESTTransport_Defaults(t *testing.T) {
	tr := NewRESTTransport(nil)
	assert.Equal(t, types.DefaultBaseURL, tr.baseURL)
	assert.NotNil(t, tr.httpClient)
	assert.Nil(t, tr.retryClient)
}

func TestNewRESTTransport_RetryConfigured(t *testing.T) {
	tr := NewRESTTransport(&Options{
		RetryConfig: &types.RetryConfig{MaxRetries: 3},
	})
	assert.NotNil(t, tr.retryClient)
	assert.Equal(t, 3, tr.retryClient.RetryMax)
}
