package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/eshaffer321/ynab-mcp-go/internal/types"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

const (
	authHeaderKey = "Authorization"
	requestIDKey  = "X-Request-ID"
	contentType   = "application/json"
)

// RESTTransport handles communication with the YNAB REST API. Every response
// arrives inside a {"data": ...} envelope; errors inside an {"error": ...}
// envelope with id/name/detail fields.
type RESTTransport struct {
	baseURL     string
	httpClient  *http.Client
	retryClient *retryablehttp.Client
	headers     map[string]string
	token       string
	logger      types.Logger
	hooks       *types.Hooks
}

// Options for the REST transport
type Options struct {
	BaseURL     string
	HTTPClient  *http.Client
	Headers     map[string]string
	RetryConfig *types.RetryConfig
	Logger      types.Logger
	Hooks       *types.Hooks
}

// dataEnvelope is the success envelope wrapping every YNAB response
type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// errorEnvelope is the failure envelope
type errorEnvelope struct {
	Error *types.APIErrorBody `json:"error"`
}

// NewRESTTransport creates a new REST transport
func NewRESTTransport(opts *Options) *RESTTransport {
	if opts == nil {
		opts = &Options{}
	}

	if opts.BaseURL == "" {
		opts.BaseURL = types.DefaultBaseURL
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: types.DefaultTimeout,
		}
	}

	// Create retry client only if configured; the default is a single attempt
	var retryClient *retryablehttp.Client
	if opts.RetryConfig != nil {
		retryClient = retryablehttp.NewClient()
		retryClient.HTTPClient = opts.HTTPClient
		retryClient.RetryMax = opts.RetryConfig.MaxRetries
		retryClient.RetryWaitMin = opts.RetryConfig.RetryWait
		retryClient.RetryWaitMax = opts.RetryConfig.MaxWait

		if opts.Logger != nil {
			retryClient.Logger = &retryLogger{logger: opts.Logger}
		}
	}

	headers := map[string]string{
		"Accept":       contentType,
		"Content-Type": contentType,
		"User-Agent":   types.UserAgent,
	}

	for k, v := range opts.Headers {
		headers[k] = v
	}

	return &RESTTransport{
		baseURL:     opts.BaseURL,
		httpClient:  opts.HTTPClient,
		retryClient: retryClient,
		headers:     headers,
		logger:      opts.Logger,
		hooks:       opts.Hooks,
	}
}

// Do executes a request against the API and unmarshals the data envelope into
// result. Query may be nil for endpoints without parameters; body may be nil
// for GET requests.
func (t *RESTTransport) Do(ctx context.Context, method, path string, query url.Values, body, result interface{}) error {
	if t.token == "" {
		return types.ErrMissingToken
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request body")
		}
		reqBody = bytes.NewReader(encoded)
	}

	endpoint := t.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	for k, v := range t.headers {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set(authHeaderKey, fmt.Sprintf("Bearer %s", t.token))

	// Request ID for log/hook correlation
	requestID := uuid.NewString()
	httpReq.Header.Set(requestIDKey, requestID)

	if t.hooks != nil && t.hooks.OnRequest != nil {
		t.hooks.OnRequest(ctx, httpReq)
	}

	if t.logger != nil {
		t.logger.Debug("API request", "method", method, "path", path, "requestId", requestID)
	}

	start := time.Now()
	resp, err := t.doRequest(httpReq)
	duration := time.Since(start)

	if err != nil {
		if t.hooks != nil && t.hooks.OnError != nil {
			t.hooks.OnError(ctx, err)
		}
		return err
	}
	defer resp.Body.Close()

	if t.hooks != nil && t.hooks.OnResponse != nil {
		t.hooks.OnResponse(ctx, resp, duration)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}

	if t.logger != nil {
		t.logger.Debug("API response", "status", resp.StatusCode, "duration", duration, "size", len(respBody))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return t.handleHTTPError(resp.StatusCode, respBody, requestID)
	}

	if result != nil {
		var envelope dataEnvelope
		if err := json.Unmarshal(respBody, &envelope); err != nil {
			return errors.Wrap(err, "failed to parse response envelope")
		}
		if err := json.Unmarshal(envelope.Data, result); err != nil {
			return errors.Wrap(err, "failed to unmarshal result")
		}
	}

	return nil
}

// SetAuth sets the personal access token
func (t *RESTTransport) SetAuth(token string) {
	t.token = token
}

// doRequest executes the HTTP request with retry if configured
func (t *RESTTransport) doRequest(req *http.Request) (*http.Response, error) {
	if t.retryClient != nil {
		retryReq, err := retryablehttp.FromRequest(req)
		if err != nil {
			return nil, err
		}
		return t.retryClient.Do(retryReq)
	}
	return t.httpClient.Do(req)
}

// handleHTTPError maps status codes and the YNAB error envelope to errors
func (t *RESTTransport) handleHTTPError(statusCode int, body []byte, requestID string) error {
	var envelope errorEnvelope
	_ = json.Unmarshal(body, &envelope)

	apiErr := envelope.Error
	msg := ""
	code := "HTTP_ERROR"
	if apiErr != nil {
		msg = apiErr.Error()
		code = apiErr.Name
	}

	wrap := func(sentinel error) error {
		if msg == "" {
			return sentinel
		}
		return &types.Error{
			Code:       code,
			Message:    msg,
			StatusCode: statusCode,
			RequestID:  requestID,
			Err:        sentinel,
		}
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return wrap(types.ErrUnauthorized)
	case statusCode == http.StatusNotFound:
		return wrap(types.ErrNotFound)
	case statusCode == http.StatusTooManyRequests:
		return wrap(types.ErrRateLimited)
	case statusCode == http.StatusRequestTimeout || statusCode == http.StatusGatewayTimeout:
		return wrap(types.ErrTimeout)
	case statusCode >= 500:
		if msg == "" {
			msg = fmt.Sprintf("server error: %d", statusCode)
		}
		return &types.Error{
			Code:       "SERVER_ERROR",
			Message:    msg,
			StatusCode: statusCode,
			RequestID:  requestID,
			Err:        types.ErrServerError,
		}
	default:
		if msg == "" {
			msg = fmt.Sprintf("HTTP error: %d", statusCode)
		}
		return &types.Error{
			Code:       code,
			Message:    msg,
			StatusCode: statusCode,
			RequestID:  requestID,
		}
	}
}

// retryLogger adapts our logger to retryablehttp
type retryLogger struct {
	logger types.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}
