package ynab

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/eshaffer321/ynab-mcp-go/internal/transport"
	internalTypes "github.com/eshaffer321/ynab-mcp-go/internal/types"
	"github.com/getsentry/sentry-go"
)

const (
	// DefaultBaseURL is the default YNAB API base URL
	DefaultBaseURL = internalTypes.DefaultBaseURL

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = internalTypes.DefaultTimeout
)

// Client is the main YNAB API client
type Client struct {
	// Service interfaces
	Budgets      BudgetService
	Accounts     AccountService
	Transactions TransactionService
	Categories   CategoryService

	// Internal fields
	baseURL   string
	transport Transport
	options   *ClientOptions
}

// ClientOptions configures the client
type ClientOptions struct {
	// AccessToken is the YNAB personal access token (required)
	AccessToken string

	// BaseURL overrides the default API base URL
	BaseURL string

	// HTTPClient allows using a custom HTTP client
	HTTPClient *http.Client

	// Timeout sets the HTTP client timeout
	Timeout time.Duration

	// Logger for debug logging
	Logger Logger

	// RetryConfig configures retry behavior; nil means a single attempt
	RetryConfig *internalTypes.RetryConfig

	// Hooks for observability
	Hooks *internalTypes.Hooks

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// SentryOptions allows custom Sentry configuration
	SentryOptions *sentry.ClientOptions
}

// Logger interface for logging
type Logger = internalTypes.Logger

// Transport handles HTTP communication with the API
type Transport interface {
	Do(ctx context.Context, method, path string, query url.Values, body, result interface{}) error
	SetAuth(token string)
}

// NewClient creates a new YNAB client. The access token is required; there is
// no interactive login flow.
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil {
		opts = &ClientOptions{}
	}

	if opts.AccessToken == "" {
		return nil, ErrMissingToken
	}

	// Initialize Sentry if configured
	if opts.SentryDSN != "" || opts.SentryOptions != nil {
		sentryOpts := sentry.ClientOptions{}

		if opts.SentryOptions != nil {
			sentryOpts = *opts.SentryOptions
		}

		if opts.SentryDSN != "" {
			sentryOpts.Dsn = opts.SentryDSN
		}

		if sentryOpts.Environment == "" {
			sentryOpts.Environment = "production"
		}

		if err := sentry.Init(sentryOpts); err != nil {
			// Log but don't fail client creation
			if opts.Logger != nil {
				opts.Logger.Error("Failed to initialize Sentry", "error", err)
			}
		}
	}

	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: DefaultTimeout,
		}
	}

	if opts.Timeout > 0 {
		opts.HTTPClient.Timeout = opts.Timeout
	}

	trans := transport.NewRESTTransport(&transport.Options{
		BaseURL:     opts.BaseURL,
		HTTPClient:  opts.HTTPClient,
		RetryConfig: opts.RetryConfig,
		Logger:      opts.Logger,
		Hooks:       opts.Hooks,
	})
	trans.SetAuth(opts.AccessToken)

	c := &Client{
		baseURL:   opts.BaseURL,
		transport: trans,
		options:   opts,
	}

	c.initServices()

	return c, nil
}

// NewClientWithToken creates a client with an access token and defaults
func NewClientWithToken(token string) (*Client, error) {
	return NewClient(&ClientOptions{
		AccessToken: token,
	})
}

// initServices initializes all service implementations
func (c *Client) initServices() {
	c.Budgets = &budgetService{client: c}
	c.Accounts = &accountService{client: c}
	c.Transactions = &transactionService{client: c}
	c.Categories = &categoryService{client: c}
}

// do executes a request against the API, capturing failures in Sentry when
// enabled
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result interface{}) error {
	start := time.Now()
	err := c.transport.Do(ctx, method, path, query, body, result)
	duration := time.Since(start)

	if err != nil {
		if hub := sentry.GetHubFromContext(ctx); hub != nil {
			hub.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("api.endpoint", path)
				scope.SetContext("request", map[string]interface{}{
					"method":   method,
					"path":     path,
					"duration": duration.String(),
				})
				hub.CaptureException(err)
			})
		} else if c.options.SentryDSN != "" || c.options.SentryOptions != nil {
			sentry.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("api.endpoint", path)
				scope.SetContext("request", map[string]interface{}{
					"method":   method,
					"path":     path,
					"duration": duration.String(),
				})
				sentry.CaptureException(err)
			})
		}
	}

	return err
}

// Close flushes any pending Sentry events and performs cleanup
func (c *Client) Close() {
	sentry.Flush(2 * time.Second)
}
