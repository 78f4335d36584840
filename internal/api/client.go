// Package api is the HTTP client for the remote supply history backend.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/javiermolinar/abastecimentos/internal/supply"
)

// Backend paths.
const (
	HistoryPath  = "/abastecimentos/historico"
	ProductsPath = "/produtos"
)

// Client is a resty-backed implementation of supply.Source.
type Client struct {
	httpClient *resty.Client
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// NewClient builds an API client for the backend at opts.BaseURL.
func NewClient(opts Options) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(opts.BaseURL, "/")).
		SetHeader("Accept", "application/json")
	if opts.Token != "" {
		restyClient.SetAuthToken(opts.Token)
	}
	if opts.Timeout > 0 {
		restyClient.SetTimeout(opts.Timeout)
	}

	return &Client{httpClient: restyClient}
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e *apiError) text() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status=%d", e.Code)
	}
	return fmt.Sprintf("api error: status=%d, message=%s", e.Code, e.Message)
}

// ListHistory fetches one page of supply history.
func (c *Client) ListHistory(ctx context.Context, params supply.Params) (*supply.Page, error) {
	result := new(supply.Page)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params.Values()).
		SetResult(result).
		SetError(apiErr).
		Get(HistoryPath)
	if err != nil {
		return nil, fmt.Errorf("fetching history: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, &StatusError{Code: resp.StatusCode(), Message: apiErr.text()}
	}

	if result.Items == nil {
		result.Items = []supply.Record{}
	}
	return result, nil
}

// SearchProducts looks up products by free text.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]supply.Product, error) {
	var result []supply.Product
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetResult(&result).
		SetError(apiErr).
		Get(ProductsPath)
	if err != nil {
		return nil, fmt.Errorf("searching products: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, &StatusError{Code: resp.StatusCode(), Message: apiErr.text()}
	}

	return result, nil
}
