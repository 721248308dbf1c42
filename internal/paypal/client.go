package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	SandboxBaseURL = "https://api-m.sandbox.paypal.com"
	LiveBaseURL    = "https://api-m.paypal.com"

	EnvironmentSandbox = "sandbox"
	EnvironmentLive    = "live"
)

// BaseURL maps an environment name to the PayPal REST host. Anything but "live" is sandbox.
func BaseURL(environment string) string {
	if strings.EqualFold(environment, EnvironmentLive) {
		return LiveBaseURL
	}
	return SandboxBaseURL
}

// Response is a PayPal reply kept verbatim so it can be relayed without re-encoding.
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// TokenError reports an OAuth exchange that did not yield an access token.
type TokenError struct {
	StatusCode  int
	Body        string
	Description string
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("no access token in response (status %d): %s", e.StatusCode, e.Body)
}

// Client talks to the PayPal REST API. It holds no per-request state and is safe for concurrent use.
type Client struct {
	baseURL    string
	clientID   string
	secret     string
	httpClient *http.Client
}

func NewClient(baseURL, clientID, secret string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		clientID:   clientID,
		secret:     secret,
		httpClient: httpClient,
	}
}

// AccessToken exchanges the client credentials for a bearer token. Tokens are not cached.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.secret)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("requesting access token: %w", err)
	}

	var token tokenResponse
	// A non-JSON body leaves token empty and is reported below.
	_ = json.Unmarshal(resp.Body, &token)

	if !resp.OK() || token.AccessToken == "" {
		return "", &TokenError{
			StatusCode:  resp.StatusCode,
			Body:        string(resp.Body),
			Description: token.ErrorDescription,
		}
	}

	return token.AccessToken, nil
}

// CreateOrder posts a new order. Non-2xx replies are returned, not treated as errors.
func (c *Client) CreateOrder(ctx context.Context, token, requestID string, order Order) (*Response, error) {
	resp, err := c.post(ctx, "/v2/checkout/orders", token, requestID, order)
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}
	return resp, nil
}

func (c *Client) CaptureOrder(ctx context.Context, token, requestID, orderID string) (*Response, error) {
	path := "/v2/checkout/orders/" + url.PathEscape(orderID) + "/capture"

	resp, err := c.post(ctx, path, token, requestID, struct{}{})
	if err != nil {
		return nil, fmt.Errorf("capturing order %s: %w", orderID, err)
	}
	return resp, nil
}

func (c *Client) post(ctx context.Context, path, token, requestID string, payload interface{}) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if requestID != "" {
		req.Header.Set(RequestIDHeader, requestID)
	}

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
