package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"golang.org/x/time/rate"
)

const (
	GraphBaseURL     = "https://graph.microsoft.com/v1.0"
	GraphBetaBaseURL = "https://graph.microsoft.com/beta"
)

// GraphRestClient issues raw Graph requests for the endpoints the SDK does
// not model (the beta importedDeviceIdentities surface and the site property
// PATCH). Requests go through a shared limiter so bulk imports do not trip
// Graph throttling.
type GraphRestClient struct {
	cred    azcore.TokenCredential
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
}

func NewGraphRestClient(cred azcore.TokenCredential, baseURL string) *GraphRestClient {
	return &GraphRestClient{
		cred:    cred,
		client:  &http.Client{Timeout: 60 * time.Second},
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 4),
		baseURL: baseURL,
	}
}

// Do sends one request and decodes the JSON response into out (when out is
// non-nil). Non-2xx responses are returned as *GraphRestError.
func (c *GraphRestClient) Do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	token, err := c.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: graphScopes})
	if err != nil {
		return fmt.Errorf("failed to get Graph token: %w", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.Token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("graph request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newGraphRestError(resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// GraphRestError carries the odata error code so callers can classify the
// response without string matching the whole body.
type GraphRestError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *GraphRestError) Error() string {
	return fmt.Sprintf("graph request failed with status %d: %s %s", e.StatusCode, e.Code, e.Message)
}

func newGraphRestError(status int, raw []byte) *GraphRestError {
	restErr := &GraphRestError{StatusCode: status}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		restErr.Code = envelope.Error.Code
		restErr.Message = envelope.Error.Message
	} else {
		restErr.Message = string(raw)
	}

	return restErr
}
