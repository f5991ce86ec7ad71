package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"signup-wizard/internal/config"
	"signup-wizard/pkg/models"
)

// ErrTransport marks failures where the backend never produced a response.
var ErrTransport = errors.New("backend unreachable")

// APIError is a completed call that the backend rejected with a non-2xx status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// RejectionMessage returns the backend-supplied message of an *APIError, or
// fallback when err is not a rejection or carries no message.
func RejectionMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		BaseURL: cfg.BackendURL,
		HTTP:    &http.Client{Timeout: cfg.Timeout},
	}
}

// --- Helper Functions ---

func (c *Client) sendRequest(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var msg models.MessageResponse
		_ = json.Unmarshal(respBody, &msg)
		return respBody, &APIError{Status: resp.StatusCode, Message: msg.Message}
	}

	return respBody, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	resp, err := c.sendRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	resp, err := c.sendRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(resp)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// --- Interest Catalog ---

// FetchGroupedInterestsRaw returns the grouped interest payload untouched.
func (c *Client) FetchGroupedInterestsRaw(ctx context.Context) ([]byte, error) {
	resp, err := c.sendRequest(ctx, http.MethodGet, "/interest/grouped", nil)
	if err != nil {
		return nil, err
	}
	if !json.Valid(resp) {
		return nil, fmt.Errorf("decode /interest/grouped: invalid JSON")
	}
	return resp, nil
}

func (c *Client) FetchGroupedInterests(ctx context.Context) ([]models.InterestGroup, error) {
	raw, err := c.FetchGroupedInterestsRaw(ctx)
	if err != nil {
		return nil, err
	}
	return models.DecodeGroupedInterests(raw)
}

// --- User Lookup ---

func (c *Client) LookupUserByPhone(ctx context.Context, phone string) (*models.UserLookupResponse, error) {
	var out models.UserLookupResponse
	if err := c.getJSON(ctx, "/auth/user-by-phone/"+url.PathEscape(phone), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LookupUserByEmail(ctx context.Context, email string) (*models.UserLookupResponse, error) {
	var out models.UserLookupResponse
	if err := c.getJSON(ctx, "/auth/user-by-email/"+url.PathEscape(email), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Subscriptions ---

func (c *Client) CreateSignup(ctx context.Context, req models.SignupRequest) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := c.postJSON(ctx, "/subscriptions/free-plan-signup", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSignup(ctx context.Context, req models.UpdateSignupRequest) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := c.postJSON(ctx, "/subscriptions/update-user-signup", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
