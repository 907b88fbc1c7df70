package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"poliza-service/internal/config"
	"poliza-service/internal/velneo"
)

// Client validates bearer tokens against the auth collaborator. Token
// issuance and storage are out of scope here.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.AuthAPIConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// IsValid asks the auth service whether the token is still usable.
func (c *Client) IsValid(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/validate", nil)
	if err != nil {
		return false, fmt.Errorf("failed to build validate request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", velneo.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return false, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to read validate response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, &velneo.ServiceError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out struct {
		Valid bool `json:"valid"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		// Some deployments answer 200 with no body; a 2xx counts as valid.
		return true, nil
	}
	return out.Valid, nil
}
