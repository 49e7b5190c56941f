package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPClassifier calls the remote classification service over HTTPS with a
// bearer credential.
type HTTPClassifier struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClassifier returns a classifier posting to baseURL/v1/classify.
// The overall request deadline is owned by the caller's context; the embedded
// client timeout is only a hard upper bound.
func NewHTTPClassifier(baseURL, apiKey string) *HTTPClassifier {
	return &HTTPClassifier{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type classifyRequest struct {
	WindowTitle string `json:"window_title"`
}

// Classify posts the window title and decodes the {category, reason} answer.
func (c *HTTPClassifier) Classify(ctx context.Context, windowTitle string) (*Result, error) {
	body, err := json.Marshal(classifyRequest{WindowTitle: windowTitle})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/classify", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("classifier response decode: %w", err)
	}
	return &res, nil
}
