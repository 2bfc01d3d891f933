package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	applog "billscan/internal/log"
)

// Client talks to an Ollama-compatible completion endpoint over plain
// HTTP JSON. Responses are requested non-streamed.
type Client struct {
	baseURL    string
	model      string
	timeout    time.Duration
	httpClient *http.Client
	logger     *applog.Logger
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewClient builds a client for the given base URL (scheme://host:port)
// and model name. The timeout bounds every Complete call; an unbounded
// remote call would stall the whole interaction.
func NewClient(baseURL, model string, timeout time.Duration, logger *applog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		model:      model,
		timeout:    timeout,
		httpClient: &http.Client{},
		logger:     logger.WithComponent(applog.ComponentInsight),
	}
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal insight request: %w", err)
	}

	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "Insight call failed", applog.FieldError, err.Error())
		return "", fmt.Errorf("insight connection error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.WarnContext(ctx, "Insight backend error", applog.FieldStatusCode, resp.StatusCode)
		return "", fmt.Errorf("insight backend error: %d - %s", resp.StatusCode, string(body))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode insight response: %w", err)
	}
	if out.Response == "" {
		return "", errors.New("insight returned empty response")
	}

	c.logger.DebugContext(ctx, "Insight response received",
		"model", out.Model, "response_len", len(out.Response))
	return out.Response, nil
}
