package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultOllamaBaseURL = "http://localhost:11434"
	DefaultOllamaModel   = "llama3.1:latest"
)

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaErrorResponse struct {
	Error string `json:"error,omitempty"`
}

// OllamaClient talks to a local Ollama server. It opens generate streams and
// hands them to the stream aggregator; it never retries.
type OllamaClient struct {
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

func NewOllamaClient(baseURL, model string, httpClient *http.Client) *OllamaClient {
	if baseURL == "" {
		baseURL = DefaultOllamaBaseURL
	}
	if model == "" {
		model = DefaultOllamaModel
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OllamaClient{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		Model:      model,
		HTTPClient: httpClient,
	}
}

// Generate opens a streaming generation for prompt. The caller must close the
// returned body. Cancelling ctx aborts the underlying request.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (io.ReadCloser, error) {
	reqBody, err := json.Marshal(GenerateRequest{
		Model:  c.Model,
		Prompt: prompt,
		Stream: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/generate", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "request", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		limited, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))

		message := strings.TrimSpace(string(limited))
		var er ollamaErrorResponse
		if json.Unmarshal(limited, &er) == nil && strings.TrimSpace(er.Error) != "" {
			message = strings.TrimSpace(er.Error)
		}
		return nil, &TransportError{Op: "request", Err: &GenerationError{StatusCode: resp.StatusCode, Message: message}}
	}

	if resp.Body == nil || resp.Body == http.NoBody {
		return nil, &TransportError{Op: "open", Err: ErrNoBody}
	}

	return resp.Body, nil
}

func (c *OllamaClient) ModelName() string {
	return c.Model
}

// Summarize runs prompt to completion and returns the aggregated text.
func (c *OllamaClient) Summarize(ctx context.Context, prompt string) (string, error) {
	return c.Stream(ctx, prompt, nil)
}

// Stream is Summarize with incremental delivery of fragments to fn.
func (c *OllamaClient) Stream(ctx context.Context, prompt string, fn FragmentFunc) (string, error) {
	start := time.Now()
	body, err := c.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	defer body.Close()

	result, err := AggregateFunc(ctx, body, fn)
	if err != nil {
		log.Error().Err(err).Str("model", c.Model).Msg("Generation stream failed")
		return "", err
	}

	log.Debug().
		Str("model", c.Model).
		Int("promptLength", len(prompt)).
		Int("resultLength", len(result)).
		Dur("duration", time.Since(start)).
		Msg("Generation complete")
	return result, nil
}
