// Package ollama provides a minimal HTTP client for a local Ollama service.
// It is used to turn raw scan output into prose reports via a locally
// running language model.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/netsurvey/netsurvey/internal/errors"
)

const (
	// DefaultBaseURL is the default address of a local Ollama service.
	DefaultBaseURL = "http://localhost:11434"

	// DefaultModel is used when no model is configured.
	DefaultModel = "qwen3:8b"

	// XMLPlaceholder is replaced with the scan XML when rendering the prompt.
	XMLPlaceholder = "{{nmap_xml}}"

	defaultGenerateTimeout = 10 * time.Minute
	availabilityTimeout    = 5 * time.Second
)

// DefaultPromptTemplate asks the model for a structured security report.
// The scan XML is substituted for XMLPlaceholder before sending.
const DefaultPromptTemplate = `You are a senior network security analyst. Analyze the following
Nmap XML scan output and produce a professional security assessment report.

Nmap XML output:
` + XMLPlaceholder + `

Write the report in Markdown with the following sections:

### 1. Executive Summary
A high-level summary of the target's overall security posture,
highlighting the most critical findings.

### 2. Open Ports & Services
A Markdown table of all discovered open ports with: port number,
protocol, state, service name, and identified version.

### 3. Potential Risks & Vulnerabilities
- Analyze each open service individually.
- Call out known vulnerabilities for identified versions.
- Note likely configuration weaknesses.
- Rate each risk high, medium, or low.

### 4. Remediation Steps
Concrete, prioritized remediation actions for every finding, starting
with the highest risk.`

// Config holds the settings for talking to an Ollama service.
// It is passed explicitly to the client instead of living in package
// globals so callers control the model and prompt per run.
type Config struct {
	BaseURL        string        `yaml:"base_url" json:"base_url" validate:"required,url"`
	Model          string        `yaml:"model" json:"model" validate:"required"`
	PromptTemplate string        `yaml:"prompt_template" json:"prompt_template"`
	Timeout        time.Duration `yaml:"timeout" json:"timeout"`
}

// DefaultConfig returns a configuration pointing at a local Ollama service.
func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		Model:          DefaultModel,
		PromptTemplate: DefaultPromptTemplate,
		Timeout:        defaultGenerateTimeout,
	}
}

// Client talks to an Ollama service over HTTP.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a client for the given configuration. Zero-value
// fields fall back to defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.PromptTemplate == "" {
		cfg.PromptTemplate = DefaultPromptTemplate
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultGenerateTimeout
	}

	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Config returns the client configuration.
func (c *Client) Config() Config {
	return c.config
}

// RenderPrompt substitutes the scan XML into the configured prompt template.
func (c *Client) RenderPrompt(scanXML string) string {
	return strings.ReplaceAll(c.config.PromptTemplate, XMLPlaceholder, scanXML)
}

// generateRequest is the request body for /api/generate.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse is the non-streaming response body from /api/generate.
type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Available checks whether the Ollama service responds on its tags endpoint.
func (c *Client) Available(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, availabilityTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/tags", http.NoBody)
	if err != nil {
		return errors.WrapScanError(errors.CodeServiceUnavailable, "failed to build availability request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.ErrServiceUnavailable("ollama", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.NewScanError(errors.CodeServiceUnavailable,
			fmt.Sprintf("ollama returned status %d", resp.StatusCode))
	}
	return nil
}

// Generate sends the prompt to the configured model and returns the
// generated text. The request is non-streaming; the full response is
// returned in one piece.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.config.Model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", errors.WrapScanError(errors.CodeServiceResponse, "failed to encode generate request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", errors.WrapScanError(errors.CodeServiceUnavailable, "failed to build generate request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", errors.WrapScanError(errors.CodeServiceTimeout, "ollama generate timed out", err)
		}
		return "", errors.ErrServiceUnavailable("ollama", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", errors.NewScanError(errors.CodeServiceResponse,
			fmt.Sprintf("ollama generate returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data))))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", errors.WrapScanError(errors.CodeServiceResponse, "failed to decode generate response", err)
	}

	if genResp.Response == "" {
		return "", errors.NewScanError(errors.CodeServiceResponse, "ollama returned an empty response")
	}

	return genResp.Response, nil
}
