package builtin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/smilemakc/checkflow/pkg/models"
	"github.com/smilemakc/checkflow/pkg/provider"
)

// HTTPProvider issues an HTTP request and returns the decoded response as
// its output.
//
// Grounded on HTTPExecutor
// (backend/pkg/executor/builtin/http.go): same method/url/body/headers
// config shape and binary-vs-JSON response handling.
type HTTPProvider struct {
	base
	client *http.Client
}

// NewHTTPProvider creates an HTTP provider with a bounded client timeout.
func NewHTTPProvider() *HTTPProvider {
	return &HTTPProvider{
		base:   newBase("http"),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *HTTPProvider) Name() string        { return "http" }
func (p *HTTPProvider) Description() string { return "issues an HTTP request and returns its response" }
func (p *HTTPProvider) IsAvailable() bool   { return true }
func (p *HTTPProvider) Requirements() []string { return nil }

func (p *HTTPProvider) SupportedKeys() []string {
	return []string{"method", "url", "headers", "body", "timeout_seconds", "response_type"}
}

func (p *HTTPProvider) ValidateConfig(config map[string]any) error {
	if _, err := p.requireString(config, "method"); err != nil {
		return fmt.Errorf("%w: %v", models.ErrConfigInvalid, err)
	}
	if _, err := p.requireString(config, "url"); err != nil {
		return fmt.Errorf("%w: %v", models.ErrConfigInvalid, err)
	}
	return nil
}

func (p *HTTPProvider) Execute(ctx context.Context, in provider.Input) (models.ReviewSummary, error) {
	method, _ := in.Config["method"].(string)
	url, _ := in.Config["url"].(string)

	var body io.Reader
	if raw, ok := in.Config["body"]; ok && raw != nil {
		bodyBytes, err := encodeBody(raw)
		if err != nil {
			return models.ReviewSummary{}, err
		}
		body = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return models.ReviewSummary{}, fmt.Errorf("http: build request: %w", err)
	}
	for k, v := range p.stringMap(in.Config, "headers") {
		req.Header.Set(k, v)
	}
	if req.Header.Get("Content-Type") == "" && body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := p.client
	if secs := p.intDefault(in.Config, "timeout_seconds", 0); secs > 0 {
		client = &http.Client{Timeout: time.Duration(secs) * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return models.ReviewSummary{}, fmt.Errorf("http: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ReviewSummary{}, fmt.Errorf("http: read response: %w", err)
	}

	output := map[string]any{
		"status":      resp.StatusCode,
		"headers":     resp.Header,
		"contentType": resp.Header.Get("Content-Type"),
	}
	var parsed any
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			parsed = string(respBody)
		}
	}
	output["body"] = parsed

	result := models.ReviewSummary{Output: output}
	if resp.StatusCode >= 400 {
		result.Issues = []models.Issue{{
			Severity: models.SeverityError,
			Message:  fmt.Sprintf("HTTP %d: %s", resp.StatusCode, truncate(string(respBody), 500)),
		}}
	}
	return result, nil
}

func encodeBody(v any) ([]byte, error) {
	switch b := v.(type) {
	case string:
		return []byte(b), nil
	case []byte:
		return b, nil
	default:
		return json.Marshal(b)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
