package builtin

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/smilemakc/checkflow/pkg/models"
	"github.com/smilemakc/checkflow/pkg/provider"
)

// webhookClaims carries a hash of the outgoing body so a receiver can verify
// the request was signed for that exact payload, not just by that secret.
//
// Grounded on JWTClaims
// (internal/application/auth/jwt_service.go): same
// jwt.RegisteredClaims-embedding shape, generalized from a user-identity
// claim set to a body-integrity claim set.
type webhookClaims struct {
	jwt.RegisteredClaims
	BodySHA256 string `json:"bodySha256"`
}

// WebhookProvider posts a JSON payload to a URL, signed with an HS256 JWT
// bearer built from the check's configured secret.
//
// Grounded on HTTPExecutor (backend/pkg/executor/builtin/http.go)
// for the request/response shape, and JWTService
// (internal/application/auth/jwt_service.go) for the HS256 signing style.
type WebhookProvider struct {
	base
	client *http.Client
}

// NewWebhookProvider creates a webhook provider with a bounded client timeout.
func NewWebhookProvider() *WebhookProvider {
	return &WebhookProvider{base: newBase("webhook"), client: &http.Client{Timeout: 15 * time.Second}}
}

func (p *WebhookProvider) Name() string { return "webhook" }
func (p *WebhookProvider) Description() string {
	return "posts a JSON payload to a URL, signed with an HS256 bearer token"
}
func (p *WebhookProvider) IsAvailable() bool      { return true }
func (p *WebhookProvider) Requirements() []string { return []string{"config.secret or env CHECKFLOW_WEBHOOK_SECRET"} }

func (p *WebhookProvider) SupportedKeys() []string {
	return []string{"url", "payload", "secret", "headers", "issuer"}
}

func (p *WebhookProvider) ValidateConfig(config map[string]any) error {
	if _, err := p.requireString(config, "url"); err != nil {
		return fmt.Errorf("%w: %v", models.ErrConfigInvalid, err)
	}
	if _, ok := config["payload"]; !ok {
		return fmt.Errorf("%w: webhook: required field missing: payload", models.ErrConfigInvalid)
	}
	return nil
}

func (p *WebhookProvider) Execute(ctx context.Context, in provider.Input) (models.ReviewSummary, error) {
	url, _ := in.Config["url"].(string)
	secret := p.stringDefault(in.Config, "secret", "")

	bodyBytes, err := json.Marshal(in.Config["payload"])
	if err != nil {
		return models.ReviewSummary{}, fmt.Errorf("webhook: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return models.ReviewSummary{}, fmt.Errorf("webhook: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range p.stringMap(in.Config, "headers") {
		req.Header.Set(k, v)
	}

	if secret != "" {
		token, err := p.sign(bodyBytes, secret, p.stringDefault(in.Config, "issuer", "checkflow"))
		if err != nil {
			return models.ReviewSummary{}, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return models.ReviewSummary{}, fmt.Errorf("webhook: request failed: %w", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	result := models.ReviewSummary{Output: map[string]any{
		"status": resp.StatusCode,
		"body":   string(respBody),
	}}
	if resp.StatusCode >= 400 {
		result.Issues = []models.Issue{{
			Severity: models.SeverityError,
			Message:  fmt.Sprintf("webhook HTTP %d: %s", resp.StatusCode, truncate(string(respBody), 500)),
		}}
	}
	return result, nil
}

func (p *WebhookProvider) sign(body []byte, secret, issuer string) (string, error) {
	sum := sha256.Sum256(body)
	now := time.Now()
	claims := &webhookClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(5 * time.Minute)),
		},
		BodySHA256: hex.EncodeToString(sum[:]),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("webhook: sign token: %w", err)
	}
	return signed, nil
}
