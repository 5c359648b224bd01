package builtin

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/smilemakc/checkflow/pkg/models"
	"github.com/smilemakc/checkflow/pkg/provider"
)

// AIProvider sends a rendered prompt to an OpenAI-compatible chat
// completion endpoint and returns the model's reply as output/content.
//
// Grounded on OpenAICompletionExecutor
// (internal/application/executor/node_executors.go): same
// config-then-context-then-default api-key resolution order and
// single-user-message ChatCompletionRequest shape.
type AIProvider struct {
	base
	defaultAPIKey string
}

// NewAIProvider creates an AI provider. defaultAPIKey is used when a check's
// config and environment both omit one.
func NewAIProvider(defaultAPIKey string) *AIProvider {
	return &AIProvider{base: newBase("ai"), defaultAPIKey: defaultAPIKey}
}

func (p *AIProvider) Name() string        { return "ai" }
func (p *AIProvider) Description() string { return "sends a rendered prompt to an OpenAI-compatible model" }

func (p *AIProvider) IsAvailable() bool {
	return p.defaultAPIKey != "" || os.Getenv("OPENAI_API_KEY") != ""
}

func (p *AIProvider) Requirements() []string {
	return []string{"config.api_key or env OPENAI_API_KEY"}
}

func (p *AIProvider) SupportedKeys() []string {
	return []string{"prompt", "model", "api_key", "max_tokens", "temperature", "base_url"}
}

func (p *AIProvider) ValidateConfig(config map[string]any) error {
	if _, err := p.requireString(config, "prompt"); err != nil {
		return fmt.Errorf("%w: %v", models.ErrConfigInvalid, err)
	}
	return nil
}

func (p *AIProvider) Execute(ctx context.Context, in provider.Input) (models.ReviewSummary, error) {
	prompt, _ := in.Config["prompt"].(string)
	model := p.stringDefault(in.Config, "model", "gpt-4o")
	apiKey := p.resolveAPIKey(in.Config)
	if apiKey == "" {
		return models.ReviewSummary{}, fmt.Errorf("ai: no api key configured")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL := p.stringDefault(in.Config, "base_url", ""); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(cfg)

	req := openai.ChatCompletionRequest{
		Model:       model,
		Temperature: float32(p.floatDefault(in.Config, "temperature", 0)),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if maxTokens := p.intDefault(in.Config, "max_tokens", 0); maxTokens > 0 {
		req.MaxCompletionTokens = maxTokens
	}

	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return models.ReviewSummary{}, fmt.Errorf("ai: completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return models.ReviewSummary{}, fmt.Errorf("ai: model returned no choices")
	}

	content := resp.Choices[0].Message.Content
	return models.ReviewSummary{
		Output:  content,
		Content: content,
	}, nil
}

func (p *AIProvider) resolveAPIKey(config map[string]any) string {
	if key, _ := config["api_key"].(string); key != "" {
		return key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return p.defaultAPIKey
}
