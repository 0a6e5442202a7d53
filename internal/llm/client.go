// Package llm implements the taxonomy-discovery collaborator: an
// OpenAI-compatible chat call that turns ranked corpus signals into a
// small named aspect taxonomy. The engine treats it as opaque; all it
// requires back is a validated aspect list.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/facetlabs/facet/pkg/facet/internalerr"
	"github.com/facetlabs/facet/pkg/facet/taxonomy"
)

const (
	requestTimeout = 60 * time.Second
	retryAttempts  = 3
)

// Client calls an OpenAI-compatible chat completion endpoint to name
// the aspect taxonomy for an analysis run.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a collaborator client. baseURL may be empty for the
// default OpenAI endpoint; model defaults to gpt-4o-mini.
func NewClient(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: requestTimeout}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Client{client: openai.NewClientWithConfig(cfg), model: model}
}

type taxonomyResponse struct {
	Aspects []taxonomy.Aspect `json:"aspects"`
}

// DiscoverTaxonomy asks the model for up to maxAspects aspect
// definitions grounded in the ranked signal tokens and a small sample
// of raw reviews. Failures and malformed payloads surface as
// internalerr.ErrCollaborator: without a taxonomy nothing can match,
// so the caller must see the failure rather than a silent default.
func (c *Client) DiscoverTaxonomy(ctx context.Context, topTokens []string, sampleReviews []string, maxAspects int) (*taxonomy.Taxonomy, error) {
	if maxAspects <= 0 {
		maxAspects = 8
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: buildPrompt(topTokens, sampleReviews, maxAspects)},
	}

	var (
		resp openai.ChatCompletionResponse
		err  error
	)
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		resp, err = c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    c.model,
			Messages: messages,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		})
		if err == nil {
			break
		}
		slog.Warn("taxonomy discovery call failed",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrCollaborator, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", internalerr.ErrCollaborator)
	}

	var parsed taxonomyResponse
	content := cleanResponse(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("%w: malformed taxonomy payload: %v", internalerr.ErrCollaborator, err)
	}
	if len(parsed.Aspects) > maxAspects {
		parsed.Aspects = parsed.Aspects[:maxAspects]
	}

	tax, err := taxonomy.New(parsed.Aspects)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrCollaborator, err)
	}
	return tax, nil
}

const systemPrompt = `You are a product-review analyst. Given the most significant words and phrases from a review corpus plus sample reviews, you identify the aspects customers discuss (e.g. "Battery Life", "Shipping", "Customer Service"). Respond only with JSON of the form {"aspects":[{"name":"...","description":"...","keywords":["..."]}]}. Keywords must be lowercase words or short phrases that literally appear in reviews about that aspect. Every aspect needs at least two keywords.`

func buildPrompt(topTokens, sampleReviews []string, maxAspects int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Identify at most %d aspects.\n\nTop corpus terms by significance:\n", maxAspects)
	for _, tok := range topTokens {
		fmt.Fprintf(&b, "- %s\n", tok)
	}
	b.WriteString("\nSample reviews:\n")
	for i, rev := range sampleReviews {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rev)
	}
	return b.String()
}

// cleanResponse strips markdown code fences some models wrap around
// JSON despite the response-format instruction.
func cleanResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
