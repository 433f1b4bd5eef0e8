package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const (
	defaultTextBaseURL = "https://api.anthropic.com"
	defaultTextModel   = "claude-3-5-sonnet-20241022"
	anthropicVersion   = "2023-06-01"
	defaultMaxTokens   = 4000
)

const defaultSystemPrompt = `You are an expert marketing assistant specializing in book marketing,
particularly for horror novels. You are currently working on marketing 'The Dark Road', a horror
novel. Target audience: horror readers and thriller enthusiasts. Brand voice: mysterious, engaging,
professional. Goal: drive book sales and build the author brand. Provide practical, actionable
content that can be used immediately.`

// TextClient talks to an Anthropic-style messages API. When no API key is
// configured, or a call fails, it degrades to canned fallback copy instead of
// returning an error, so scheduled jobs keep producing output offline.
type TextClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewTextClient(apiKey string) *TextClient {
	return &TextClient{
		apiKey:  apiKey,
		baseURL: defaultTextBaseURL,
		model:   defaultTextModel,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *TextClient) Configured() bool { return c.apiKey != "" }

// Generate produces narrative text for the given prompt using the default
// marketing system prompt.
func (c *TextClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.GenerateWithSystem(ctx, prompt, defaultSystemPrompt)
}

func (c *TextClient) GenerateWithSystem(ctx context.Context, prompt, systemPrompt string) (string, error) {
	if !c.Configured() {
		hlog.Warnf("TextClient: API key missing, using fallback content")
		return fallbackContent(prompt), nil
	}

	reqBody := map[string]interface{}{
		"model":      c.model,
		"max_tokens": defaultMaxTokens,
		"system":     systemPrompt,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal text request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build text request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		hlog.Errorf("TextClient: request failed: %v, using fallback content", err)
		return fallbackContent(prompt), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read text response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		hlog.Errorf("TextClient: API returned %d: %s, using fallback content", resp.StatusCode, string(body))
		return fallbackContent(prompt), nil
	}

	var parsed struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode text response: %w", err)
	}
	var sb strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	content := sb.String()
	hlog.Infof("TextClient: generated %d characters", len(content))
	return content, nil
}

func fallbackContent(prompt string) string {
	lower := strings.ToLower(prompt)
	switch {
	case strings.Contains(lower, "strategy"):
		return `CAMPAIGN STRATEGY (fallback mode)

1. OBJECTIVES: drive awareness and sales for The Dark Road
2. TARGET AUDIENCE: horror enthusiasts, thriller readers, book lovers
3. PLATFORMS: social media, email, book promotion sites
4. MESSAGING: mysterious, engaging, fear-inducing content
5. TIMELINE: 30-60 day campaign with weekly milestones
6. METRICS: engagement rate, click-through rate, conversion rate`
	case strings.Contains(lower, "social"):
		return `Step into the darkness with The Dark Road...

A psychological horror that will keep you awake long after you've turned the last page.
Every shadow holds a secret, every turn reveals something you wish you hadn't seen.

Are you brave enough to walk The Dark Road?

#TheDarkRoad #HorrorBooks #PsychologicalThriller #MustRead`
	default:
		return "The Dark Road - a chilling journey into psychological horror. (generated offline)"
	}
}
