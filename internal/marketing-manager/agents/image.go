package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const (
	defaultImageBaseURL = "https://api.openai.com"
	defaultImageModel   = "dall-e-3"
)

var (
	supportedSizes     = map[string]bool{"1024x1024": true, "1792x1024": true, "1024x1792": true}
	supportedQualities = map[string]bool{"standard": true, "hd": true}
	supportedStyles    = map[string]bool{"vivid": true, "natural": true}
)

// ImageResult is the outcome of one image generation call.
type ImageResult struct {
	URL           string `json:"url"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
	PromptUsed    string `json:"prompt_used"`
	Style         string `json:"style"`
	FallbackUsed  bool   `json:"fallback_used,omitempty"`
	GeneratedAt   string `json:"generated_at"`
}

// ImageClient talks to a DALL-E-style image generation API. Missing API key
// degrades to a placeholder asset so downstream jobs still complete.
type ImageClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewImageClient(apiKey string) *ImageClient {
	return &ImageClient{
		apiKey:  apiKey,
		baseURL: defaultImageBaseURL,
		model:   defaultImageModel,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *ImageClient) Configured() bool { return c.apiKey != "" }

func (c *ImageClient) Generate(ctx context.Context, prompt, size, quality, style string) (ImageResult, error) {
	if !supportedSizes[size] {
		size = "1024x1024"
	}
	if !supportedQualities[quality] {
		quality = "standard"
	}
	if !supportedStyles[style] {
		style = "vivid"
	}

	if !c.Configured() {
		hlog.Warnf("ImageClient: API key missing, returning placeholder image")
		return fallbackImage(prompt, style), nil
	}

	reqBody := map[string]interface{}{
		"model":   c.model,
		"prompt":  prompt,
		"n":       1,
		"size":    size,
		"quality": quality,
		"style":   style,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return ImageResult{}, fmt.Errorf("marshal image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/images/generations", bytes.NewReader(payload))
	if err != nil {
		return ImageResult{}, fmt.Errorf("build image request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return ImageResult{}, fmt.Errorf("image request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ImageResult{}, fmt.Errorf("read image response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return ImageResult{}, fmt.Errorf("image API returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Data []struct {
			URL           string `json:"url"`
			RevisedPrompt string `json:"revised_prompt"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ImageResult{}, fmt.Errorf("decode image response: %w", err)
	}
	if len(parsed.Data) == 0 {
		return ImageResult{}, fmt.Errorf("image API returned no data")
	}

	hlog.Infof("ImageClient: generated image for prompt %.80q", prompt)
	return ImageResult{
		URL:           parsed.Data[0].URL,
		RevisedPrompt: parsed.Data[0].RevisedPrompt,
		PromptUsed:    prompt,
		Style:         style,
		GeneratedAt:   time.Now().Format(time.RFC3339),
	}, nil
}

func fallbackImage(prompt, style string) ImageResult {
	return ImageResult{
		URL:          "https://placehold.co/1024x1024?text=The+Dark+Road",
		PromptUsed:   prompt,
		Style:        style,
		FallbackUsed: true,
		GeneratedAt:  time.Now().Format(time.RFC3339),
	}
}
