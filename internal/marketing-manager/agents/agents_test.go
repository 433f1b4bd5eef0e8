package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextClientFallbackWithoutKey(t *testing.T) {
	client := NewTextClient("")
	assert.False(t, client.Configured())

	out, err := client.Generate(context.Background(), "Write a social media post about the book")
	require.NoError(t, err)
	assert.Contains(t, out, "The Dark Road")
	assert.Contains(t, out, "#TheDarkRoad")

	strategy, err := client.Generate(context.Background(), "Draft a campaign strategy")
	require.NoError(t, err)
	assert.Contains(t, strategy, "CAMPAIGN STRATEGY")

	generic, err := client.Generate(context.Background(), "something else entirely")
	require.NoError(t, err)
	assert.Contains(t, generic, "generated offline")
}

func TestImageClientFallbackWithoutKey(t *testing.T) {
	client := NewImageClient("")

	result, err := client.Generate(context.Background(), "spooky road", "bogus-size", "bogus-quality", "bogus-style")
	require.NoError(t, err)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.URL)
	assert.Equal(t, "spooky road", result.PromptUsed)
	// Unsupported style was normalized before the fallback.
	assert.Equal(t, "vivid", result.Style)
}

func TestGraphicArtistStyles(t *testing.T) {
	artist := NewGraphicArtist(NewImageClient(""))

	result, err := artist.GenerateImage(context.Background(), "empty road at night", "book_cover")
	require.NoError(t, err)
	assert.Equal(t, "book_cover", result.Style)
	assert.Contains(t, result.PromptUsed, "book cover design")
	assert.Contains(t, result.PromptUsed, "The Dark Road")

	// Unknown styles still produce a usable prompt.
	result, err = artist.GenerateImage(context.Background(), "empty road at night", "cubist")
	require.NoError(t, err)
	assert.Equal(t, "cubist", result.Style)
	assert.Contains(t, result.PromptUsed, "artistic and engaging")
}

func TestSocialAgentPostContent(t *testing.T) {
	social := NewSocialAgent(NewTextClient(""))

	result, err := social.PostContent(context.Background(), PostRequest{
		Platforms: []string{"instagram", "twitter"},
		Content:   "Out now",
		Hashtags:  []string{"#TheDarkRoad"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalPlatforms)
	require.Len(t, result.Results, 2)
	insta := result.Results["instagram"]
	assert.Equal(t, "posted", insta.Status)
	assert.Contains(t, insta.PostID, "instagram_")
	assert.Equal(t, "Out now", insta.Content)

	_, err = social.PostContent(context.Background(), PostRequest{Content: "no platforms"})
	assert.Error(t, err)
}

func TestMarketingAgentWrapsNonJSONReply(t *testing.T) {
	marketing := NewMarketingAgent(NewTextClient(""))

	data, err := marketing.GenerateContent(context.Background(), ContentRequest{
		ContentType: "post",
		Platform:    "instagram",
		Topic:       "launch week",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, data.Content)
	assert.Contains(t, data.Hashtags, "#TheDarkRoad")
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, extractJSON("here you go:\n```json\n{\"a\": 1}\n```"))
	assert.Equal(t, "no braces", extractJSON("no braces"))
}

func TestProjectLeadCoordinateContent(t *testing.T) {
	text := NewTextClient("")
	lead := NewProjectLead(text, NewMarketingAgent(text), NewSocialAgent(text),
		NewGraphicArtist(NewImageClient("")), NewWebAgent())

	result, err := lead.CoordinateContent(context.Background(), ContentRequest{
		ContentType:   "post",
		Platform:      "instagram",
		Topic:         "launch week",
		IncludeImages: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Content)
	assert.NotEmpty(t, result.ImageURL)
	assert.NotEmpty(t, result.OptimizedContent)
}

func TestProjectLeadPerformance(t *testing.T) {
	text := NewTextClient("")
	lead := NewProjectLead(text, NewMarketingAgent(text), NewSocialAgent(text),
		NewGraphicArtist(NewImageClient("")), NewWebAgent())

	metrics, err := lead.Performance(context.Background())
	require.NoError(t, err)
	for _, key := range []string{
		"social_media_metrics", "web_metrics", "campaign_performance", "visual_content_performance",
	} {
		assert.Contains(t, metrics, key)
	}
}

func TestProjectLeadAgentsStatus(t *testing.T) {
	text := NewTextClient("")
	lead := NewProjectLead(text, NewMarketingAgent(text), NewSocialAgent(text),
		NewGraphicArtist(NewImageClient("")), NewWebAgent())

	status := lead.AgentsStatus(context.Background())
	for _, agent := range []string{"project_lead", "marketing_lead", "graphic_artist", "web_it", "social_media"} {
		assert.Contains(t, status, agent)
	}
}
