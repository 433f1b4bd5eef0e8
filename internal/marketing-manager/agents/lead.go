package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// ProjectLead coordinates the specialist agents: it routes content generation
// across copywriting, visuals and platform optimization, aggregates
// performance analytics from every agent, and sets up campaigns.
type ProjectLead struct {
	text      *TextClient
	marketing *MarketingAgent
	social    *SocialAgent
	artist    *GraphicArtist
	web       *WebAgent
}

func NewProjectLead(text *TextClient, marketing *MarketingAgent, social *SocialAgent, artist *GraphicArtist, web *WebAgent) *ProjectLead {
	return &ProjectLead{text: text, marketing: marketing, social: social, artist: artist, web: web}
}

// CoordinateContent runs one content generation job across the team: text
// copy from the marketing agent, an optional visual from the graphic artist,
// and platform optimization from the social agent.
func (p *ProjectLead) CoordinateContent(ctx context.Context, req ContentRequest) (ContentResult, error) {
	result := ContentResult{GeneratedAt: time.Now().Format(time.RFC3339)}

	switch req.ContentType {
	case "post", "ad", "email":
		data, err := p.marketing.GenerateContent(ctx, req)
		if err != nil {
			return ContentResult{}, fmt.Errorf("generate text content: %w", err)
		}
		result.Content = data.Content
		result.Hashtags = data.Hashtags
	default:
		raw, err := p.text.Generate(ctx, fmt.Sprintf("Create %s marketing content about %s for The Dark Road.", req.ContentType, req.Topic))
		if err != nil {
			return ContentResult{}, fmt.Errorf("generate text content: %w", err)
		}
		result.Content = raw
	}

	if req.IncludeImages {
		imagePrompt := fmt.Sprintf("Horror book marketing image for %s", req.Topic)
		image, err := p.artist.GenerateImage(ctx, imagePrompt, "horror")
		if err != nil {
			// Copy is still usable without the visual.
			hlog.Warnf("ProjectLead: image generation failed: %v", err)
		} else {
			result.ImageURL = image.URL
		}
	}

	switch req.Platform {
	case "instagram", "facebook", "twitter", "tiktok":
		optimized, err := p.social.OptimizeForPlatform(ctx, result.Content, req.Platform)
		if err != nil {
			hlog.Warnf("ProjectLead: platform optimization failed: %v", err)
		} else {
			result.OptimizedContent = optimized
		}
	}

	return result, nil
}

// Performance aggregates analytics from all four specialist sources.
func (p *ProjectLead) Performance(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{
		"social_media_metrics":       p.SocialMetrics(ctx),
		"web_metrics":                p.WebMetrics(ctx),
		"campaign_performance":       p.CampaignMetrics(ctx),
		"visual_content_performance": p.VisualMetrics(ctx),
		"generated_at":               time.Now().Format(time.RFC3339),
	}, nil
}

func (p *ProjectLead) SocialMetrics(ctx context.Context) map[string]interface{} {
	return p.social.Analytics(ctx)
}

func (p *ProjectLead) WebMetrics(ctx context.Context) map[string]interface{} {
	return p.web.Analytics(ctx)
}

func (p *ProjectLead) CampaignMetrics(ctx context.Context) map[string]interface{} {
	return p.marketing.CampaignMetrics(ctx)
}

func (p *ProjectLead) VisualMetrics(ctx context.Context) map[string]interface{} {
	return p.artist.PerformanceMetrics(ctx)
}

// CreateCampaign builds a strategy document and delegates setup work to the
// specialist agents.
func (p *ProjectLead) CreateCampaign(ctx context.Context, req CampaignRequest) (CampaignResult, error) {
	hlog.Infof("ProjectLead: creating campaign %q", req.Name)

	strategyPrompt := fmt.Sprintf(`As the Project Lead for marketing 'The Dark Road' horror novel, create a
comprehensive marketing campaign strategy for:

Campaign: %s
Description: %s
Target audience: %s
Platforms: %s
Goals: %s

Provide a detailed strategy including campaign timeline and milestones, a
content calendar, platform-specific approaches, KPIs and a team coordination
plan.`,
		req.Name, req.Description, req.TargetAudience,
		strings.Join(req.Platforms, ", "), strings.Join(req.Goals, ", "))

	strategy, err := p.text.Generate(ctx, strategyPrompt)
	if err != nil {
		return CampaignResult{}, fmt.Errorf("generate campaign strategy: %w", err)
	}

	var tasks []map[string]interface{}

	plan, err := p.marketing.CampaignPlan(ctx, req)
	if err != nil {
		return CampaignResult{}, fmt.Errorf("create campaign plan: %w", err)
	}
	tasks = append(tasks, map[string]interface{}{
		"agent": "marketing_lead", "task": "campaign_planning", "plan": plan, "status": "completed",
	})

	for _, theme := range req.ContentThemes {
		if theme == "visual_content" {
			image, imgErr := p.artist.GenerateImage(ctx, fmt.Sprintf("Key visual for campaign %s", req.Name), "promotional")
			if imgErr != nil {
				hlog.Warnf("ProjectLead: campaign visual failed: %v", imgErr)
				continue
			}
			tasks = append(tasks, map[string]interface{}{
				"agent": "graphic_artist", "task": "visual_planning", "image_url": image.URL, "status": "completed",
			})
		}
	}

	tasks = append(tasks, map[string]interface{}{
		"agent": "web_it", "task": "campaign_tracking", "integrations": p.web.MonitorIntegrations(ctx), "status": "completed",
	})
	tasks = append(tasks, map[string]interface{}{
		"agent": "social_media", "task": "channel_setup", "platforms": req.Platforms, "status": "completed",
	})

	return CampaignResult{
		CampaignID: req.CampaignID,
		Strategy:   strategy,
		Tasks:      tasks,
		Status:     "initiated",
		CreatedAt:  time.Now().Format(time.RFC3339),
	}, nil
}

// AgentsStatus rolls up the operational status of every agent.
func (p *ProjectLead) AgentsStatus(ctx context.Context) map[string]interface{} {
	return map[string]interface{}{
		"project_lead": map[string]interface{}{
			"status":        "active",
			"last_activity": time.Now().Format(time.RFC3339),
		},
		"marketing_lead": p.marketing.Status(ctx),
		"graphic_artist": p.artist.Status(ctx),
		"web_it":         p.web.Status(ctx),
		"social_media":   p.social.Status(ctx),
	}
}

// MetricsJSON renders a metrics mapping as indented JSON for prompt
// embedding.
func MetricsJSON(m map[string]interface{}) string {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", m)
	}
	return string(data)
}
