package api

import (
	"context"
	"net/http"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"

	"marketing-automation-service/internal/marketing-manager/agents"
)

// AgentHandler exposes the marketing agents for on-demand work, outside the
// scheduler.
type AgentHandler struct {
	Lead   *agents.ProjectLead
	Social *agents.SocialAgent
	Artist *agents.GraphicArtist
}

func NewAgentHandler(lead *agents.ProjectLead, social *agents.SocialAgent, artist *agents.GraphicArtist) *AgentHandler {
	return &AgentHandler{Lead: lead, Social: social, Artist: artist}
}

type GenerateContentRequest struct {
	ContentType   string `json:"content_type"`
	Platform      string `json:"platform"`
	Topic         string `json:"topic" validate:"required,gt=0"`
	Tone          string `json:"tone"`
	IncludeImages bool   `json:"include_images"`
}

func (h *AgentHandler) GenerateContent(ctx context.Context, c *app.RequestContext) {
	var req GenerateContentRequest
	if err := c.Bind(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if err := c.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	if req.ContentType == "" {
		req.ContentType = "post"
	}

	result, err := h.Lead.CoordinateContent(ctx, agents.ContentRequest{
		ContentType:   req.ContentType,
		Platform:      req.Platform,
		Topic:         req.Topic,
		Tone:          req.Tone,
		IncludeImages: req.IncludeImages,
	})
	if err != nil {
		hlog.Errorf("Content generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Content generation failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

type GenerateImageRequest struct {
	Prompt string `json:"prompt" validate:"required,gt=0"`
	Style  string `json:"style"`
}

func (h *AgentHandler) GenerateImage(ctx context.Context, c *app.RequestContext) {
	var req GenerateImageRequest
	if err := c.Bind(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if err := c.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	if req.Style == "" {
		req.Style = "horror"
	}

	result, err := h.Artist.GenerateImage(ctx, req.Prompt, req.Style)
	if err != nil {
		hlog.Errorf("Image generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Image generation failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

type SocialPostRequest struct {
	Platforms []string `json:"platforms" validate:"required,gt=0"`
	Content   string   `json:"content" validate:"required,gt=0"`
	Images    []string `json:"images"`
	Hashtags  []string `json:"hashtags"`
}

func (h *AgentHandler) PostToSocial(ctx context.Context, c *app.RequestContext) {
	var req SocialPostRequest
	if err := c.Bind(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if err := c.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	result, err := h.Social.PostContent(ctx, agents.PostRequest{
		Platforms: req.Platforms,
		Content:   req.Content,
		Images:    req.Images,
		Hashtags:  req.Hashtags,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Social post failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AgentHandler) GetPerformanceAnalytics(ctx context.Context, c *app.RequestContext) {
	metrics, err := h.Lead.Performance(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to collect analytics: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, metrics)
}

func (h *AgentHandler) GetAgentsStatus(ctx context.Context, c *app.RequestContext) {
	c.JSON(http.StatusOK, h.Lead.AgentsStatus(ctx))
}

type CreateCampaignRequest struct {
	Name           string   `json:"name" validate:"required,gt=0"`
	Description    string   `json:"description"`
	TargetAudience string   `json:"target_audience"`
	Platforms      []string `json:"platforms"`
	Goals          []string `json:"goals"`
	ContentThemes  []string `json:"content_themes"`
	Budget         float64  `json:"budget"`
}

// CreateCampaign kicks the campaign setup off in the background; strategy
// generation can take a while and the caller only needs the campaign id.
func (h *AgentHandler) CreateCampaign(ctx context.Context, c *app.RequestContext) {
	var req CreateCampaignRequest
	if err := c.Bind(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if err := c.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	campaignID := "campaign_" + time.Now().Format("20060102_150405")
	go func() {
		_, err := h.Lead.CreateCampaign(context.Background(), agents.CampaignRequest{
			CampaignID:     campaignID,
			Name:           req.Name,
			Description:    req.Description,
			TargetAudience: req.TargetAudience,
			Platforms:      req.Platforms,
			Goals:          req.Goals,
			ContentThemes:  req.ContentThemes,
			Budget:         req.Budget,
		})
		if err != nil {
			hlog.Errorf("Campaign %s setup failed: %v", campaignID, err)
			return
		}
		hlog.Infof("Campaign %s setup completed", campaignID)
	}()

	c.JSON(http.StatusAccepted, utils.H{
		"campaign_id": campaignID,
		"status":      "initiated",
		"message":     "Campaign creation started",
	})
}
