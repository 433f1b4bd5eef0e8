package agents

// ContentRequest describes one content generation job.
type ContentRequest struct {
	ContentType   string `json:"content_type"` // post, ad, email, blog
	Platform      string `json:"platform"`
	Topic         string `json:"topic"`
	Tone          string `json:"tone"`
	IncludeImages bool   `json:"include_images"`
}

// ContentResult is the coordinated output of a content generation job.
type ContentResult struct {
	Content          string   `json:"content"`
	Hashtags         []string `json:"hashtags,omitempty"`
	ImageURL         string   `json:"image_url,omitempty"`
	OptimizedContent string   `json:"optimized_content,omitempty"`
	GeneratedAt      string   `json:"generated_at"`
}

// PostRequest describes a multi-platform social media post.
type PostRequest struct {
	Platforms []string `json:"platforms"`
	Content   string   `json:"content"`
	Images    []string `json:"images,omitempty"`
	Hashtags  []string `json:"hashtags,omitempty"`
}

// PlatformPost is the per-platform outcome of a post request.
type PlatformPost struct {
	Platform string   `json:"platform"`
	Status   string   `json:"status"`
	PostID   string   `json:"post_id"`
	Content  string   `json:"content"`
	Hashtags []string `json:"hashtags,omitempty"`
	PostedAt string   `json:"posted_at"`
}

// PostResult aggregates per-platform outcomes.
type PostResult struct {
	Results        map[string]PlatformPost `json:"results"`
	TotalPlatforms int                     `json:"total_platforms"`
}

// CampaignRequest describes a marketing campaign to set up.
type CampaignRequest struct {
	CampaignID     string   `json:"campaign_id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	TargetAudience string   `json:"target_audience"`
	Platforms      []string `json:"platforms"`
	Goals          []string `json:"goals"`
	ContentThemes  []string `json:"content_themes"`
	Budget         float64  `json:"budget,omitempty"`
}

// CampaignResult is the coordinated setup produced for a campaign.
type CampaignResult struct {
	CampaignID string                 `json:"campaign_id"`
	Strategy   string                 `json:"strategy"`
	Tasks      []map[string]interface{} `json:"tasks"`
	Status     string                 `json:"status"`
	CreatedAt  string                 `json:"created_at"`
}
