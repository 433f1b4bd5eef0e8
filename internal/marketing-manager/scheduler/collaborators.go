package scheduler

import (
	"context"

	"marketing-automation-service/internal/marketing-manager/agents"
	"marketing-automation-service/internal/marketing-manager/events"
)

// The scheduler drives the marketing agents through narrow interfaces so
// tests can swap in recording stubs.

// ContentCoordinator produces coordinated marketing content.
type ContentCoordinator interface {
	CoordinateContent(ctx context.Context, req agents.ContentRequest) (agents.ContentResult, error)
}

// SocialPoster publishes content to social platforms.
type SocialPoster interface {
	PostContent(ctx context.Context, req agents.PostRequest) (agents.PostResult, error)
}

// ImageGenerator produces marketing visuals.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt, style string) (agents.ImageResult, error)
}

// AnalyticsAggregator reports performance metrics, in aggregate and per
// specialist source.
type AnalyticsAggregator interface {
	Performance(ctx context.Context) (map[string]interface{}, error)
	SocialMetrics(ctx context.Context) map[string]interface{}
	WebMetrics(ctx context.Context) map[string]interface{}
	CampaignMetrics(ctx context.Context) map[string]interface{}
	VisualMetrics(ctx context.Context) map[string]interface{}
}

// TextSummarizer turns a prompt into narrative text for reports, reviews and
// analyses.
type TextSummarizer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Collaborators bundles every external dependency a job handler may touch.
type Collaborators struct {
	Content   ContentCoordinator
	Social    SocialPoster
	Images    ImageGenerator
	Analytics AnalyticsAggregator
	Text      TextSummarizer
	Mail      agents.Mailer
}

// EventPublisher ships task lifecycle events to the event bus. A nil
// publisher disables publishing.
type EventPublisher interface {
	Publish(ctx context.Context, evt events.TaskExecutionEvent) error
}
