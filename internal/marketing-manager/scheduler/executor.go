package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"marketing-automation-service/internal/marketing-manager/agents"
	dbm "marketing-automation-service/internal/marketing-manager/db"
	"marketing-automation-service/internal/marketing-manager/events"
)

// runTask executes one firing of a task. Counters and timestamps are updated
// on every run; the terminal status write is skipped when the task was paused
// mid-flight so a pause always wins the race.
func (s *Scheduler) runTask(id string) {
	s.mu.Lock()
	t, ok := s.tasks[id]
	if !ok || !t.Enabled {
		s.mu.Unlock()
		return
	}
	if s.inflight[id] {
		s.mu.Unlock()
		hlog.Warnf("Task %s still running, skipping this firing", id)
		return
	}
	s.inflight[id] = true
	startedAt := time.Now()
	t.Status = StatusRunning
	t.LastRun = &startedAt
	t.RunCount++
	runCount := t.RunCount
	snapshot := t.clone()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, id)
		s.mu.Unlock()
	}()

	hlog.Infof("Executing task %s (%s), run #%d", id, snapshot.Type, runCount)
	s.publishEvent(events.TaskExecutionEvent{
		TaskID:   id,
		TaskType: string(snapshot.Type),
		Phase:    "fired",
		RunCount: runCount,
		FiredAt:  startedAt.Format(time.RFC3339),
	})

	var output string
	var runErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("task handler panic: %v", r)
			}
		}()
		output, runErr = s.execute(context.Background(), snapshot)
	}()
	duration := time.Since(startedAt)

	s.mu.Lock()
	if t, ok := s.tasks[id]; ok {
		if runErr != nil {
			t.ErrorCount++
			t.LastError = runErr.Error()
			if t.Status == StatusRunning {
				t.Status = StatusFailed
			}
		} else {
			t.LastError = ""
			if t.Status == StatusRunning {
				t.Status = StatusCompleted
			}
		}
		s.refreshNextRunLocked(t)
		if err := s.persistLocked(); err != nil {
			hlog.Errorf("Failed to persist registry after running %s: %v", id, err)
		}
	}
	s.mu.Unlock()

	phase := "completed"
	errText := ""
	if runErr != nil {
		phase = "failed"
		errText = runErr.Error()
		hlog.Errorf("Task %s failed after %s: %v", id, duration, runErr)
	} else {
		hlog.Infof("Task %s completed in %s", id, duration)
	}
	s.recordRun(snapshot, phase, output, errText, startedAt, duration)
	s.publishEvent(events.TaskExecutionEvent{
		TaskID:     id,
		TaskType:   string(snapshot.Type),
		Phase:      phase,
		RunCount:   runCount,
		Error:      errText,
		FiredAt:    startedAt.Format(time.RFC3339),
		DurationMs: duration.Milliseconds(),
	})
}

func (s *Scheduler) publishEvent(evt events.TaskExecutionEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(context.Background(), evt); err != nil {
		hlog.Errorf("Failed to publish %s event for task %s: %v", evt.Phase, evt.TaskID, err)
	}
}

func (s *Scheduler) recordRun(t ScheduledTask, status, output, errText string, startedAt time.Time, duration time.Duration) {
	if s.historyDB == nil {
		return
	}
	run := dbm.TaskRun{
		TaskID:     t.TaskID,
		TaskType:   string(t.Type),
		Status:     status,
		Output:     output,
		Error:      errText,
		StartedAt:  startedAt,
		DurationMs: duration.Milliseconds(),
	}
	if err := s.historyDB.Create(&run).Error; err != nil {
		hlog.Errorf("Failed to record run history for task %s: %v", t.TaskID, err)
	}
}

// execute dispatches to the handler for the task's type. The returned string
// is a JSON summary stored in run history.
func (s *Scheduler) execute(ctx context.Context, t ScheduledTask) (string, error) {
	switch t.Type {
	case TaskContentGeneration:
		return s.executeContentGeneration(ctx, t)
	case TaskSocialPost:
		return s.executeSocialPost(ctx, t)
	case TaskAnalyticsReport:
		return s.executeAnalyticsReport(ctx, t)
	case TaskImageGeneration:
		return s.executeImageGeneration(ctx, t)
	case TaskCampaignReview:
		return s.executeCampaignReview(ctx, t)
	case TaskPerformanceAnalysis:
		return s.executePerformanceAnalysis(ctx, t)
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskType, t.Type)
	}
}

func (s *Scheduler) executeContentGeneration(ctx context.Context, t ScheduledTask) (string, error) {
	req := agents.ContentRequest{
		ContentType:   paramString(t.Parameters, "content_type", "post"),
		Platform:      paramString(t.Parameters, "platform", "instagram"),
		Topic:         paramString(t.Parameters, "topic", "The Dark Road promotion"),
		Tone:          paramString(t.Parameters, "tone", "engaging"),
		IncludeImages: paramBool(t.Parameters, "include_images", true),
	}
	result, err := s.collab.Content.CoordinateContent(ctx, req)
	if err != nil {
		return "", fmt.Errorf("content generation: %w", err)
	}

	summary := map[string]interface{}{
		"content_type": req.ContentType,
		"platform":     req.Platform,
		"content":      result.Content,
		"hashtags":     result.Hashtags,
	}
	if result.ImageURL != "" {
		summary["image_url"] = result.ImageURL
	}

	if paramBool(t.Parameters, "auto_post", false) {
		content := result.Content
		if result.OptimizedContent != "" {
			content = result.OptimizedContent
		}
		post, err := s.collab.Social.PostContent(ctx, agents.PostRequest{
			Platforms: paramStringSlice(t.Parameters, "platforms", []string{req.Platform}),
			Content:   content,
			Hashtags:  result.Hashtags,
		})
		if err != nil {
			return "", fmt.Errorf("auto-post after generation: %w", err)
		}
		summary["posted_platforms"] = post.TotalPlatforms
	}
	return marshalSummary(summary), nil
}

func (s *Scheduler) executeSocialPost(ctx context.Context, t ScheduledTask) (string, error) {
	platforms := paramStringSlice(t.Parameters, "platforms", []string{"instagram"})
	content := paramString(t.Parameters, "content", "")
	hashtags := paramStringSlice(t.Parameters, "hashtags", nil)

	// No prepared content means generate it first.
	if content == "" {
		generated, err := s.collab.Content.CoordinateContent(ctx, agents.ContentRequest{
			ContentType: "post",
			Platform:    platforms[0],
			Topic:       paramString(t.Parameters, "topic", "The Dark Road"),
			Tone:        paramString(t.Parameters, "tone", "engaging"),
		})
		if err != nil {
			return "", fmt.Errorf("generate content for post: %w", err)
		}
		content = generated.Content
		if len(hashtags) == 0 {
			hashtags = generated.Hashtags
		}
	}

	result, err := s.collab.Social.PostContent(ctx, agents.PostRequest{
		Platforms: platforms,
		Content:   content,
		Images:    paramStringSlice(t.Parameters, "images", nil),
		Hashtags:  hashtags,
	})
	if err != nil {
		return "", fmt.Errorf("social post: %w", err)
	}
	return marshalSummary(map[string]interface{}{
		"platforms": platforms,
		"results":   result.Results,
	}), nil
}

func (s *Scheduler) executeAnalyticsReport(ctx context.Context, t ScheduledTask) (string, error) {
	metrics, err := s.collab.Analytics.Performance(ctx)
	if err != nil {
		return "", fmt.Errorf("collect analytics: %w", err)
	}
	prompt := fmt.Sprintf(`Generate a concise marketing analytics report for "The Dark Road" based on this data:

%s

Highlight key wins, concerns and one recommendation per channel.`, agents.MetricsJSON(metrics))
	report, err := s.collab.Text.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("summarize analytics: %w", err)
	}

	if paramBool(t.Parameters, "email_report", false) {
		recipient := paramString(t.Parameters, "recipient", "author")
		if err := s.collab.Mail.SendReport(ctx, recipient, "The Dark Road - Analytics Report", report); err != nil {
			hlog.Errorf("Failed to email analytics report for task %s: %v", t.TaskID, err)
		}
	}
	return marshalSummary(map[string]interface{}{"report": report}), nil
}

func (s *Scheduler) executeImageGeneration(ctx context.Context, t ScheduledTask) (string, error) {
	prompt := paramString(t.Parameters, "prompt", "The Dark Road book marketing image")
	style := paramString(t.Parameters, "style", "horror")
	result, err := s.collab.Images.GenerateImage(ctx, prompt, style)
	if err != nil {
		return "", fmt.Errorf("image generation: %w", err)
	}
	return marshalSummary(map[string]interface{}{
		"image_url":     result.URL,
		"style":         result.Style,
		"fallback_used": result.FallbackUsed,
	}), nil
}

func (s *Scheduler) executeCampaignReview(ctx context.Context, t ScheduledTask) (string, error) {
	campaigns := s.collab.Analytics.CampaignMetrics(ctx)
	prompt := fmt.Sprintf(`Review the current marketing campaigns for "The Dark Road":

%s

Assess each campaign's health and suggest adjustments for underperformers.`, agents.MetricsJSON(campaigns))
	review, err := s.collab.Text.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("campaign review: %w", err)
	}
	return marshalSummary(map[string]interface{}{"review": review}), nil
}

func (s *Scheduler) executePerformanceAnalysis(ctx context.Context, t ScheduledTask) (string, error) {
	combined := map[string]interface{}{
		"social_media": s.collab.Analytics.SocialMetrics(ctx),
		"website":      s.collab.Analytics.WebMetrics(ctx),
		"campaigns":    s.collab.Analytics.CampaignMetrics(ctx),
		"visuals":      s.collab.Analytics.VisualMetrics(ctx),
	}
	prompt := fmt.Sprintf(`Perform a cross-channel performance analysis for "The Dark Road" marketing:

%s

Identify the strongest and weakest channels and propose where to shift effort.`, agents.MetricsJSON(combined))
	analysis, err := s.collab.Text.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("performance analysis: %w", err)
	}
	return marshalSummary(map[string]interface{}{"analysis": analysis}), nil
}

func marshalSummary(m map[string]interface{}) string {
	data, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func paramString(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return def
}

func paramBool(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

func paramStringSlice(params map[string]interface{}, key string, def []string) []string {
	raw, ok := params[key]
	if !ok {
		return def
	}
	switch v := raw.(type) {
	case []string:
		if len(v) > 0 {
			return v
		}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}
