package scheduler

import (
	"fmt"
	"strings"
	"time"
)

// TaskType is the closed set of automated marketing actions the scheduler
// knows how to execute.
type TaskType string

const (
	TaskContentGeneration   TaskType = "content_generation"
	TaskSocialPost          TaskType = "social_post"
	TaskAnalyticsReport     TaskType = "analytics_report"
	TaskImageGeneration     TaskType = "image_generation"
	TaskCampaignReview      TaskType = "campaign_review"
	TaskPerformanceAnalysis TaskType = "performance_analysis"
)

var taskTypes = map[TaskType]bool{
	TaskContentGeneration:   true,
	TaskSocialPost:          true,
	TaskAnalyticsReport:     true,
	TaskImageGeneration:     true,
	TaskCampaignReview:      true,
	TaskPerformanceAnalysis: true,
}

// ParseTaskType validates a task type string against the closed enumeration.
func ParseTaskType(s string) (TaskType, error) {
	tt := TaskType(strings.TrimSpace(s))
	if !taskTypes[tt] {
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskType, s)
	}
	return tt, nil
}

// TaskStatus reflects the outcome of the most recent run. completed and
// failed are not terminal; the task stays eligible for its next fire.
type TaskStatus string

const (
	StatusScheduled TaskStatus = "scheduled"
	StatusRunning   TaskStatus = "running"
	StatusCompleted TaskStatus = "completed"
	StatusFailed    TaskStatus = "failed"
	StatusPaused    TaskStatus = "paused"
)

// ScheduledTask is one entry in the registry.
type ScheduledTask struct {
	TaskID          string                 `json:"task_id"`
	Type            TaskType               `json:"task_type"`
	Name            string                 `json:"name"`
	Description     string                 `json:"description"`
	SchedulePattern string                 `json:"schedule_pattern"`
	Parameters      map[string]interface{} `json:"parameters"`
	Enabled         bool                   `json:"enabled"`
	Status          TaskStatus             `json:"status"`
	CreatedAt       time.Time              `json:"created_at"`
	LastRun         *time.Time             `json:"last_run"`
	NextRun         *time.Time             `json:"next_run"`
	RunCount        int                    `json:"run_count"`
	ErrorCount      int                    `json:"error_count"`
	LastError       string                 `json:"last_error"`
}

// clone returns a deep-enough copy for callers outside the registry lock.
// Parameters are copied shallowly one level down; handlers treat them as
// read-only.
func (t *ScheduledTask) clone() ScheduledTask {
	c := *t
	if t.Parameters != nil {
		c.Parameters = make(map[string]interface{}, len(t.Parameters))
		for k, v := range t.Parameters {
			c.Parameters[k] = v
		}
	}
	if t.LastRun != nil {
		lr := *t.LastRun
		c.LastRun = &lr
	}
	if t.NextRun != nil {
		nr := *t.NextRun
		c.NextRun = &nr
	}
	return c
}

// displayName builds the defaults the API promises when name/description are
// omitted, e.g. "Content Generation Task".
func displayName(tt TaskType) string {
	words := strings.Split(string(tt), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ") + " Task"
}

func defaultDescription(tt TaskType) string {
	return fmt.Sprintf("Automated %s task", tt)
}
