package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketing-automation-service/internal/marketing-manager/agents"
)

func mustCreate(t *testing.T, env *testEnv, req CreateRequest) ScheduledTask {
	t.Helper()
	task, err := env.sched.Create(req)
	require.NoError(t, err)
	return task
}

func TestRunTaskSuccess(t *testing.T) {
	env := newTestEnv(t)
	task := mustCreate(t, env, CreateRequest{TaskType: "content_generation", SchedulePattern: "daily"})

	env.sched.runTask(task.TaskID)

	got, err := env.sched.Get(task.TaskID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.RunCount)
	assert.Equal(t, 0, got.ErrorCount)
	assert.Equal(t, StatusCompleted, got.Status)
	assert.Empty(t, got.LastError)
	require.NotNil(t, got.LastRun)

	// Handler defaults flowed through to the coordinator.
	require.Len(t, env.content.calls, 1)
	req := env.content.calls[0]
	assert.Equal(t, "post", req.ContentType)
	assert.Equal(t, "instagram", req.Platform)
	assert.Equal(t, "The Dark Road promotion", req.Topic)
	assert.Equal(t, "engaging", req.Tone)
	assert.True(t, req.IncludeImages)

	// No auto_post, so nothing went out.
	assert.Empty(t, env.social.calls)

	// Fired and completed events, in order.
	require.Len(t, env.pub.events, 2)
	assert.Equal(t, "fired", env.pub.events[0].Phase)
	assert.Equal(t, "completed", env.pub.events[1].Phase)
	assert.Equal(t, 1, env.pub.events[1].RunCount)
}

func TestRunTaskFailureThenSuccess(t *testing.T) {
	env := newTestEnv(t)
	task := mustCreate(t, env, CreateRequest{TaskType: "content_generation", SchedulePattern: "daily"})

	env.content.err = errors.New("model unavailable")
	env.sched.runTask(task.TaskID)

	got, err := env.sched.Get(task.TaskID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.RunCount)
	assert.Equal(t, 1, got.ErrorCount)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Contains(t, got.LastError, "model unavailable")

	// A later successful run clears last_error but keeps error_count.
	env.content.err = nil
	env.sched.runTask(task.TaskID)

	got, err = env.sched.Get(task.TaskID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.RunCount)
	assert.Equal(t, 1, got.ErrorCount)
	assert.Equal(t, StatusCompleted, got.Status)
	assert.Empty(t, got.LastError)
}

func TestRunTaskSkipsPaused(t *testing.T) {
	env := newTestEnv(t)
	task := mustCreate(t, env, CreateRequest{TaskType: "content_generation", SchedulePattern: "daily"})
	require.NoError(t, env.sched.Pause(task.TaskID))

	env.sched.runTask(task.TaskID)

	got, err := env.sched.Get(task.TaskID)
	require.NoError(t, err)
	assert.Zero(t, got.RunCount)
	assert.Empty(t, env.content.calls)
}

func TestPauseDuringRunWins(t *testing.T) {
	env := newTestEnv(t)
	task := mustCreate(t, env, CreateRequest{TaskType: "content_generation", SchedulePattern: "daily"})

	env.content.block = make(chan struct{})
	env.content.began = make(chan struct{})
	began := env.content.began

	done := make(chan struct{})
	go func() {
		env.sched.runTask(task.TaskID)
		close(done)
	}()

	<-began
	require.NoError(t, env.sched.Pause(task.TaskID))
	close(env.content.block)
	<-done

	// The in-flight run finished and kept its bookkeeping, but the pause won
	// the status race.
	got, err := env.sched.Get(task.TaskID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.RunCount)
	assert.Equal(t, StatusPaused, got.Status)
	assert.False(t, got.Enabled)
}

func TestRunTaskNoConcurrentFires(t *testing.T) {
	env := newTestEnv(t)
	task := mustCreate(t, env, CreateRequest{TaskType: "content_generation", SchedulePattern: "every 1 minutes"})

	env.content.block = make(chan struct{})
	env.content.began = make(chan struct{})
	began := env.content.began

	done := make(chan struct{})
	go func() {
		env.sched.runTask(task.TaskID)
		close(done)
	}()
	<-began

	// Second firing while the first is in flight is skipped outright.
	env.sched.runTask(task.TaskID)

	close(env.content.block)
	<-done

	got, err := env.sched.Get(task.TaskID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.RunCount)
	assert.Equal(t, 1, env.content.callCount())
}

func TestContentGenerationAutoPost(t *testing.T) {
	env := newTestEnv(t)
	env.content.result = agents.ContentResult{
		Content:          "base copy",
		OptimizedContent: "optimized copy",
		Hashtags:         []string{"#TheDarkRoad"},
	}
	task := mustCreate(t, env, CreateRequest{
		TaskType:        "content_generation",
		SchedulePattern: "daily",
		Parameters: map[string]interface{}{
			"auto_post": true,
			"platforms": []interface{}{"twitter", "facebook"},
		},
	})

	env.sched.runTask(task.TaskID)

	require.Len(t, env.social.calls, 1)
	post := env.social.calls[0]
	assert.Equal(t, []string{"twitter", "facebook"}, post.Platforms)
	assert.Equal(t, "optimized copy", post.Content)
	assert.Equal(t, []string{"#TheDarkRoad"}, post.Hashtags)
}

func TestSocialPostGeneratesMissingContent(t *testing.T) {
	env := newTestEnv(t)
	env.content.result = agents.ContentResult{Content: "fresh copy", Hashtags: []string{"#HorrorBooks"}}
	task := mustCreate(t, env, CreateRequest{
		TaskType:        "social_post",
		SchedulePattern: "daily",
		Parameters:      map[string]interface{}{"platforms": []interface{}{"twitter"}},
	})

	env.sched.runTask(task.TaskID)

	// Content was generated first, then posted with the generated hashtags.
	require.Len(t, env.content.calls, 1)
	assert.Equal(t, "twitter", env.content.calls[0].Platform)
	require.Len(t, env.social.calls, 1)
	assert.Equal(t, "fresh copy", env.social.calls[0].Content)
	assert.Equal(t, []string{"#HorrorBooks"}, env.social.calls[0].Hashtags)
}

func TestSocialPostUsesProvidedContent(t *testing.T) {
	env := newTestEnv(t)
	task := mustCreate(t, env, CreateRequest{
		TaskType:        "social_post",
		SchedulePattern: "daily",
		Parameters:      map[string]interface{}{"content": "prepared copy"},
	})

	env.sched.runTask(task.TaskID)

	assert.Empty(t, env.content.calls)
	require.Len(t, env.social.calls, 1)
	assert.Equal(t, "prepared copy", env.social.calls[0].Content)
	assert.Equal(t, []string{"instagram"}, env.social.calls[0].Platforms)
}

func TestAnalyticsReportEmails(t *testing.T) {
	env := newTestEnv(t)
	env.text.out = "weekly numbers look fine"
	task := mustCreate(t, env, CreateRequest{
		TaskType:        "analytics_report",
		SchedulePattern: "weekly",
		Parameters:      map[string]interface{}{"email_report": true, "recipient": "author@darkroad.example"},
	})

	env.sched.runTask(task.TaskID)

	got, err := env.sched.Get(task.TaskID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
	require.Len(t, env.mail.recipients, 1)
	assert.Equal(t, "author@darkroad.example", env.mail.recipients[0])
	assert.Contains(t, env.mail.subjects[0], "Analytics Report")
}

func TestImageGenerationDefaults(t *testing.T) {
	env := newTestEnv(t)
	task := mustCreate(t, env, CreateRequest{TaskType: "image_generation", SchedulePattern: "daily"})

	env.sched.runTask(task.TaskID)

	got, err := env.sched.Get(task.TaskID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
}

func TestPerformanceAnalysisFailure(t *testing.T) {
	env := newTestEnv(t)
	env.text.err = errors.New("summarizer down")
	task := mustCreate(t, env, CreateRequest{TaskType: "performance_analysis", SchedulePattern: "monthly"})

	env.sched.runTask(task.TaskID)

	got, err := env.sched.Get(task.TaskID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Contains(t, got.LastError, "summarizer down")

	require.Len(t, env.pub.events, 2)
	assert.Equal(t, "failed", env.pub.events[1].Phase)
	assert.Contains(t, env.pub.events[1].Error, "summarizer down")
}

func TestRunTaskRecoversPanic(t *testing.T) {
	env := newTestEnv(t)
	env.sched.collab.Content = panickyContent{}
	task := mustCreate(t, env, CreateRequest{TaskType: "content_generation", SchedulePattern: "daily"})

	env.sched.runTask(task.TaskID)

	got, err := env.sched.Get(task.TaskID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.RunCount)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Contains(t, got.LastError, "panic")
}

type panickyContent struct{}

func (panickyContent) CoordinateContent(ctx context.Context, req agents.ContentRequest) (agents.ContentResult, error) {
	panic("handler blew up")
}
