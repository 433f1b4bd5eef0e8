package scheduler

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	store := NewStore(path)

	created := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	lastRun := created.Add(24 * time.Hour)
	tasks := map[string]*ScheduledTask{
		"content_generation_20260820_120000": {
			TaskID:          "content_generation_20260820_120000",
			Type:            TaskContentGeneration,
			Name:            "Content Generation Task",
			Description:     "Automated content_generation task",
			SchedulePattern: "daily at 10:00",
			Parameters:      map[string]interface{}{"platform": "instagram"},
			Enabled:         true,
			Status:          StatusCompleted,
			CreatedAt:       created,
			LastRun:         &lastRun,
			RunCount:        3,
			ErrorCount:      1,
			LastError:       "",
		},
		"analytics_report_20260820_120001": {
			TaskID:          "analytics_report_20260820_120001",
			Type:            TaskAnalyticsReport,
			Name:            "Analytics Report Task",
			SchedulePattern: "weekly",
			Enabled:         false,
			Status:          StatusPaused,
			CreatedAt:       created,
		},
	}

	require.NoError(t, store.Save(tasks))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	got := loaded["content_generation_20260820_120000"]
	require.NotNil(t, got)
	assert.Equal(t, TaskContentGeneration, got.Type)
	assert.Equal(t, "daily at 10:00", got.SchedulePattern)
	assert.Equal(t, "instagram", got.Parameters["platform"])
	assert.True(t, got.CreatedAt.Equal(created))
	require.NotNil(t, got.LastRun)
	assert.True(t, got.LastRun.Equal(lastRun))
	assert.Nil(t, got.NextRun)
	assert.Equal(t, 3, got.RunCount)
	assert.Equal(t, 1, got.ErrorCount)

	paused := loaded["analytics_report_20260820_120001"]
	require.NotNil(t, paused)
	assert.False(t, paused.Enabled)
	assert.Equal(t, StatusPaused, paused.Status)
	assert.Nil(t, paused.LastRun)
}

func TestStoreSnapshotLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	store := NewStore(path)

	created := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(map[string]*ScheduledTask{
		"social_post_20260820_120000": {
			TaskID:          "social_post_20260820_120000",
			Type:            TaskSocialPost,
			SchedulePattern: "daily",
			Enabled:         true,
			Status:          StatusScheduled,
			CreatedAt:       created,
		},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	rec := raw["social_post_20260820_120000"]
	require.NotNil(t, rec)

	// Enums as strings, timestamps as RFC 3339 text, absent timestamps as null.
	assert.Equal(t, "social_post", rec["task_type"])
	assert.Equal(t, "scheduled", rec["status"])
	assert.Equal(t, "2026-08-20T12:00:00Z", rec["created_at"])
	assert.Contains(t, rec, "last_run")
	assert.Nil(t, rec["last_run"])
	assert.Nil(t, rec["next_run"])
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing", "tasks.json"))
	loaded, err := store.Load()
	assert.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewStore(path).Load()
	assert.Error(t, err)
}
