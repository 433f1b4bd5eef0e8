package events

// TaskExecutionEvent is published to Kafka when a scheduled task fires and
// again when its run finishes.
type TaskExecutionEvent struct {
	TaskID     string `json:"task_id"`
	TaskType   string `json:"task_type"`
	Phase      string `json:"phase"` // fired | completed | failed
	RunCount   int    `json:"run_count"`
	Error      string `json:"error,omitempty"`
	FiredAt    string `json:"fired_at"`
	DurationMs int64  `json:"duration_ms,omitempty"`
}
