package db

import (
	"time"

	"gorm.io/gorm"
)

// TaskRun is one row of execution history for a scheduled task. The registry
// snapshot only keeps the latest outcome per task; this table keeps them all.
type TaskRun struct {
	gorm.Model
	TaskID     string    `json:"task_id" gorm:"index"`
	TaskType   string    `json:"task_type" gorm:"index"`
	Status     string    `json:"status" gorm:"index"` // completed | failed
	Output     string    `json:"output" gorm:"type:json"`
	Error      string    `json:"error"`
	StartedAt  time.Time `json:"started_at" gorm:"index"`
	DurationMs int64     `json:"duration_ms"`
}
