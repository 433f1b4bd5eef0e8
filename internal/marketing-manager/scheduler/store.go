package scheduler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// taskRecord is the wire form of a ScheduledTask in the snapshot file.
// Enums are stored as their string values, timestamps as RFC 3339 text and
// absent timestamps as null. The conversion is done by explicit encode and
// decode functions so the snapshot layout stays a contract rather than a
// reflection accident.
type taskRecord struct {
	TaskID          string                 `json:"task_id"`
	TaskType        string                 `json:"task_type"`
	Name            string                 `json:"name"`
	Description     string                 `json:"description"`
	SchedulePattern string                 `json:"schedule_pattern"`
	Parameters      map[string]interface{} `json:"parameters"`
	Enabled         bool                   `json:"enabled"`
	Status          string                 `json:"status"`
	CreatedAt       string                 `json:"created_at"`
	LastRun         *string                `json:"last_run"`
	NextRun         *string                `json:"next_run"`
	RunCount        int                    `json:"run_count"`
	ErrorCount      int                    `json:"error_count"`
	LastError       string                 `json:"last_error"`
}

func encodeTask(t *ScheduledTask) taskRecord {
	rec := taskRecord{
		TaskID:          t.TaskID,
		TaskType:        string(t.Type),
		Name:            t.Name,
		Description:     t.Description,
		SchedulePattern: t.SchedulePattern,
		Parameters:      t.Parameters,
		Enabled:         t.Enabled,
		Status:          string(t.Status),
		CreatedAt:       t.CreatedAt.Format(time.RFC3339Nano),
		RunCount:        t.RunCount,
		ErrorCount:      t.ErrorCount,
		LastError:       t.LastError,
	}
	rec.LastRun = encodeTime(t.LastRun)
	rec.NextRun = encodeTime(t.NextRun)
	return rec
}

func decodeTask(rec taskRecord) (*ScheduledTask, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("task %s: bad created_at %q: %w", rec.TaskID, rec.CreatedAt, err)
	}
	lastRun, err := decodeTime(rec.LastRun)
	if err != nil {
		return nil, fmt.Errorf("task %s: bad last_run: %w", rec.TaskID, err)
	}
	nextRun, err := decodeTime(rec.NextRun)
	if err != nil {
		return nil, fmt.Errorf("task %s: bad next_run: %w", rec.TaskID, err)
	}
	return &ScheduledTask{
		TaskID:          rec.TaskID,
		Type:            TaskType(rec.TaskType),
		Name:            rec.Name,
		Description:     rec.Description,
		SchedulePattern: rec.SchedulePattern,
		Parameters:      rec.Parameters,
		Enabled:         rec.Enabled,
		Status:          TaskStatus(rec.Status),
		CreatedAt:       createdAt,
		LastRun:         lastRun,
		NextRun:         nextRun,
		RunCount:        rec.RunCount,
		ErrorCount:      rec.ErrorCount,
		LastError:       rec.LastError,
	}, nil
}

func encodeTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339Nano)
	return &s
}

func decodeTime(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Store persists the whole registry as one JSON document mapping
// task_id -> task record. Writes are serialized by the store mutex and go
// through a temp file plus rename so a crashed write never truncates the
// previous snapshot.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Save(tasks map[string]*ScheduledTask) error {
	records := make(map[string]taskRecord, len(tasks))
	for id, t := range tasks {
		records[id] = encodeTask(t)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot back into memory. A missing file is not an error;
// it simply means an empty registry.
func (s *Store) Load() (map[string]*ScheduledTask, error) {
	s.mu.Lock()
	data, err := os.ReadFile(s.path)
	s.mu.Unlock()
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*ScheduledTask{}, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var records map[string]taskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	tasks := make(map[string]*ScheduledTask, len(records))
	for id, rec := range records {
		task, err := decodeTask(rec)
		if err != nil {
			return nil, err
		}
		tasks[id] = task
	}
	return tasks, nil
}
