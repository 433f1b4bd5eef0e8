package scheduler

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"marketing-automation-service/pkg/validation"
)

// CreateRequest carries the caller-supplied fields for a new scheduled task.
// Name and Description are optional; empty values get type-derived defaults.
type CreateRequest struct {
	TaskType        string
	Name            string
	Description     string
	SchedulePattern string
	Parameters      map[string]interface{}
}

// Create registers a new task, arms its trigger and persists the registry.
// Returns ErrInvalidTaskType for an unknown type and ErrInvalidParameters
// when the parameters violate the type's schema; in both cases nothing is
// recorded.
func (s *Scheduler) Create(req CreateRequest) (ScheduledTask, error) {
	tt, err := ParseTaskType(req.TaskType)
	if err != nil {
		return ScheduledTask{}, err
	}
	if err := validateParameters(tt, req.Parameters); err != nil {
		return ScheduledTask{}, err
	}

	now := time.Now()
	name := req.Name
	if name == "" {
		name = displayName(tt)
	}
	description := req.Description
	if description == "" {
		description = defaultDescription(tt)
	}
	params := req.Parameters
	if params == nil {
		params = map[string]interface{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextTaskIDLocked(tt, now)
	task := &ScheduledTask{
		TaskID:          id,
		Type:            tt,
		Name:            name,
		Description:     description,
		SchedulePattern: req.SchedulePattern,
		Parameters:      params,
		Enabled:         true,
		Status:          StatusScheduled,
		CreatedAt:       now,
	}
	s.tasks[id] = task
	if err := s.armLocked(task); err != nil {
		delete(s.tasks, id)
		return ScheduledTask{}, err
	}
	if err := s.persistLocked(); err != nil {
		hlog.Errorf("Failed to persist registry after creating %s: %v", id, err)
	}
	hlog.Infof("Scheduled task %s (%s) with pattern %q", id, tt, req.SchedulePattern)
	return task.clone(), nil
}

// nextTaskIDLocked derives <type>_<YYYYMMDD_HHMMSS>, suffixing on the rare
// same-second collision. Caller holds s.mu.
func (s *Scheduler) nextTaskIDLocked(tt TaskType, now time.Time) string {
	base := fmt.Sprintf("%s_%s", tt, now.Format("20060102_150405"))
	id := base
	for n := 2; ; n++ {
		if _, exists := s.tasks[id]; !exists {
			return id
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}

func validateParameters(tt TaskType, params map[string]interface{}) error {
	schema, ok := paramSchemas[tt]
	if !ok || params == nil {
		return nil
	}
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	if err := validation.ValidateJSONWithSchema(schema, string(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	return nil
}

// Get returns a copy of the task, or ErrTaskNotFound.
func (s *Scheduler) Get(id string) (ScheduledTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return ScheduledTask{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return t.clone(), nil
}

// List returns copies of every task, oldest first.
func (s *Scheduler) List() []ScheduledTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ScheduledTask, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].TaskID < out[j].TaskID
	})
	return out
}

// Pause disables a task and disarms its trigger. Pausing an already paused
// task is a no-op. A run already in flight finishes and keeps its counter
// updates, but the task stays paused afterwards.
func (s *Scheduler) Pause(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if t.Status == StatusPaused {
		return nil
	}
	t.Enabled = false
	t.Status = StatusPaused
	s.disarmLocked(id)
	t.NextRun = nil
	if err := s.persistLocked(); err != nil {
		hlog.Errorf("Failed to persist registry after pausing %s: %v", id, err)
	}
	hlog.Infof("Paused task %s", id)
	return nil
}

// Resume re-enables a paused task and re-arms its trigger. Resuming a task
// that is not paused is a no-op.
func (s *Scheduler) Resume(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if t.Enabled {
		return nil
	}
	t.Enabled = true
	t.Status = StatusScheduled
	if err := s.armLocked(t); err != nil {
		return err
	}
	if err := s.persistLocked(); err != nil {
		hlog.Errorf("Failed to persist registry after resuming %s: %v", id, err)
	}
	hlog.Infof("Resumed task %s", id)
	return nil
}

// Delete disarms and removes a task.
func (s *Scheduler) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	s.disarmLocked(id)
	delete(s.tasks, id)
	if err := s.persistLocked(); err != nil {
		hlog.Errorf("Failed to persist registry after deleting %s: %v", id, err)
	}
	hlog.Infof("Deleted task %s", id)
	return nil
}
