package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"gorm.io/gorm"

	taskDB "marketing-automation-service/internal/marketing-manager/db"
	"marketing-automation-service/internal/marketing-manager/scheduler"
)

// ScheduleHandler exposes the task registry over HTTP.
type ScheduleHandler struct {
	Scheduler *scheduler.Scheduler
	DB        *gorm.DB // run history; may be nil when history is disabled
}

func NewScheduleHandler(s *scheduler.Scheduler, db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{Scheduler: s, DB: db}
}

type CreateScheduledTaskRequest struct {
	TaskType        string                 `json:"task_type" validate:"required,gt=0"`
	Name            string                 `json:"name"`
	Description     string                 `json:"description"`
	SchedulePattern string                 `json:"schedule_pattern" validate:"required,gt=0"`
	Parameters      map[string]interface{} `json:"parameters"`
}

func (h *ScheduleHandler) CreateScheduledTask(ctx context.Context, c *app.RequestContext) {
	var req CreateScheduledTaskRequest
	if err := c.Bind(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if err := c.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	task, err := h.Scheduler.Create(scheduler.CreateRequest{
		TaskType:        req.TaskType,
		Name:            req.Name,
		Description:     req.Description,
		SchedulePattern: req.SchedulePattern,
		Parameters:      req.Parameters,
	})
	if err != nil {
		if errors.Is(err, scheduler.ErrInvalidTaskType) || errors.Is(err, scheduler.ErrInvalidParameters) {
			c.JSON(http.StatusBadRequest, utils.H{"error": err.Error()})
			return
		}
		hlog.Errorf("Failed to create scheduled task: %v", err)
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to create scheduled task: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *ScheduleHandler) GetScheduledTasks(ctx context.Context, c *app.RequestContext) {
	tasks := h.Scheduler.List()
	c.JSON(http.StatusOK, utils.H{"tasks": tasks, "total": len(tasks)})
}

func (h *ScheduleHandler) GetScheduledTaskByID(ctx context.Context, c *app.RequestContext) {
	task, err := h.Scheduler.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, scheduler.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, utils.H{"error": "Scheduled task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utils.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *ScheduleHandler) PauseScheduledTask(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")
	if err := h.Scheduler.Pause(id); err != nil {
		if errors.Is(err, scheduler.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, utils.H{"error": "Scheduled task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utils.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, utils.H{"message": "Task paused", "task_id": id})
}

func (h *ScheduleHandler) ResumeScheduledTask(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")
	if err := h.Scheduler.Resume(id); err != nil {
		if errors.Is(err, scheduler.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, utils.H{"error": "Scheduled task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utils.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, utils.H{"message": "Task resumed", "task_id": id})
}

func (h *ScheduleHandler) DeleteScheduledTask(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")
	if err := h.Scheduler.Delete(id); err != nil {
		if errors.Is(err, scheduler.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, utils.H{"error": "Scheduled task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utils.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, utils.H{"message": "Task deleted", "task_id": id})
}

// GetTaskRuns returns the persisted execution history for one task, newest
// first.
func (h *ScheduleHandler) GetTaskRuns(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")
	if _, err := h.Scheduler.Get(id); err != nil {
		if errors.Is(err, scheduler.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, utils.H{"error": "Scheduled task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utils.H{"error": err.Error()})
		return
	}
	if h.DB == nil {
		c.JSON(http.StatusOK, utils.H{"task_id": id, "runs": []taskDB.TaskRun{}})
		return
	}
	var runs []taskDB.TaskRun
	if result := h.DB.Where("task_id = ?", id).Order("started_at desc").Limit(100).Find(&runs); result.Error != nil {
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to fetch run history: " + result.Error.Error()})
		return
	}
	c.JSON(http.StatusOK, utils.H{"task_id": id, "runs": runs})
}
