package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

const (
	fireQueueSize = 64
	workerCount   = 4

	taskTag = "marketing_task"
)

// Scheduler owns the task registry and drives execution. Timer firings are
// funneled through a bounded queue into a fixed worker pool so a slow agent
// call never blocks the timer goroutines, and a per-task in-flight guard
// keeps the same task from running twice concurrently.
type Scheduler struct {
	mu       sync.Mutex
	tasks    map[string]*ScheduledTask
	jobs     map[string]gocron.Job
	inflight map[string]bool
	started  bool

	cron      gocron.Scheduler
	store     *Store
	collab    Collaborators
	publisher EventPublisher // optional
	historyDB *gorm.DB       // optional

	fireCh chan string
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// Option configures optional scheduler integrations.
type Option func(*Scheduler)

// WithEventPublisher wires Kafka task-event publishing.
func WithEventPublisher(p EventPublisher) Option {
	return func(s *Scheduler) { s.publisher = p }
}

// WithHistoryDB wires per-run history rows into the given database.
func WithHistoryDB(db *gorm.DB) Option {
	return func(s *Scheduler) { s.historyDB = db }
}

func New(store *Store, collab Collaborators, opts ...Option) (*Scheduler, error) {
	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create cron scheduler: %w", err)
	}
	s := &Scheduler{
		tasks:    map[string]*ScheduledTask{},
		jobs:     map[string]gocron.Job{},
		inflight: map[string]bool{},
		cron:     cron,
		store:    store,
		collab:   collab,
		fireCh:   make(chan string, fireQueueSize),
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start loads the snapshot, re-arms every enabled, non-paused task and spins
// up the worker pool. Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		hlog.Warn("Scheduler already started")
		return nil
	}
	s.started = true
	s.mu.Unlock()

	loaded, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("load task snapshot: %w", err)
	}

	s.mu.Lock()
	for id, t := range loaded {
		s.tasks[id] = t
		if t.Enabled && t.Status != StatusPaused {
			// A task that was mid-run when the process died comes back as
			// schedulable; the run itself is lost.
			if t.Status == StatusRunning {
				t.Status = StatusScheduled
			}
			if err := s.armLocked(t); err != nil {
				hlog.Errorf("Failed to re-arm task %s: %v", id, err)
			}
		}
	}
	count := len(s.tasks)
	s.mu.Unlock()

	s.cron.Start()
	s.refreshNextRuns()

	for i := 0; i < workerCount; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	hlog.Infof("Scheduler started with %d task(s) loaded", count)
	return nil
}

// Stop shuts down the timers and workers and writes a final snapshot. It
// blocks until in-flight runs finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	s.mu.Unlock()

	if err := s.cron.Shutdown(); err != nil {
		hlog.Errorf("Cron shutdown error: %v", err)
	}
	close(s.stopCh)
	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persistLocked(); err != nil {
		hlog.Errorf("Final snapshot write failed: %v", err)
		return err
	}
	hlog.Info("Scheduler stopped")
	return nil
}

// armLocked registers the task's trigger with the cron scheduler. Caller
// holds s.mu.
func (s *Scheduler) armLocked(t *ScheduledTask) error {
	trigger, recognized := ParseSchedulePattern(t.SchedulePattern)
	if !recognized {
		hlog.Warnf("Unknown schedule pattern %q for task %s, defaulting to daily at 09:00", t.SchedulePattern, t.TaskID)
	}

	id := t.TaskID
	job, err := s.cron.NewJob(
		jobDefinition(trigger, t.CreatedAt),
		gocron.NewTask(func() { s.enqueue(id) }),
		gocron.WithName(t.Name),
		gocron.WithTags(taskTag, "task_id:"+id),
	)
	if err != nil {
		return fmt.Errorf("arm task %s: %w", id, err)
	}
	s.jobs[id] = job
	if next, err := job.NextRun(); err == nil && !next.IsZero() {
		t.NextRun = &next
	} else {
		est := EstimateNextRun(t.SchedulePattern, time.Now())
		t.NextRun = &est
	}
	return nil
}

// disarmLocked removes the task's cron job, if any. Caller holds s.mu.
func (s *Scheduler) disarmLocked(id string) {
	if _, ok := s.jobs[id]; !ok {
		return
	}
	s.cron.RemoveByTags("task_id:" + id)
	delete(s.jobs, id)
}

// jobDefinition maps a parsed trigger onto a gocron job definition. Monthly
// tasks fire on the creation day-of-month, clamped to 28 so they never skip
// short months.
func jobDefinition(tr Trigger, createdAt time.Time) gocron.JobDefinition {
	at := gocron.NewAtTimes(gocron.NewAtTime(uint(tr.Hour), uint(tr.Minute), 0))
	switch tr.Kind {
	case TriggerWeekly:
		return gocron.WeeklyJob(1, gocron.NewWeekdays(tr.Weekday), at)
	case TriggerMonthly:
		day := createdAt.Day()
		if day > 28 {
			day = 28
		}
		return gocron.MonthlyJob(1, gocron.NewDaysOfTheMonth(day), at)
	case TriggerInterval:
		return gocron.DurationJob(tr.Every)
	default:
		return gocron.DailyJob(1, at)
	}
}

// enqueue hands a firing to the worker pool. When the queue is full the
// firing is dropped with a warning; the next timer tick will try again.
func (s *Scheduler) enqueue(id string) {
	select {
	case s.fireCh <- id:
	default:
		hlog.Warnf("Fire queue full, dropping firing of task %s", id)
	}
}

func (s *Scheduler) worker() {
	defer s.wg.Done()
	for {
		select {
		case <-s.stopCh:
			return
		case id := <-s.fireCh:
			s.safeRun(id)
		}
	}
}

// safeRun keeps a worker alive even if run bookkeeping itself panics.
func (s *Scheduler) safeRun(id string) {
	defer func() {
		if r := recover(); r != nil {
			hlog.Errorf("Worker recovered from panic while running task %s: %v", id, r)
		}
	}()
	s.runTask(id)
}

// refreshNextRuns recomputes next_run for every armed job. gocron only knows
// actual fire times once it is running, so Start calls this after cron.Start.
func (s *Scheduler) refreshNextRuns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, job := range s.jobs {
		if next, err := job.NextRun(); err == nil && !next.IsZero() {
			t := s.tasks[id]
			t.NextRun = &next
		}
	}
}

// refreshNextRunLocked updates a single task's next_run from its armed job.
// Caller holds s.mu.
func (s *Scheduler) refreshNextRunLocked(t *ScheduledTask) {
	job, ok := s.jobs[t.TaskID]
	if !ok {
		t.NextRun = nil
		return
	}
	if next, err := job.NextRun(); err == nil && !next.IsZero() {
		t.NextRun = &next
	}
}

// persistLocked writes the full registry snapshot. Caller holds s.mu. The
// in-memory registry stays authoritative when the write fails; the error is
// surfaced so mutating operations can log it.
func (s *Scheduler) persistLocked() error {
	return s.store.Save(s.tasks)
}
