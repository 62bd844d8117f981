package store

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/nakachan-ing/zentasks/internal/model"
)

// NewTask carries the caller-supplied fields of an add.
type NewTask struct {
	Text         string
	DeadlineTime string
	Priority     string
	Category     string
	AlarmTime    string
}

// TaskEdit replaces the editable fields of an existing task.
type TaskEdit struct {
	Text         string
	DeadlineTime string
	Priority     string
	Category     string
}

// TaskStore owns the task collection. Every mutation rewrites the whole collection
// to the KV; write failures are logged and the in-memory state stays authoritative.
type TaskStore struct {
	mu     sync.Mutex
	kv     KV
	key    string
	clock  clock.Clock
	logger *log.Logger

	tasks   []model.Task
	lastID  int64
	rearm   bool
	lastErr error
}

type TaskStoreOption func(*TaskStore)

// WithRearm lets SetAlarm put a triggered alarm back to pending when its time changes.
func WithRearm(enabled bool) TaskStoreOption {
	return func(s *TaskStore) { s.rearm = enabled }
}

func NewTaskStore(kv KV, keys Keys, clk clock.Clock, logger *log.Logger, opts ...TaskStoreOption) (*TaskStore, error) {
	if clk == nil {
		clk = clock.New()
	}
	s := &TaskStore{
		kv:     kv,
		key:    keys.Tasks,
		clock:  clk,
		logger: defaultLogger(logger),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory collection with what the KV holds.
func (s *TaskStore) Reload() error {
	var tasks []model.Task
	if err := LoadJson(s.kv, s.key, &tasks, s.logger); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
	for _, t := range tasks {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	return nil
}

func (s *TaskStore) persistLocked() {
	if err := SaveJson(s.kv, s.key, s.tasks); err != nil {
		s.lastErr = err
		s.logger.Printf("⚠️ Tasks not saved, changes will not survive a restart: %v", err)
		return
	}
	s.lastErr = nil
}

// PersistErr returns the error of the most recent write, or nil if it succeeded.
func (s *TaskStore) PersistErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *TaskStore) indexLocked(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) AddTask(in NewTask) (model.Task, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return model.Task{}, fmt.Errorf("task text is required: %w", model.ErrInvalidInput)
	}
	priority, err := model.ParsePriority(in.Priority)
	if err != nil {
		return model.Task{}, err
	}
	category, err := model.ParseCategory(in.Category)
	if err != nil {
		return model.Task{}, err
	}

	now := s.clock.Now()
	deadline, err := model.NormalizeDateTime(in.DeadlineTime, now.Location())
	if err != nil {
		return model.Task{}, fmt.Errorf("deadline: %w", err)
	}
	alarmAt, err := model.NormalizeDateTime(in.AlarmTime, now.Location())
	if err != nil {
		return model.Task{}, fmt.Errorf("alarm: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := model.Task{
		ID:           model.NextID(now, s.lastID),
		Text:         text,
		Completed:    false,
		DeadlineTime: deadline,
		Priority:     priority,
		Category:     category,
		AlarmTime:    alarmAt,
		CreatedAt:    now.Format(model.CreatedAtLayout),
	}
	s.lastID = task.ID
	s.tasks = append(s.tasks, task)
	s.persistLocked()
	return task, nil
}

func (s *TaskStore) ToggleComplete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("task %d: %w", id, model.ErrNotFound)
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.persistLocked()
	return nil
}

func (s *TaskStore) EditTask(id int64, edit TaskEdit) error {
	text := strings.TrimSpace(edit.Text)
	if text == "" {
		return fmt.Errorf("task text is required: %w", model.ErrInvalidInput)
	}
	priority, err := model.ParsePriority(edit.Priority)
	if err != nil {
		return err
	}
	category, err := model.ParseCategory(edit.Category)
	if err != nil {
		return err
	}
	deadline, err := model.NormalizeDateTime(edit.DeadlineTime, s.clock.Now().Location())
	if err != nil {
		return fmt.Errorf("deadline: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("task %d: %w", id, model.ErrNotFound)
	}
	s.tasks[i].Text = text
	s.tasks[i].DeadlineTime = deadline
	s.tasks[i].Priority = priority
	s.tasks[i].Category = category
	s.persistLocked()
	return nil
}

// SetAlarm changes or clears (blank alarmTime) a task's alarm. A triggered alarm
// stays triggered unless the store was built WithRearm and the time actually changed.
func (s *TaskStore) SetAlarm(id int64, alarmTime string) error {
	alarmAt, err := model.NormalizeDateTime(alarmTime, s.clock.Now().Location())
	if err != nil {
		return fmt.Errorf("alarm: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("task %d: %w", id, model.ErrNotFound)
	}
	if s.rearm && alarmAt != "" && alarmAt != s.tasks[i].AlarmTime {
		s.tasks[i].AlarmTriggered = false
	}
	s.tasks[i].AlarmTime = alarmAt
	s.persistLocked()
	return nil
}

// DeleteTask removes the task. Deleting an unknown id is a no-op.
func (s *TaskStore) DeleteTask(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.persistLocked()
}

func (s *TaskStore) Get(id int64) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

// Tasks returns a copy of the collection in insertion order.
func (s *TaskStore) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *TaskStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (s *TaskStore) FilterByCategory(selected string) ([]model.Task, error) {
	category, err := model.ParseCategoryFilter(selected)
	if err != nil {
		return nil, err
	}
	if category == model.CategoryAll {
		return s.Tasks(), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Task{}
	for _, t := range s.tasks {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out, nil
}

// Progress is the completed percentage, 0 for an empty store.
func (s *TaskStore) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range s.tasks {
		if t.Completed {
			done++
		}
	}
	return 100 * float64(done) / float64(len(s.tasks))
}

// DueAlarms lists pending alarms whose time is at or before now. Tasks with an
// unparseable alarm time are logged and left out.
func (s *TaskStore) DueAlarms(now time.Time) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []model.Task
	for _, t := range s.tasks {
		ok, err := t.AlarmDue(now)
		if err != nil {
			s.logger.Printf("⚠️ Skipping alarm for task %d: %v", t.ID, err)
			continue
		}
		if ok {
			due = append(due, t)
		}
	}
	return due
}

// MarkAlarmTriggered flips alarmTriggered to true and persists. It reports false if
// the task is gone or was already triggered, so a caller fires at most once.
func (s *TaskStore) MarkAlarmTriggered(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 || s.tasks[i].AlarmTriggered {
		return false
	}
	s.tasks[i].AlarmTriggered = true
	s.persistLocked()
	return true
}
