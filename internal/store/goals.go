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

// GoalStore owns the monthly goal collection, written through like TaskStore.
type GoalStore struct {
	mu     sync.Mutex
	kv     KV
	key    string
	clock  clock.Clock
	logger *log.Logger

	goals  []model.Goal
	lastID int64
}

func NewGoalStore(kv KV, keys Keys, clk clock.Clock, logger *log.Logger) (*GoalStore, error) {
	if clk == nil {
		clk = clock.New()
	}
	s := &GoalStore{
		kv:     kv,
		key:    keys.Goals,
		clock:  clk,
		logger: defaultLogger(logger),
	}

	var goals []model.Goal
	if err := LoadJson(kv, s.key, &goals, s.logger); err != nil {
		return nil, err
	}
	s.goals = goals
	for _, g := range goals {
		if g.ID > s.lastID {
			s.lastID = g.ID
		}
	}
	return s, nil
}

func (s *GoalStore) persistLocked() {
	if err := SaveJson(s.kv, s.key, s.goals); err != nil {
		s.logger.Printf("⚠️ Goals not saved, changes will not survive a restart: %v", err)
	}
}

func (s *GoalStore) indexLocked(id int64) int {
	for i := range s.goals {
		if s.goals[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *GoalStore) AddGoal(text string) (model.Goal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Goal{}, fmt.Errorf("goal text is required: %w", model.ErrInvalidInput)
	}

	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	goal := model.Goal{
		ID:        model.NextID(now, s.lastID),
		Text:      text,
		CreatedAt: now.Format(model.CreatedAtLayout),
	}
	s.lastID = goal.ID
	s.goals = append(s.goals, goal)
	s.persistLocked()
	return goal, nil
}

func (s *GoalStore) ToggleComplete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("goal %d: %w", id, model.ErrNotFound)
	}
	s.goals[i].Completed = !s.goals[i].Completed
	s.persistLocked()
	return nil
}

// DeleteGoal removes the goal. Deleting an unknown id is a no-op.
func (s *GoalStore) DeleteGoal(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return
	}
	s.goals = append(s.goals[:i], s.goals[i+1:]...)
	s.persistLocked()
}

func (s *GoalStore) Goals() []model.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Goal, len(s.goals))
	copy(out, s.goals)
	return out
}

// GoalsForMonth returns goals created in the given month of loc's calendar.
func (s *GoalStore) GoalsForMonth(year int, month time.Month, loc *time.Location) []model.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Goal{}
	for _, g := range s.goals {
		created, err := time.Parse(model.CreatedAtLayout, g.CreatedAt)
		if err != nil {
			continue
		}
		created = created.In(loc)
		if created.Year() == year && created.Month() == month {
			out = append(out, g)
		}
	}
	return out
}

// Progress is the completed percentage of every goal, 0 when there are none.
func (s *GoalStore) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return GoalProgress(s.goals)
}

// GoalProgress is the completed percentage of goals, 0 for an empty slice.
func GoalProgress(goals []model.Goal) float64 {
	if len(goals) == 0 {
		return 0
	}
	done := 0
	for _, g := range goals {
		if g.Completed {
			done++
		}
	}
	return 100 * float64(done) / float64(len(goals))
}
