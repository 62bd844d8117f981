package store

import (
	"bytes"
	"io"
	"log"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/nakachan-ing/zentasks/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = log.New(io.Discard, "", 0)

func newTestTaskStore(t *testing.T, opts ...TaskStoreOption) (*TaskStore, *MemoryKV, *clock.Mock) {
	t.Helper()
	clk := clock.NewMock()
	clk.Set(time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local))
	kv := NewMemoryKV("zentasks")
	s, err := NewTaskStore(kv, NewKeys("zentasks"), clk, quiet, opts...)
	require.NoError(t, err)
	return s, kv, clk
}

func TestTaskStore_EndToEnd(t *testing.T) {
	s, _, _ := newTestTaskStore(t)
	assert.Zero(t, s.Progress())

	task, err := s.AddTask(NewTask{Text: "Buy milk", Priority: "Medium", Category: "Personal"})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
	assert.Zero(t, s.Progress())
	assert.False(t, task.Completed)
	assert.Empty(t, task.DeadlineTime)

	require.NoError(t, s.ToggleComplete(task.ID))
	assert.Equal(t, 100.0, s.Progress())

	s.DeleteTask(task.ID)
	assert.Zero(t, s.Len())
	assert.Zero(t, s.Progress())
}

func TestTaskStore_AddAssignsUniqueIDs(t *testing.T) {
	s, _, clk := newTestTaskStore(t)

	seen := map[int64]bool{}
	for i := 0; i < 20; i++ {
		// half the adds land in the same millisecond
		if i%2 == 0 {
			clk.Add(time.Millisecond)
		}
		task, err := s.AddTask(NewTask{Text: "task"})
		require.NoError(t, err)
		assert.False(t, seen[task.ID], "duplicate id %d", task.ID)
		seen[task.ID] = true
	}
	assert.Equal(t, 20, s.Len())
}

func TestTaskStore_AddDefaultsAndValidation(t *testing.T) {
	s, _, clk := newTestTaskStore(t)

	task, err := s.AddTask(NewTask{Text: "  Stretch  ", DeadlineTime: "2025-03-02 18:30"})
	require.NoError(t, err)
	assert.Equal(t, "Stretch", task.Text)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.Equal(t, model.CategoryPersonal, task.Category)
	assert.Equal(t, "2025-03-02T18:30", task.DeadlineTime)
	assert.Equal(t, clk.Now().Format(model.CreatedAtLayout), task.CreatedAt)
	assert.Equal(t, clk.Now().UnixMilli(), task.ID)

	tests := []struct {
		name string
		in   NewTask
	}{
		{"blank text", NewTask{Text: "   "}},
		{"bad priority", NewTask{Text: "x", Priority: "urgent"}},
		{"bad category", NewTask{Text: "x", Category: "Hobby"}},
		{"all is not a category", NewTask{Text: "x", Category: "All"}},
		{"bad deadline", NewTask{Text: "x", DeadlineTime: "tomorrow"}},
		{"bad alarm", NewTask{Text: "x", AlarmTime: "03/02/2025"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddTask(tt.in)
			assert.ErrorIs(t, err, model.ErrInvalidInput)
		})
	}
	assert.Equal(t, 1, s.Len())
}

func TestTaskStore_ToggleIsInvolution(t *testing.T) {
	s, _, _ := newTestTaskStore(t)
	task, err := s.AddTask(NewTask{Text: "Read"})
	require.NoError(t, err)

	require.NoError(t, s.ToggleComplete(task.ID))
	require.NoError(t, s.ToggleComplete(task.ID))
	got, ok := s.Get(task.ID)
	require.True(t, ok)
	assert.False(t, got.Completed)

	assert.ErrorIs(t, s.ToggleComplete(42), model.ErrNotFound)
}

func TestTaskStore_FilterByCategory(t *testing.T) {
	s, _, clk := newTestTaskStore(t)
	for _, c := range []string{"Work", "Personal", "Work", "Health"} {
		clk.Add(time.Second)
		_, err := s.AddTask(NewTask{Text: c + " task", Category: c})
		require.NoError(t, err)
	}

	all, err := s.FilterByCategory("All")
	require.NoError(t, err)
	assert.Equal(t, s.Tasks(), all)

	work, err := s.FilterByCategory("work")
	require.NoError(t, err)
	require.Len(t, work, 2)
	for _, task := range work {
		assert.Equal(t, model.CategoryWork, task.Category)
	}

	finance, err := s.FilterByCategory("Finance")
	require.NoError(t, err)
	assert.Empty(t, finance)

	_, err = s.FilterByCategory("Hobby")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestTaskStore_EditTask(t *testing.T) {
	s, _, _ := newTestTaskStore(t)
	task, err := s.AddTask(NewTask{Text: "Draft", AlarmTime: "2025-03-01T08:00"})
	require.NoError(t, err)
	require.True(t, s.MarkAlarmTriggered(task.ID))

	err = s.EditTask(task.ID, TaskEdit{Text: "Final", Priority: "high", Category: "Work", DeadlineTime: "2025-03-05T17:00"})
	require.NoError(t, err)

	got, _ := s.Get(task.ID)
	assert.Equal(t, "Final", got.Text)
	assert.Equal(t, model.PriorityHigh, got.Priority)
	assert.Equal(t, model.CategoryWork, got.Category)
	assert.Equal(t, "2025-03-05T17:00", got.DeadlineTime)
	// editing fields never touches the alarm
	assert.Equal(t, "2025-03-01T08:00", got.AlarmTime)
	assert.True(t, got.AlarmTriggered)

	assert.ErrorIs(t, s.EditTask(task.ID, TaskEdit{Text: ""}), model.ErrInvalidInput)
	assert.ErrorIs(t, s.EditTask(7, TaskEdit{Text: "x"}), model.ErrNotFound)
}

func TestTaskStore_DeleteUnknownIsNoop(t *testing.T) {
	s, kv, _ := newTestTaskStore(t)
	_, err := s.AddTask(NewTask{Text: "keep"})
	require.NoError(t, err)
	before, _, _ := kv.Get("zentasks_tasks")

	s.DeleteTask(12345)

	after, _, _ := kv.Get("zentasks_tasks")
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, before, after)
}

func TestTaskStore_AlarmFiresOnce(t *testing.T) {
	s, _, clk := newTestTaskStore(t)
	past, err := s.AddTask(NewTask{Text: "past", AlarmTime: "2025-03-01T08:59"})
	require.NoError(t, err)
	_, err = s.AddTask(NewTask{Text: "future", AlarmTime: "2025-03-01T10:00"})
	require.NoError(t, err)
	_, err = s.AddTask(NewTask{Text: "no alarm"})
	require.NoError(t, err)

	due := s.DueAlarms(clk.Now())
	require.Len(t, due, 1)
	assert.Equal(t, past.ID, due[0].ID)

	assert.True(t, s.MarkAlarmTriggered(past.ID))
	assert.False(t, s.MarkAlarmTriggered(past.ID))
	assert.Empty(t, s.DueAlarms(clk.Now()))

	clk.Add(time.Hour)
	assert.Len(t, s.DueAlarms(clk.Now()), 1)
}

func TestTaskStore_SetAlarm(t *testing.T) {
	t.Run("triggered alarm stays triggered by default", func(t *testing.T) {
		s, _, _ := newTestTaskStore(t)
		task, err := s.AddTask(NewTask{Text: "call", AlarmTime: "2025-03-01T08:00"})
		require.NoError(t, err)
		require.True(t, s.MarkAlarmTriggered(task.ID))

		require.NoError(t, s.SetAlarm(task.ID, "2025-03-01T12:00"))
		got, _ := s.Get(task.ID)
		assert.Equal(t, "2025-03-01T12:00", got.AlarmTime)
		assert.True(t, got.AlarmTriggered)
	})

	t.Run("rearm resets a changed alarm", func(t *testing.T) {
		s, _, _ := newTestTaskStore(t, WithRearm(true))
		task, err := s.AddTask(NewTask{Text: "call", AlarmTime: "2025-03-01T08:00"})
		require.NoError(t, err)
		require.True(t, s.MarkAlarmTriggered(task.ID))

		require.NoError(t, s.SetAlarm(task.ID, "2025-03-01T08:00"))
		got, _ := s.Get(task.ID)
		assert.True(t, got.AlarmTriggered, "same time does not re-arm")

		require.NoError(t, s.SetAlarm(task.ID, "2025-03-01T12:00"))
		got, _ = s.Get(task.ID)
		assert.False(t, got.AlarmTriggered)
	})

	t.Run("blank clears", func(t *testing.T) {
		s, _, _ := newTestTaskStore(t)
		task, err := s.AddTask(NewTask{Text: "call", AlarmTime: "2025-03-01T08:00"})
		require.NoError(t, err)

		require.NoError(t, s.SetAlarm(task.ID, ""))
		got, _ := s.Get(task.ID)
		assert.False(t, got.HasAlarm())
		assert.ErrorIs(t, s.SetAlarm(99, ""), model.ErrNotFound)
	})
}

func TestTaskStore_PersistsAndReloads(t *testing.T) {
	s, kv, clk := newTestTaskStore(t)
	task, err := s.AddTask(NewTask{Text: "Pay rent", Category: "Finance", Priority: "High"})
	require.NoError(t, err)

	reopened, err := NewTaskStore(kv, NewKeys("zentasks"), clk, quiet)
	require.NoError(t, err)
	require.Equal(t, 1, reopened.Len())
	got, ok := reopened.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, task, got)

	clk.Add(time.Millisecond)
	_, err = s.AddTask(NewTask{Text: "Water plants"})
	require.NoError(t, err)
	require.NoError(t, reopened.Reload())
	assert.Equal(t, 2, reopened.Len())
}

func TestTaskStore_MalformedPayloadStartsEmpty(t *testing.T) {
	kv := NewMemoryKV("zentasks")
	require.NoError(t, kv.Set("zentasks_tasks", `[{"id": "oops"`))

	var buf bytes.Buffer
	s, err := NewTaskStore(kv, NewKeys("zentasks"), clock.NewMock(), log.New(&buf, "", 0))
	require.NoError(t, err)
	assert.Zero(t, s.Len())
	assert.NotEmpty(t, buf.String())
}

func TestTaskStore_WriteFailureKeepsState(t *testing.T) {
	kv := failingKV{NewMemoryKV("zentasks")}
	s, err := NewTaskStore(kv, NewKeys("zentasks"), clock.NewMock(), quiet)
	require.NoError(t, err)

	task, err := s.AddTask(NewTask{Text: "offline"})
	require.NoError(t, err)
	assert.ErrorIs(t, s.PersistErr(), ErrStorageUnavailable)
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.ToggleComplete(task.ID))
	got, _ := s.Get(task.ID)
	assert.True(t, got.Completed)
}
