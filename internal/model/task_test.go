package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
	}{
		{"", PriorityMedium},
		{"high", PriorityHigh},
		{" Low ", PriorityLow},
		{"MEDIUM", PriorityMedium},
	}
	for _, tt := range tests {
		got, err := ParsePriority(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParsePriority("urgent")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseCategory(t *testing.T) {
	got, err := ParseCategory("")
	require.NoError(t, err)
	assert.Equal(t, CategoryPersonal, got)

	got, err = ParseCategory("finance")
	require.NoError(t, err)
	assert.Equal(t, CategoryFinance, got)

	_, err = ParseCategory("Groceries")
	assert.ErrorIs(t, err, ErrInvalidInput)

	// All is only valid as a filter
	_, err = ParseCategory("All")
	assert.ErrorIs(t, err, ErrInvalidInput)

	got, err = ParseCategoryFilter("all")
	require.NoError(t, err)
	assert.Equal(t, CategoryAll, got)

	got, err = ParseCategoryFilter("Work")
	require.NoError(t, err)
	assert.Equal(t, CategoryWork, got)
}

func TestTask_AlarmDue(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 30, 0, 0, time.Local)

	noAlarm := Task{ID: 1, Text: "x"}
	due, err := noAlarm.AlarmDue(now)
	require.NoError(t, err)
	assert.False(t, due)

	past := Task{ID: 2, Text: "x", AlarmTime: "2026-10-17T09:29"}
	due, err = past.AlarmDue(now)
	require.NoError(t, err)
	assert.True(t, due)

	exact := Task{ID: 3, Text: "x", AlarmTime: "2026-10-17T09:30"}
	due, err = exact.AlarmDue(now)
	require.NoError(t, err)
	assert.True(t, due)

	future := Task{ID: 4, Text: "x", AlarmTime: "2026-10-17T09:31"}
	due, err = future.AlarmDue(now)
	require.NoError(t, err)
	assert.False(t, due)

	fired := Task{ID: 5, Text: "x", AlarmTime: "2026-10-17T09:00", AlarmTriggered: true}
	due, err = fired.AlarmDue(now)
	require.NoError(t, err)
	assert.False(t, due)

	broken := Task{ID: 6, Text: "x", AlarmTime: "soon"}
	_, err = broken.AlarmDue(now)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPriority_Rank(t *testing.T) {
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
}
