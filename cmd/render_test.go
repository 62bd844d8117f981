package cmd

import (
	"testing"

	"github.com/nakachan-ing/zentasks/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProgress(t *testing.T) {
	assert.Contains(t, renderProgress("Tasks", 0, model.ThemeLight), "0% completed")
	assert.Contains(t, renderProgress("Tasks", 66.666, model.ThemeDark), "67% completed")
	assert.Contains(t, renderProgress("Tasks", 100, model.ThemeLight), "100% completed")
}

func TestDisplayDateTime(t *testing.T) {
	assert.Equal(t, "2025-03-01 08:00", displayDateTime("2025-03-01T08:00"))
	assert.Equal(t, "", displayDateTime(""))
}

func TestTaskMarkdown(t *testing.T) {
	task := model.Task{
		ID:             1,
		Text:           "Buy milk",
		Completed:      true,
		Priority:       model.PriorityMedium,
		Category:       model.CategoryPersonal,
		AlarmTime:      "2025-03-01T08:00",
		AlarmTriggered: true,
		CreatedAt:      "2025-03-01T07:00:00Z",
	}
	md := taskMarkdown(task)
	assert.Contains(t, md, "# ~~Buy milk~~")
	assert.Contains(t, md, "2025-03-01 08:00 (fired)")
	assert.NotContains(t, md, "Deadline")
}

func TestParseID(t *testing.T) {
	id, err := parseID("1740819600000")
	require.NoError(t, err)
	assert.Equal(t, int64(1740819600000), id)

	_, err = parseID("abc")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}
