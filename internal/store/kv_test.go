package store

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseKV runs the contract every backend must meet.
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()

	_, ok, err := kv.Get("zentasks_user")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("zentasks_user", `{"username":"bob","id":1}`))
	require.NoError(t, kv.Set("zentasks_theme", `"dark"`))

	v, ok, err := kv.Get("zentasks_user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"username":"bob","id":1}`, v)

	require.NoError(t, kv.Set("zentasks_user", `{"username":"amy","id":2}`))
	v, _, _ = kv.Get("zentasks_user")
	assert.Equal(t, `{"username":"amy","id":2}`, v)

	require.NoError(t, kv.Remove("zentasks_user"))
	require.NoError(t, kv.Remove("zentasks_user"), "remove is idempotent")
	_, ok, _ = kv.Get("zentasks_user")
	assert.False(t, ok)

	require.NoError(t, kv.Set("zentasks_tasks", "[]"))
	require.NoError(t, kv.Clear())
	for _, key := range []string{"zentasks_theme", "zentasks_tasks"} {
		_, ok, err := kv.Get(key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemoryKV("zentasks"))
}

func TestMemoryKV_ClearKeepsOtherNamespaces(t *testing.T) {
	kv := NewMemoryKV("zentasks")
	require.NoError(t, kv.Set("other_tasks", "[1]"))
	require.NoError(t, kv.Set("zentasks_tasks", "[]"))
	// shares the "zentasks" prefix but not the "zentasks_" one
	require.NoError(t, kv.Set("zentasksx_tasks", "[2]"))

	require.NoError(t, kv.Clear())

	assert.Equal(t, []string{"other_tasks", "zentasksx_tasks"}, kv.Keys())
}

func TestFileKV(t *testing.T) {
	exerciseKV(t, NewFileKV(filepath.Join(t.TempDir(), "data"), "zentasks"))
}

func TestFileKV_ClearKeepsOtherNamespaces(t *testing.T) {
	dir := t.TempDir()
	mine := NewFileKV(dir, "zentasks")
	other := NewFileKV(dir, "work")

	require.NoError(t, mine.Set("zentasks_tasks", "[]"))
	require.NoError(t, other.Set("work_tasks", "[1]"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "watch.lock"), []byte("id: x"), 0644))

	require.NoError(t, mine.Clear())

	v, ok, err := other.Get("work_tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[1]", v)
	assert.FileExists(t, filepath.Join(dir, "watch.lock"))
}

func TestFileKV_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewFileKV(dir, "zentasks").Set("zentasks_goals", `[{"id":1}]`))

	v, ok, err := NewFileKV(dir, "zentasks").Get("zentasks_goals")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, v)
}

func TestFileKV_SetUnavailable(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	err := NewFileKV(dir, "zentasks").Set("zentasks_tasks", "[]")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestSQLiteKV(t *testing.T) {
	kv, err := OpenSQLiteKV(filepath.Join(t.TempDir(), "db", "zentasks.db"), "zentasks")
	require.NoError(t, err)
	defer kv.Close()

	exerciseKV(t, kv)
}

func TestSQLiteKV_ClearKeepsOtherNamespaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zentasks.db")
	kv, err := OpenSQLiteKV(path, "zentasks")
	require.NoError(t, err)

	require.NoError(t, kv.Set("zentasks_tasks", "[]"))
	// "zentasksx_tasks" would match a naive LIKE 'zentasks_%'
	require.NoError(t, kv.Set("zentasksx_tasks", "[2]"))
	require.NoError(t, kv.Clear())

	_, ok, err := kv.Get("zentasksx_tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, kv.Close())

	reopened, err := OpenSQLiteKV(path, "zentasks")
	require.NoError(t, err)
	defer reopened.Close()
	v, ok, err := reopened.Get("zentasksx_tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[2]", v)
}

func TestNewKeys(t *testing.T) {
	keys := NewKeys("zentasks")
	assert.Equal(t, "zentasks_user", keys.User)
	assert.Equal(t, "zentasks_theme", keys.Theme)
	assert.Equal(t, "zentasks_tasks", keys.Tasks)
	assert.Equal(t, "zentasks_goals", keys.Goals)
}
