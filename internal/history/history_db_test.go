package history

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "nested", "activity.db"))
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestRecordAndRecent(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Record("create_product", "KEY-001", map[string]string{"name": "Widget"}, nil))
	require.NoError(t, m.Record("delete_tag", "red", nil, errors.New("in use")))

	entries, err := m.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// newest first
	assert.Equal(t, "delete_tag", entries[0].Action)
	assert.False(t, entries[0].OK)
	assert.Equal(t, "in use", entries[0].Error)
	assert.Empty(t, entries[0].Payload)

	assert.Equal(t, "create_product", entries[1].Action)
	assert.Equal(t, "KEY-001", entries[1].Target)
	assert.True(t, entries[1].OK)
	assert.JSONEq(t, `{"name":"Widget"}`, entries[1].Payload)
	assert.False(t, entries[1].Timestamp.IsZero())
}

func TestRecentLimit(t *testing.T) {
	m := newTestManager(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, m.Record("update_product", "KEY-001", nil, nil))
	}

	entries, err := m.Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	count, err := m.GetCount()
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestClear(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Record("create_tag", "red", nil, nil))

	require.NoError(t, m.Clear())

	count, err := m.GetCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRecord_BadPayload(t *testing.T) {
	m := newTestManager(t)
	assert.Error(t, m.Record("create_tag", "red", make(chan int), nil))
}

func TestForTarget(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Record("update_product", "KEY-001", nil, nil))
	require.NoError(t, m.Record("update_product", "VAS-001", nil, nil))
	require.NoError(t, m.Record("delete_product", "KEY-001", nil, nil))

	entries, err := m.ForTarget("KEY-001", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "delete_product", entries[0].Action)
	assert.Equal(t, "update_product", entries[1].Action)
}
