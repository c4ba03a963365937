package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDatabasePath(t *testing.T) {
	t.Run("SR_DB_PATH wins", func(t *testing.T) {
		t.Setenv("SR_DB_PATH", "/tmp/custom.db")
		path, err := GetDatabasePath()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/custom.db", path)
	})

	t.Run("defaults to data home", func(t *testing.T) {
		dataHome := t.TempDir()
		t.Setenv("SR_DB_PATH", "")
		t.Setenv("SR_DATA_HOME", dataHome)
		path, err := GetDatabasePath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dataHome, "records.db"), path)
	})
}

func TestGetStateHome_Override(t *testing.T) {
	stateHome := filepath.Join(t.TempDir(), "nested", "state")
	t.Setenv("SR_STATE_HOME", stateHome)

	got, err := GetStateHome()
	require.NoError(t, err)
	assert.Equal(t, stateHome, got)

	info, err := os.Stat(stateHome)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
