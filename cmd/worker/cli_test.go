package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"monkey-social/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCLI(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	for k, v := range env {
		t.Setenv(k, v)
	}
	t.Setenv("REDIS_ADDR", "")

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func TestTickOnEmptyMemoryStorePrintsReport(t *testing.T) {
	stdout, err := executeCLI(t, map[string]string{"STORE_BACKEND": "memory", "LOG_LEVEL": "error"},
		"tick", "--seed", "7")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))

	var rep struct {
		Processed int `json:"processed"`
		Writes    int `json:"writes"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &rep))
	assert.Equal(t, 0, rep.Processed)
	assert.Equal(t, 0, rep.Writes)
}

func TestTickRequiresExplicitFirebaseURL(t *testing.T) {
	_, err := executeCLI(t, map[string]string{"STORE_BACKEND": "firebase", "FIREBASE_URL": "", "LOG_LEVEL": "error"},
		"tick")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingStoreURL)
}

func TestRunRejectsInvalidSchedule(t *testing.T) {
	_, err := executeCLI(t, map[string]string{"STORE_BACKEND": "memory", "METRICS_ADDR": "", "LOG_LEVEL": "error"},
		"run", "--schedule", "not a cron spec")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schedule")
}
