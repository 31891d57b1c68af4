// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoadEnvironment_UnreadableDotenvIsWarning(t *testing.T) {
	logs := captureLogs(t)
	dir := t.TempDir()

	// A directory in place of the .env file cannot be parsed.
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.Mkdir(dotenv, 0o755))

	applied := loadEnvironment(dotenv, filepath.Join(dir, ".secrets"))
	assert.Nil(t, applied)
	assert.Contains(t, logs.String(), "skipping environment files")
}

func TestLoadEnvironment_AppliesDotenv(t *testing.T) {
	captureLogs(t)
	dir := t.TempDir()
	t.Setenv("STUDY_PLANNER_TEST_REGION", "")
	os.Unsetenv("STUDY_PLANNER_TEST_REGION")

	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("STUDY_PLANNER_TEST_REGION=ap-south-1\n"), 0o644))

	applied := loadEnvironment(dotenv, filepath.Join(dir, ".secrets"))
	assert.Equal(t, []string{"STUDY_PLANNER_TEST_REGION"}, applied)
	assert.Equal(t, "ap-south-1", os.Getenv("STUDY_PLANNER_TEST_REGION"))
}

func TestLoadEnvironment_MissingFiles(t *testing.T) {
	logs := captureLogs(t)
	dir := t.TempDir()

	applied := loadEnvironment(filepath.Join(dir, ".env"), filepath.Join(dir, ".secrets"))
	assert.Empty(t, applied)
	assert.NotContains(t, logs.String(), "skipping environment files")
}
