package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	stderrors "errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsoncmp/internal/config"
	"github.com/mcncl/jsoncmp/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, nil)), buf
}

func TestRun_ReportsDifferences(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.json", `{"a": 1, "b": [1, 2, 3]}`)
	right := writeFile(t, dir, "right.json", `{"a": 2, "b": [1, 2]}`)

	log, logBuf := bufferLogger()
	out := &bytes.Buffer{}

	err := run(config.NewConfig(), log, left, right, out)
	require.NoError(t, err)

	report := out.String()
	assert.Contains(t, report, "Total nodes: left = 6, right = 5")
	assert.Contains(t, report, "a : value_mismatch : 1 vs 2")
	assert.Contains(t, report, "b : length_mismatch : array[3] vs array[2]")

	logged := logBuf.String()
	assert.Contains(t, logged, "run started")
	assert.Contains(t, logged, "comparison summary")
	assert.Contains(t, logged, "differences=2")
	assert.Contains(t, logged, "run finished")
}

func TestRun_IdenticalFiles(t *testing.T) {
	dir := t.TempDir()
	doc := `{"users": [{"name": "ann"}], "total": 1}`
	left := writeFile(t, dir, "left.json", doc)
	right := writeFile(t, dir, "right.json", doc)

	log, _ := bufferLogger()
	out := &bytes.Buffer{}

	err := run(config.NewConfig(), log, left, right, out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No differences found.")
}

func TestRun_MissingFile(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.json", `{"a": 1}`)

	log, logBuf := bufferLogger()
	out := &bytes.Buffer{}

	err := run(config.NewConfig(), log, left, filepath.Join(dir, "missing.json"), out)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrFileNotFound))

	// No partial summary when a file fails to load.
	assert.Empty(t, out.String())
	assert.NotContains(t, logBuf.String(), "comparison summary")
}

func TestRun_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.json", `{invalid`)
	right := writeFile(t, dir, "right.json", `{"a": 1}`)

	log, _ := bufferLogger()
	out := &bytes.Buffer{}

	err := run(config.NewConfig(), log, left, right, out)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, &errors.AppError{Type: errors.ErrorTypeParsing}))
	assert.Contains(t, err.Error(), "left.json", "error should name the offending file")
	assert.Empty(t, out.String())
}

func TestRun_TruncationFollowsConfig(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("x", 200)
	left := writeFile(t, dir, "left.json", `{"a": "`+long+`"}`)
	right := writeFile(t, dir, "right.json", `{"a": "y"}`)

	cfg := config.NewConfig()
	cfg.Report.MaxValueLength = 16

	log, _ := bufferLogger()
	out := &bytes.Buffer{}

	require.NoError(t, run(cfg, log, left, right, out))
	assert.NotContains(t, out.String(), long)
	assert.Contains(t, out.String(), "...")
}

func TestSetupLogger_AppendsAcrossRuns(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Log.File = filepath.Join(t.TempDir(), "run.log")

	for i := 0; i < 2; i++ {
		log, closeLog := setupLogger(cfg, false)
		log.Info("run started")
		closeLog()
	}

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "run started"))
}

func TestSetupLogger_Disabled(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Log.Disabled = true
	cfg.Log.File = filepath.Join(t.TempDir(), "never.log")

	log, closeLog := setupLogger(cfg, false)
	log.Info("dropped")
	closeLog()

	_, err := os.Stat(cfg.Log.File)
	assert.True(t, os.IsNotExist(err), "disabled logging must not create a file")
}

func TestSetupLogger_DebugOverridesLevel(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Log.File = filepath.Join(t.TempDir(), "run.log")

	log, closeLog := setupLogger(cfg, true)
	log.Debug("phase timings")
	closeLog()

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "phase timings")
}
