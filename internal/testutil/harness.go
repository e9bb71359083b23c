// Package testutil provides the harness used by integration tests: it
// writes declaration files to a temporary directory and assembles an App
// over them with captured log output.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/modlink/internal/app"
	"github.com/specialistvlad/modlink/internal/kinds"
	"github.com/stretchr/testify/require"
)

// LogsEnv enables dumping captured logs of every test.
const LogsEnv = "MODLINK_TEST_LOGS"

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Dir       string
	LogOutput string
	Err       error
	App       *app.App
}

// Path returns the absolute path of a file written by the harness.
func (r *HarnessResult) Path(name string) string {
	return filepath.Join(r.Dir, name)
}

// WriteFiles writes the files, keyed by relative path, under a fresh
// temporary directory and returns it.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// Assemble writes the files and assembles an App over them. A nil config
// uses defaults; its Paths are replaced by the temporary directory.
func Assemble(t *testing.T, files map[string]string, cfg *app.Config, modules ...kinds.Module) *HarnessResult {
	t.Helper()
	return AssembleWithContext(context.Background(), t, files, cfg, modules...)
}

// AssembleWithContext is Assemble with a caller-provided context.
func AssembleWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg *app.Config, modules ...kinds.Module) *HarnessResult {
	t.Helper()

	dir := WriteFiles(t, files)

	var c app.Config
	if cfg != nil {
		c = *cfg
	}
	c.Paths = []string{dir}
	if c.LogLevel == "" {
		c.LogLevel = "debug"
	}
	if c.LogFormat == "" {
		c.LogFormat = "console"
	}
	appConfig, err := app.NewConfig(c)
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	testApp := app.NewApp(logBuffer, appConfig, nil, modules...)
	t.Cleanup(func() {
		_ = testApp.Close()
		if os.Getenv(LogsEnv) == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	runErr := testApp.Assemble(ctx)

	return &HarnessResult{
		Dir:       dir,
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}
