package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-postmd"
)

// testEnv is an Environment backed by buffers.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(stdin string, tty bool) *testEnv {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &testEnv{
		Environment: &Environment{
			Now:        time.Now,
			Stdin:      strings.NewReader(stdin),
			Stdout:     stdout,
			Stderr:     stderr,
			StdinIsTTY: func() bool { return tty },
		},
		stdout: stdout,
		stderr: stderr,
	}
}

// mockConverter records inputs and returns canned results.
type mockConverter struct {
	mu     sync.Mutex
	inputs []postmd.Input
	result *postmd.Result
	err    error
}

func (m *mockConverter) Convert(ctx context.Context, input postmd.Input) (*postmd.Result, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &postmd.Result{HTML: []byte("<p>" + input.Markdown + "</p>")}, nil
}

// setupTestDir creates a temp directory with the given file structure.
// Files map paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
