package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

type backendCall struct {
	Method string
	Path   string
	Body   map[string]any
}

type reply struct {
	status int
	body   string
}

// fakeBackend records calls and answers with canned replies per path.
type fakeBackend struct {
	server  *httptest.Server
	mu      sync.Mutex
	calls   []backendCall
	replies map[string]reply
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{replies: map[string]reply{}}
	fb.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		var body map[string]any
		if len(bytes.TrimSpace(data)) > 0 {
			if err := json.Unmarshal(data, &body); err != nil {
				t.Errorf("decode body for %s: %v", r.URL.Path, err)
			}
		}
		fb.mu.Lock()
		fb.calls = append(fb.calls, backendCall{Method: r.Method, Path: r.URL.Path, Body: body})
		rep, ok := fb.replies[r.Method+" "+r.URL.Path]
		fb.mu.Unlock()
		if !ok {
			rep = reply{status: http.StatusOK}
		}
		w.WriteHeader(rep.status)
		_, _ = io.WriteString(w, rep.body)
	}))
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) on(method, path string, status int, body string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.replies[method+" "+path] = reply{status: status, body: body}
}

func (fb *fakeBackend) callsTo(path string) []backendCall {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	var out []backendCall
	for _, call := range fb.calls {
		if call.Path == path {
			out = append(out, call)
		}
	}
	return out
}

func (fb *fakeBackend) lastCall(t *testing.T, path string) backendCall {
	t.Helper()
	calls := fb.callsTo(path)
	if len(calls) == 0 {
		t.Fatalf("expected a call to %s", path)
	}
	return calls[len(calls)-1]
}

type cliTestEnv struct {
	backend    *fakeBackend
	configPath string
	stateDir   string
	logDir     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	for _, key := range []string{"STRMCTL_SERVER", "STRMCTL_TOKEN", "STRMCTL_JWT_SECRET", "STRMCTL_STATE_DIR"} {
		t.Setenv(key, "")
	}

	backend := newFakeBackend(t)
	env := &cliTestEnv{
		backend:    backend,
		configPath: filepath.Join(homeDir, ".config", "strmctl", "config.toml"),
		stateDir:   filepath.Join(base, "state"),
		logDir:     filepath.Join(base, "logs"),
	}
	env.writeConfig(t, "")
	return env
}

func (e *cliTestEnv) writeConfig(t *testing.T, extra string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(e.configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	content := fmt.Sprintf("[api]\nbase_url = %q\n\n[paths]\nstate_dir = %q\nlog_dir = %q\n%s",
		e.backend.server.URL, e.stateDir, e.logDir, extra)
	if err := os.WriteFile(e.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	return runCLIWithInput(t, env, "", args...)
}

func runCLIWithInput(t *testing.T, env *cliTestEnv, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if env != nil {
		flags = append(flags, "--config", env.configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func mustRunCLI(t *testing.T, env *cliTestEnv, args ...string) string {
	t.Helper()
	out, stderr, err := runCLI(t, env, args...)
	if err != nil {
		t.Fatalf("strmctl %s: %v (stderr: %s)", strings.Join(args, " "), err, stderr)
	}
	return out
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
