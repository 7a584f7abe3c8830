package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildCommandTree_RegistersCommands(t *testing.T) {
	root := BuildCommandTree(&mockValidateRunner{}, &mockReportWriter{}, &mockPolicyProvider{})

	for _, name := range []string{"validate", "policy", "version"} {
		sub, _, err := root.Find([]string{name})
		if err != nil || sub == root {
			t.Errorf("root has no %q command", name)
		}
	}
	if show, _, err := root.Find([]string{"policy", "show"}); err != nil || show.Name() != "show" {
		t.Error("policy has no show subcommand")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestNewApp_ValidateEndToEnd(t *testing.T) {
	resetRootFlags(t)
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "mlint.yaml", "logging:\n  level: error\n")
	good := writeFile(t, dir, "good.json", `{
		"manifestVersion": "1.2",
		"version": "1.0.0",
		"name": {"short": "Task Tracker", "full": "Task Tracker for busy people"},
		"description": {"short": "Track tasks", "full": "A tracker that keeps tasks in one place."}
	}`)
	bad := writeFile(t, dir, "bad.json", `{"manifestVersion": "0.9"}`)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	app := NewApp(strings.NewReader(""), stderr)
	code := RunCLI(t.Context(), app, []string{"--config", cfgPath, "validate", good, bad}, stdout, stderr)

	if code != 2 {
		t.Fatalf("exit code = %d, want 2\nstdout: %s\nstderr: %s", code, stdout, stderr)
	}
	if !strings.Contains(stdout.String(), bad+" [error] manifest_version.invalid") {
		t.Errorf("stdout missing finding for bad.json:\n%s", stdout)
	}
	if strings.Contains(stdout.String(), good+" [") {
		t.Errorf("good.json should have no findings:\n%s", stdout)
	}
	if !strings.Contains(stderr.String(), "validation found") {
		t.Errorf("stderr should carry the findings summary, got %q", stderr)
	}
}

func TestNewApp_PolicyShowUsesPolicyFile(t *testing.T) {
	resetRootFlags(t)
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "mlint.yaml", "logging:\n  level: error\n")
	policyPath := writeFile(t, dir, "policy.yaml", "manifest_versions: [\"devPreview\"]\n")

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	app := NewApp(strings.NewReader(""), stderr)
	code := RunCLI(t.Context(), app, []string{"--config", cfgPath, "policy", "show", "--policy", policyPath}, stdout, stderr)

	if code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr: %s", code, stderr)
	}
	if !strings.HasPrefix(stdout.String(), "# source: "+policyPath+"\n") {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stdout.String(), "devPreview") {
		t.Errorf("stdout missing overridden manifest versions:\n%s", stdout)
	}
}

func TestNewApp_MissingConfigFile(t *testing.T) {
	resetRootFlags(t)
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	stderr := new(bytes.Buffer)
	app := NewApp(strings.NewReader(""), stderr)
	code := RunCLI(t.Context(), app, []string{"--config", missing, "validate", "a.json"}, new(bytes.Buffer), stderr)

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "mlint: load config: "+missing) {
		t.Errorf("stderr = %q", stderr)
	}
}
