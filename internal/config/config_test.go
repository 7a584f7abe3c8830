package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName+".yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Options{SearchPaths: []string{t.TempDir()}})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load() = %+v, want %+v", *cfg, *Default())
	}
}

func TestLoad_SearchPathFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
policy:
  file: team-policy.yaml
concurrency:
  workers: 8
logging:
  level: DEBUG
  format: json
`)

	cfg, err := Load(Options{SearchPaths: []string{dir}})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	want := Config{
		Policy:      PolicyConfig{File: "team-policy.yaml"},
		Concurrency: ConcurrencyConfig{Workers: 8},
		Logging:     LoggingConfig{Level: "debug", Format: "json"},
	}
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("concurrency:\n  workers: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(Options{File: path})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Concurrency.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Concurrency.Workers)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(Options{File: filepath.Join(t.TempDir(), "absent.yaml")})
	if err == nil {
		t.Fatal("Load() returned nil error for a missing explicit file")
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "concurrency:\n  workers: 8\n")
	t.Setenv("MLINT_CONCURRENCY_WORKERS", "3")
	t.Setenv("MLINT_POLICY_FILE", "/etc/mlint/policy.yaml")

	cfg, err := Load(Options{SearchPaths: []string{dir}})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Concurrency.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Concurrency.Workers)
	}
	if cfg.Policy.File != "/etc/mlint/policy.yaml" {
		t.Errorf("Policy.File = %q, want /etc/mlint/policy.yaml", cfg.Policy.File)
	}
}

func TestLoad_InvalidFormat(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "logging:\n  format: xml\n")

	_, err := Load(Options{SearchPaths: []string{dir}})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "concurrency: [\n")

	if _, err := Load(Options{SearchPaths: []string{dir}}); err == nil {
		t.Error("Load() returned nil error for malformed YAML")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    Config
		wantErr bool
	}{
		{
			name: "workers below one clamp to one",
			cfg:  Config{Concurrency: ConcurrencyConfig{Workers: 0}, Logging: LoggingConfig{Level: "info", Format: "json"}},
			want: Config{Concurrency: ConcurrencyConfig{Workers: 1}, Logging: LoggingConfig{Level: "info", Format: "json"}},
		},
		{
			name: "empty logging fields take defaults",
			cfg:  Config{Concurrency: ConcurrencyConfig{Workers: 2}},
			want: Config{Concurrency: ConcurrencyConfig{Workers: 2}, Logging: LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat}},
		},
		{
			name: "format is case-insensitive",
			cfg:  Config{Concurrency: ConcurrencyConfig{Workers: 2}, Logging: LoggingConfig{Level: "Warn", Format: " JSON "}},
			want: Config{Concurrency: ConcurrencyConfig{Workers: 2}, Logging: LoggingConfig{Level: "warn", Format: "json"}},
		},
		{
			name:    "unknown format",
			cfg:     Config{Concurrency: ConcurrencyConfig{Workers: 2}, Logging: LoggingConfig{Format: "xml"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() returned error: %v", err)
			}
			if tt.cfg != tt.want {
				t.Errorf("Validate() left %+v, want %+v", tt.cfg, tt.want)
			}
		})
	}
}
