// internal/platform/config/config_test.go
package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"examguard/internal/core/domain"
)

func TestGetenv(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		def      string
		envValue string
		expected string
	}{
		{
			name:     "env var exists",
			key:      "TEST_KEY_1",
			def:      "default",
			envValue: "custom",
			expected: "custom",
		},
		{
			name:     "env var missing - uses default",
			key:      "TEST_KEY_MISSING",
			def:      "default",
			envValue: "",
			expected: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv(tt.key, tt.envValue)
			}

			result := getenv(tt.key, tt.def)

			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"1", true},
		{"t", true},
		{"T", true},
		{"true", true},
		{"True", true},
		{"TRUE", true},
		{"y", true},
		{"Y", true},
		{"yes", true},
		{"Yes", true},
		{"YES", true},
		{"on", true},
		{"On", true},
		{"ON", true},
		{" true ", true},
		{" 1 ", true},

		{"0", false},
		{"f", false},
		{"false", false},
		{"False", false},
		{"FALSE", false},
		{"n", false},
		{"no", false},
		{"off", false},
		{"", false},
		{"random", false},
		{"garbage", false},
		{" false ", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseBool(tt.input)
			if result != tt.expected {
				t.Errorf("parseBool(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		def      int
		expected int
	}{
		{
			name:     "valid integer",
			input:    "42",
			def:      10,
			expected: 42,
		},
		{
			name:     "negative integer",
			input:    "-5",
			def:      10,
			expected: -5,
		},
		{
			name:     "zero",
			input:    "0",
			def:      10,
			expected: 0,
		},
		{
			name:     "with spaces",
			input:    "  100  ",
			def:      10,
			expected: 100,
		},
		{
			name:     "invalid - returns default",
			input:    "abc",
			def:      10,
			expected: 10,
		},
		{
			name:     "empty - returns default",
			input:    "",
			def:      10,
			expected: 10,
		},
		{
			name:     "float - returns default",
			input:    "3.14",
			def:      10,
			expected: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseInt(tt.input, tt.def)
			if result != tt.expected {
				t.Errorf("parseInt(%q, %d) = %d, expected %d", tt.input, tt.def, result, tt.expected)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	if got := parseDuration("3s", time.Second); got != 3*time.Second {
		t.Errorf("expected 3s, got %v", got)
	}
	if got := parseDuration(" 250ms ", time.Second); got != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", got)
	}
	if got := parseDuration("soon", time.Second); got != time.Second {
		t.Errorf("invalid input must return default, got %v", got)
	}
}

func TestCleanList(t *testing.T) {
	got := cleanList([]string{" /etc/suricata ", "", "/home", "/etc/suricata", "  "})
	want := []string{"/etc/suricata", "/home"}

	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := parseList("a.yaml, b.yaml,,"); len(got) != 2 || got[1] != "b.yaml" {
		t.Errorf("parseList: unexpected %v", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		check  func(t *testing.T, c Config)
	}{
		{
			name:   "negative timeout becomes 0",
			mutate: func(c *Config) { c.Core.TimeoutS = -10 },
			check: func(t *testing.T, c Config) {
				if c.Core.TimeoutS != 0 {
					t.Errorf("TimeoutS: expected 0, got %d", c.Core.TimeoutS)
				}
			},
		},
		{
			name:   "empty output dir gets default",
			mutate: func(c *Config) { c.Output.Dir = "" },
			check: func(t *testing.T, c Config) {
				if c.Output.Dir != "examguard_out" {
					t.Errorf("OutputDir: expected %q, got %q", "examguard_out", c.Output.Dir)
				}
			},
		},
		{
			name:   "probe mode lowercased",
			mutate: func(c *Config) { c.Probe.Mode = " EXEC " },
			check: func(t *testing.T, c Config) {
				if c.Probe.Mode != ProbeModeExec {
					t.Errorf("Probe.Mode: expected %q, got %q", ProbeModeExec, c.Probe.Mode)
				}
			},
		},
		{
			name:   "non-positive stop grace restored",
			mutate: func(c *Config) { c.Probe.StopGrace = 0 },
			check: func(t *testing.T, c Config) {
				if c.Probe.StopGrace != 3*time.Second {
					t.Errorf("StopGrace: expected 3s, got %v", c.Probe.StopGrace)
				}
			},
		},
		{
			name:   "negative waits clamped",
			mutate: func(c *Config) { c.Probe.Settle = -time.Second; c.Probe.ProbeWait = -time.Second },
			check: func(t *testing.T, c Config) {
				if c.Probe.Settle != 0 || c.Probe.ProbeWait != 0 {
					t.Errorf("expected clamped waits, got settle=%v probe=%v", c.Probe.Settle, c.Probe.ProbeWait)
				}
			},
		},
		{
			name:   "candidate lists cleaned",
			mutate: func(c *Config) { c.Tool.Executables = []string{" /usr/bin/suricata", "", "/usr/bin/suricata"} },
			check: func(t *testing.T, c Config) {
				if len(c.Tool.Executables) != 1 || c.Tool.Executables[0] != "/usr/bin/suricata" {
					t.Errorf("Executables: unexpected %v", c.Tool.Executables)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			normalize(&cfg)
			tt.check(t, cfg)
		})
	}
}

func TestConfig_Timeout(t *testing.T) {
	tests := []struct {
		name     string
		timeoutS int
		expected string
	}{
		{"30 seconds", 30, "30s"},
		{"zero timeout", 0, "0s"},
		{"negative timeout", -5, "0s"},
		{"large timeout", 3600, "1h0m0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Core: CoreConfig{TimeoutS: tt.timeoutS}}
			if got := cfg.Timeout().String(); got != tt.expected {
				t.Errorf("Timeout(): expected %s, got %s", tt.expected, got)
			}
		})
	}
}

var envVars = []string{
	"CONFIG", "TIMEOUT", "LOCK_FILE", "LOG_LEVEL", "EXECUTABLES", "PROCESS_NAME",
	"TEST_TIMEOUT", "CONF_DIRS", "CONF_PATTERNS", "PROBE_MODE", "PROBE_TARGET",
	"PROBE_PRIVILEGED", "PING_PATH", "SETTLE", "LOG_WAIT", "PROBE_WAIT",
	"STOP_GRACE", "OUTPUT_DIR", "UI", "NO_REPORT", "RETRY",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range envVars {
		t.Setenv(EnvPrefix+name, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Core.TimeoutS != 120 {
		t.Errorf("TimeoutS: expected 120, got %d", cfg.Core.TimeoutS)
	}
	if len(cfg.Tool.Executables) != 5 || cfg.Tool.Executables[0] != "/usr/bin/suricata" {
		t.Errorf("Executables: unexpected %v", cfg.Tool.Executables)
	}
	if strings.Join(cfg.Discovery.Patterns, ",") != "suricata.yaml,suricata.conf" {
		t.Errorf("Patterns: unexpected %v", cfg.Discovery.Patterns)
	}
	if cfg.Probe.Mode != ProbeModeICMP || cfg.Probe.Target != "1.1.1.1" {
		t.Errorf("Probe: unexpected mode=%q target=%q", cfg.Probe.Mode, cfg.Probe.Target)
	}
	if cfg.Probe.Settle != 2500*time.Millisecond || cfg.Probe.ProbeWait != 500*time.Millisecond {
		t.Errorf("Probe waits: unexpected settle=%v probe=%v", cfg.Probe.Settle, cfg.Probe.ProbeWait)
	}
	if cfg.Output.Dir != "examguard_out" || cfg.Output.UI != UIAuto {
		t.Errorf("Output: unexpected %+v", cfg.Output)
	}
	if cfg.ConfigFile != "" {
		t.Errorf("ConfigFile: expected empty, got %q", cfg.ConfigFile)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("EXAMGUARD_TIMEOUT", "60")
	t.Setenv("EXAMGUARD_EXECUTABLES", "/opt/ids/suricata, /usr/bin/suricata")
	t.Setenv("EXAMGUARD_CONF_DIRS", "/srv/ids")
	t.Setenv("EXAMGUARD_PROBE_MODE", "exec")
	t.Setenv("EXAMGUARD_SETTLE", "4s")
	t.Setenv("EXAMGUARD_OUTPUT_DIR", "custom_out")
	t.Setenv("EXAMGUARD_NO_REPORT", "yes")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Core.TimeoutS != 60 {
		t.Errorf("TimeoutS: expected 60, got %d", cfg.Core.TimeoutS)
	}
	if strings.Join(cfg.Tool.Executables, ",") != "/opt/ids/suricata,/usr/bin/suricata" {
		t.Errorf("Executables: unexpected %v", cfg.Tool.Executables)
	}
	if strings.Join(cfg.Discovery.Roots, ",") != "/srv/ids" {
		t.Errorf("Roots: unexpected %v", cfg.Discovery.Roots)
	}
	if cfg.Probe.Mode != ProbeModeExec {
		t.Errorf("Probe.Mode: expected exec, got %q", cfg.Probe.Mode)
	}
	if cfg.Probe.Settle != 4*time.Second {
		t.Errorf("Settle: expected 4s, got %v", cfg.Probe.Settle)
	}
	if cfg.Output.Dir != "custom_out" || !cfg.Output.NoReport {
		t.Errorf("Output: unexpected %+v", cfg.Output)
	}
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "examguard.yaml")
	content := `core:
  timeout: 45
probe:
  target: 9.9.9.9
  settle: 1s
  mode: exec
discovery:
  roots: [/srv/file]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("EXAMGUARD_PROBE_TARGET", "8.8.8.8")
	t.Setenv("EXAMGUARD_SETTLE", "2s")

	cfg, err := Load([]string{"--config", path, "--settle", "3s", "--conf-dir", "/srv/flag"})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ConfigFile != path {
		t.Errorf("ConfigFile: expected %q, got %q", path, cfg.ConfigFile)
	}
	// solo en archivo
	if cfg.Core.TimeoutS != 45 || cfg.Probe.Mode != ProbeModeExec {
		t.Errorf("file values lost: timeout=%d mode=%q", cfg.Core.TimeoutS, cfg.Probe.Mode)
	}
	// ENV sobre archivo
	if cfg.Probe.Target != "8.8.8.8" {
		t.Errorf("Target: expected env value 8.8.8.8, got %q", cfg.Probe.Target)
	}
	// flags sobre ENV y archivo
	if cfg.Probe.Settle != 3*time.Second {
		t.Errorf("Settle: expected flag value 3s, got %v", cfg.Probe.Settle)
	}
	if strings.Join(cfg.Discovery.Roots, ",") != "/srv/flag" {
		t.Errorf("Roots: expected flag value, got %v", cfg.Discovery.Roots)
	}
	// default intacto
	if cfg.Probe.ProbeWait != 500*time.Millisecond {
		t.Errorf("ProbeWait: expected default, got %v", cfg.Probe.ProbeWait)
	}
}

func TestLoad_ConfigFromEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "examguard.yaml")
	if err := os.WriteFile(path, []byte("output:\n  ui: raw\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("EXAMGUARD_CONFIG", path)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Output.UI != UIRaw {
		t.Errorf("UI: expected raw, got %q", cfg.Output.UI)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	if err := LoadFile(filepath.Join(dir, "missing.yaml"), &cfg); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}

	unknown := filepath.Join(dir, "unknown.yaml")
	if err := os.WriteFile(unknown, []byte("probe:\n  colour: blue\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := LoadFile(unknown, &cfg); err == nil {
		t.Error("expected error for unknown field")
	}

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := LoadFile(empty, &cfg); err != nil {
		t.Errorf("empty file must be accepted, got %v", err)
	}
}

func TestLoad_InvalidFlagValues(t *testing.T) {
	clearEnv(t)

	_, err := Load([]string{"--probe", "tcp", "--exe", "suricata", "--conf-pattern", "[bad", "--probe-target", "http://x"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	for _, want := range []string{"probe.mode", "tool.executables", "discovery.patterns", "probe.target"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err.Error(), want)
		}
	}
}

func TestLoad_UnknownFlag(t *testing.T) {
	clearEnv(t)
	if _, err := Load([]string{"--target", "example.com"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, DefaultConfig()); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"executables:", "settle: 2.5s", "mode: icmp"} {
		if !strings.Contains(out, want) {
			t.Errorf("encoded config missing %q:\n%s", want, out)
		}
	}

	path := filepath.Join(t.TempDir(), "dump.yaml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := Config{}
	if err := LoadFile(path, &cfg); err != nil {
		t.Fatalf("dumped config must load back: %v", err)
	}
	if cfg.Probe.Settle != 2500*time.Millisecond {
		t.Errorf("Settle: expected 2.5s, got %v", cfg.Probe.Settle)
	}
}
