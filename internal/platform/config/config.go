// internal/platform/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"examguard/internal/core/domain"
	"examguard/internal/platform/validator"
)

// Modos de sondeo.
const (
	ProbeModeICMP = "icmp"
	ProbeModeExec = "exec"
)

// Modos de UI.
const (
	UIAuto   = "auto"
	UIPretty = "pretty"
	UIRaw    = "raw"
	UIJSON   = "json"
	UINone   = "none"
)

// EnvPrefix prefijo de todas las variables de entorno.
const EnvPrefix = "EXAMGUARD_"

type Config struct {
	Core      CoreConfig      `yaml:"core" json:"core"`
	Tool      ToolConfig      `yaml:"tool" json:"tool"`
	Discovery DiscoveryConfig `yaml:"discovery" json:"discovery"`
	Probe     ProbeConfig     `yaml:"probe" json:"probe"`
	Output    OutputConfig    `yaml:"output" json:"output"`

	// ConfigFile ruta del archivo YAML cargado (vacío si no hubo)
	ConfigFile string `yaml:"-" json:"config_file,omitempty"`
}

type CoreConfig struct {
	TimeoutS int    `yaml:"timeout" json:"timeout"` // segundos (0 = sin timeout)
	LockFile string `yaml:"lock_file" json:"lock_file"`
	LogLevel string `yaml:"log_level" json:"log_level"`
}

type ToolConfig struct {
	// Executables rutas absolutas candidatas, en orden de preferencia
	Executables []string `yaml:"executables" json:"executables"`

	// ProcessName nombre buscado en la tabla de procesos (vacío = nombre base del ejecutable)
	ProcessName string `yaml:"process_name" json:"process_name,omitempty"`

	// TestTimeoutS límite del test de configuración, en segundos
	TestTimeoutS int `yaml:"test_timeout" json:"test_timeout"`
}

type DiscoveryConfig struct {
	Roots    []string `yaml:"roots" json:"roots"`
	Patterns []string `yaml:"patterns" json:"patterns"`
}

type ProbeConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	Target     string `yaml:"target" json:"target"`
	Privileged string `yaml:"privileged" json:"privileged"`
	PingPath   string `yaml:"ping_path" json:"ping_path"`

	Settle       time.Duration `yaml:"settle" json:"settle"`
	LogWait      time.Duration `yaml:"log_wait" json:"log_wait"`
	ProbeWait    time.Duration `yaml:"probe_wait" json:"probe_wait"`
	StopGrace    time.Duration `yaml:"stop_grace" json:"stop_grace"`
	PollInterval time.Duration `yaml:"poll_interval" json:"poll_interval"`
}

type OutputConfig struct {
	Dir      string `yaml:"dir" json:"dir"`
	UI       string `yaml:"ui" json:"ui"`
	NoReport bool   `yaml:"no_report" json:"no_report"`

	// Retry ofrece reintentar tras un fallo (solo en terminal interactiva)
	Retry bool `yaml:"retry" json:"retry"`
}

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		Core: CoreConfig{
			TimeoutS: 120,
			LockFile: "",
			LogLevel: "info",
		},
		Tool: ToolConfig{
			Executables: []string{
				"/usr/bin/suricata",
				"/usr/local/bin/suricata",
				"/sbin/suricata",
				"/usr/sbin/suricata",
				"/opt/suricata/bin/suricata",
			},
			TestTimeoutS: 60,
		},
		Discovery: DiscoveryConfig{
			Roots: []string{
				"/etc/suricata",
				"/home",
				"/usr/local/etc/suricata",
				"/opt/suricata/etc",
			},
			Patterns: []string{"suricata.yaml", "suricata.conf"},
		},
		Probe: ProbeConfig{
			Mode:         ProbeModeICMP,
			Target:       "1.1.1.1",
			Privileged:   "auto",
			PingPath:     "ping",
			Settle:       2500 * time.Millisecond,
			LogWait:      2 * time.Second,
			ProbeWait:    500 * time.Millisecond,
			StopGrace:    3 * time.Second,
			PollInterval: 100 * time.Millisecond,
		},
		Output: OutputConfig{
			Dir:   "examguard_out",
			UI:    UIAuto,
			Retry: true,
		},
	}
}

// Flags enlaza los flags de CLI con una copia de la configuración.
// Solo los flags que el usuario fija explícitamente sobrescriben archivo y ENV.
type Flags struct {
	fs     *pflag.FlagSet
	values Config
}

// BindFlags registra los flags en fs. Los defaults mostrados son los de DefaultConfig.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs, values: DefaultConfig()}
	v := &f.values

	fs.StringVarP(&v.ConfigFile, "config", "c", "", "YAML configuration file")

	// Core
	fs.IntVarP(&v.Core.TimeoutS, "timeout", "T", v.Core.TimeoutS, "Global timeout in seconds (0 = no timeout)")
	fs.StringVar(&v.Core.LockFile, "lock-file", v.Core.LockFile, "Lock file preventing concurrent runs (default: temp dir)")
	fs.StringVarP(&v.Core.LogLevel, "log-level", "l", v.Core.LogLevel, "Log level: debug, info, warn, error")

	// Tool
	fs.StringSliceVar(&v.Tool.Executables, "exe", v.Tool.Executables, "Candidate Suricata executables, in order")
	fs.StringVar(&v.Tool.ProcessName, "process-name", v.Tool.ProcessName, "Process name checked for an already running instance")
	fs.IntVar(&v.Tool.TestTimeoutS, "test-timeout", v.Tool.TestTimeoutS, "Config test timeout in seconds")

	// Discovery
	fs.StringSliceVar(&v.Discovery.Roots, "conf-dir", v.Discovery.Roots, "Directories searched for configuration files")
	fs.StringSliceVar(&v.Discovery.Patterns, "conf-pattern", v.Discovery.Patterns, "Configuration filename patterns")

	// Probe
	fs.StringVar(&v.Probe.Mode, "probe", v.Probe.Mode, "Probe mode: icmp (in-process) or exec (system ping)")
	fs.StringVar(&v.Probe.Target, "probe-target", v.Probe.Target, "Address probed while capturing")
	fs.StringVar(&v.Probe.Privileged, "privileged", v.Probe.Privileged, "Raw ICMP socket: auto, true or false")
	fs.StringVar(&v.Probe.PingPath, "ping-path", v.Probe.PingPath, "ping utility used in exec mode")
	fs.DurationVar(&v.Probe.Settle, "settle", v.Probe.Settle, "Wait after starting the capture")
	fs.DurationVar(&v.Probe.LogWait, "log-wait", v.Probe.LogWait, "Maximum wait for the log file to appear")
	fs.DurationVar(&v.Probe.ProbeWait, "probe-wait", v.Probe.ProbeWait, "Maximum wait for the log to grow after the probe")
	fs.DurationVar(&v.Probe.StopGrace, "stop-grace", v.Probe.StopGrace, "Wait between SIGTERM and SIGKILL")

	// Output
	fs.StringVarP(&v.Output.Dir, "out", "o", v.Output.Dir, "Report output directory")
	fs.StringVar(&v.Output.UI, "ui", v.Output.UI, "UI mode: auto, pretty, raw, json, none")
	fs.BoolVar(&v.Output.NoReport, "no-report", v.Output.NoReport, "Do not write the JSON report")
	fs.BoolVar(&v.Output.Retry, "retry", v.Output.Retry, "Offer to retry after a failure")

	return f
}

// flagSetters copia el valor de cada flag fijado explícitamente.
var flagSetters = map[string]func(dst, src *Config){
	"config":       func(d, s *Config) { d.ConfigFile = s.ConfigFile },
	"timeout":      func(d, s *Config) { d.Core.TimeoutS = s.Core.TimeoutS },
	"lock-file":    func(d, s *Config) { d.Core.LockFile = s.Core.LockFile },
	"log-level":    func(d, s *Config) { d.Core.LogLevel = s.Core.LogLevel },
	"exe":          func(d, s *Config) { d.Tool.Executables = s.Tool.Executables },
	"process-name": func(d, s *Config) { d.Tool.ProcessName = s.Tool.ProcessName },
	"test-timeout": func(d, s *Config) { d.Tool.TestTimeoutS = s.Tool.TestTimeoutS },
	"conf-dir":     func(d, s *Config) { d.Discovery.Roots = s.Discovery.Roots },
	"conf-pattern": func(d, s *Config) { d.Discovery.Patterns = s.Discovery.Patterns },
	"probe":        func(d, s *Config) { d.Probe.Mode = s.Probe.Mode },
	"probe-target": func(d, s *Config) { d.Probe.Target = s.Probe.Target },
	"privileged":   func(d, s *Config) { d.Probe.Privileged = s.Probe.Privileged },
	"ping-path":    func(d, s *Config) { d.Probe.PingPath = s.Probe.PingPath },
	"settle":       func(d, s *Config) { d.Probe.Settle = s.Probe.Settle },
	"log-wait":     func(d, s *Config) { d.Probe.LogWait = s.Probe.LogWait },
	"probe-wait":   func(d, s *Config) { d.Probe.ProbeWait = s.Probe.ProbeWait },
	"stop-grace":   func(d, s *Config) { d.Probe.StopGrace = s.Probe.StopGrace },
	"out":          func(d, s *Config) { d.Output.Dir = s.Output.Dir },
	"ui":           func(d, s *Config) { d.Output.UI = s.Output.UI },
	"no-report":    func(d, s *Config) { d.Output.NoReport = s.Output.NoReport },
	"retry":        func(d, s *Config) { d.Output.Retry = s.Output.Retry },
}

// Load construye la configuración: defaults -> archivo YAML -> ENV -> flags.
// Debe llamarse después de parsear el FlagSet.
func (f *Flags) Load() (Config, error) {
	cfg := DefaultConfig()

	path := getenv(EnvPrefix+"CONFIG", "")
	if f.fs.Changed("config") {
		path = f.values.ConfigFile
	}
	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return Config{}, err
		}
		cfg.ConfigFile = path
	}

	loadFromEnv(&cfg)

	// VisitAll + Changed: cobra parsea una copia fusionada del FlagSet,
	// así que Visit sobre el original no ve los flags fijados.
	f.fs.VisitAll(func(fl *pflag.Flag) {
		if !fl.Changed {
			return
		}
		if set, ok := flagSetters[fl.Name]; ok {
			set(&cfg, &f.values)
		}
	})

	normalize(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load parsea args con un FlagSet propio y carga la configuración.
func Load(args []string) (Config, error) {
	fs := pflag.NewFlagSet("examguard", pflag.ContinueOnError)
	flags := BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return flags.Load()
}

// loadFromEnv carga configuración desde variables de entorno.
// Las listas se separan por comas.
func loadFromEnv(cfg *Config) {
	if v := getenv(EnvPrefix+"TIMEOUT", ""); v != "" {
		cfg.Core.TimeoutS = parseInt(v, cfg.Core.TimeoutS)
	}
	if v := getenv(EnvPrefix+"LOCK_FILE", ""); v != "" {
		cfg.Core.LockFile = v
	}
	if v := getenv(EnvPrefix+"LOG_LEVEL", ""); v != "" {
		cfg.Core.LogLevel = v
	}

	if v := getenv(EnvPrefix+"EXECUTABLES", ""); v != "" {
		cfg.Tool.Executables = parseList(v)
	}
	if v := getenv(EnvPrefix+"PROCESS_NAME", ""); v != "" {
		cfg.Tool.ProcessName = v
	}
	if v := getenv(EnvPrefix+"TEST_TIMEOUT", ""); v != "" {
		cfg.Tool.TestTimeoutS = parseInt(v, cfg.Tool.TestTimeoutS)
	}

	if v := getenv(EnvPrefix+"CONF_DIRS", ""); v != "" {
		cfg.Discovery.Roots = parseList(v)
	}
	if v := getenv(EnvPrefix+"CONF_PATTERNS", ""); v != "" {
		cfg.Discovery.Patterns = parseList(v)
	}

	if v := getenv(EnvPrefix+"PROBE_MODE", ""); v != "" {
		cfg.Probe.Mode = v
	}
	if v := getenv(EnvPrefix+"PROBE_TARGET", ""); v != "" {
		cfg.Probe.Target = v
	}
	if v := getenv(EnvPrefix+"PROBE_PRIVILEGED", ""); v != "" {
		cfg.Probe.Privileged = v
	}
	if v := getenv(EnvPrefix+"PING_PATH", ""); v != "" {
		cfg.Probe.PingPath = v
	}
	if v := getenv(EnvPrefix+"SETTLE", ""); v != "" {
		cfg.Probe.Settle = parseDuration(v, cfg.Probe.Settle)
	}
	if v := getenv(EnvPrefix+"LOG_WAIT", ""); v != "" {
		cfg.Probe.LogWait = parseDuration(v, cfg.Probe.LogWait)
	}
	if v := getenv(EnvPrefix+"PROBE_WAIT", ""); v != "" {
		cfg.Probe.ProbeWait = parseDuration(v, cfg.Probe.ProbeWait)
	}
	if v := getenv(EnvPrefix+"STOP_GRACE", ""); v != "" {
		cfg.Probe.StopGrace = parseDuration(v, cfg.Probe.StopGrace)
	}

	if v := getenv(EnvPrefix+"OUTPUT_DIR", ""); v != "" {
		cfg.Output.Dir = v
	}
	if v := getenv(EnvPrefix+"UI", ""); v != "" {
		cfg.Output.UI = v
	}
	if v := getenv(EnvPrefix+"NO_REPORT", ""); v != "" {
		cfg.Output.NoReport = parseBool(v)
	}
	if v := getenv(EnvPrefix+"RETRY", ""); v != "" {
		cfg.Output.Retry = parseBool(v)
	}
}

func normalize(c *Config) {
	if c.Core.TimeoutS < 0 {
		c.Core.TimeoutS = 0
	}
	c.Core.LogLevel = strings.ToLower(strings.TrimSpace(c.Core.LogLevel))
	if c.Core.LogLevel == "" {
		c.Core.LogLevel = "info"
	}
	if c.Tool.TestTimeoutS <= 0 {
		c.Tool.TestTimeoutS = 60
	}
	c.Tool.ProcessName = strings.TrimSpace(c.Tool.ProcessName)

	c.Tool.Executables = cleanList(c.Tool.Executables)
	c.Discovery.Roots = cleanList(c.Discovery.Roots)
	c.Discovery.Patterns = cleanList(c.Discovery.Patterns)

	c.Probe.Mode = strings.ToLower(strings.TrimSpace(c.Probe.Mode))
	if c.Probe.Mode == "" {
		c.Probe.Mode = ProbeModeICMP
	}
	c.Probe.Target = strings.TrimSpace(c.Probe.Target)
	if c.Probe.Target == "" {
		c.Probe.Target = "1.1.1.1"
	}
	c.Probe.Privileged = strings.ToLower(strings.TrimSpace(c.Probe.Privileged))
	if c.Probe.Privileged == "" {
		c.Probe.Privileged = "auto"
	}
	if c.Probe.PingPath == "" {
		c.Probe.PingPath = "ping"
	}
	if c.Probe.Settle < 0 {
		c.Probe.Settle = 0
	}
	if c.Probe.LogWait < 0 {
		c.Probe.LogWait = 0
	}
	if c.Probe.ProbeWait < 0 {
		c.Probe.ProbeWait = 0
	}
	if c.Probe.StopGrace <= 0 {
		c.Probe.StopGrace = 3 * time.Second
	}
	if c.Probe.PollInterval <= 0 {
		c.Probe.PollInterval = 100 * time.Millisecond
	}

	if c.Output.Dir == "" {
		c.Output.Dir = "examguard_out"
	}
	c.Output.UI = strings.ToLower(strings.TrimSpace(c.Output.UI))
	if c.Output.UI == "" {
		c.Output.UI = UIAuto
	}
}

// Validate verifica la configuración normalizada. Todos los problemas se reportan juntos.
func (c Config) Validate() error {
	var errs []error

	if len(c.Tool.Executables) == 0 {
		errs = append(errs, errors.New("tool.executables: at least one candidate required"))
	}
	if bad := validator.AllAbsPaths(c.Tool.Executables); len(bad) > 0 {
		errs = append(errs, fmt.Errorf("tool.executables: paths must be absolute: %v", bad))
	}
	if c.Tool.ProcessName != "" && !validator.IsProcessName(c.Tool.ProcessName) {
		errs = append(errs, fmt.Errorf("tool.process_name: invalid name %q", c.Tool.ProcessName))
	}
	if bad := validator.AllAbsPaths(c.Discovery.Roots); len(bad) > 0 {
		errs = append(errs, fmt.Errorf("discovery.roots: paths must be absolute: %v", bad))
	}
	if len(c.Discovery.Patterns) == 0 {
		errs = append(errs, errors.New("discovery.patterns: at least one pattern required"))
	}
	for _, p := range c.Discovery.Patterns {
		if !validator.IsGlob(p) {
			errs = append(errs, fmt.Errorf("discovery.patterns: invalid pattern %q", p))
		}
	}
	if !validator.OneOf(c.Probe.Mode, ProbeModeICMP, ProbeModeExec) {
		errs = append(errs, fmt.Errorf("probe.mode: must be %s or %s, got %q", ProbeModeICMP, ProbeModeExec, c.Probe.Mode))
	}
	if !validator.IsProbeTarget(c.Probe.Target) {
		errs = append(errs, fmt.Errorf("probe.target: not an IP or hostname: %q", c.Probe.Target))
	}
	if !validator.OneOf(c.Probe.Privileged, "auto", "true", "false") {
		errs = append(errs, fmt.Errorf("probe.privileged: must be auto, true or false, got %q", c.Probe.Privileged))
	}
	if !validator.OneOf(c.Output.UI, UIAuto, UIPretty, UIRaw, UIJSON, UINone) {
		errs = append(errs, fmt.Errorf("output.ui: unknown mode %q", c.Output.UI))
	}
	if !validator.OneOf(c.Core.LogLevel, "debug", "info", "warn", "warning", "error") {
		errs = append(errs, fmt.Errorf("core.log_level: unknown level %q", c.Core.LogLevel))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, errors.Join(errs...))
}

// ToJSON serializa la configuración a JSON (útil para debugging).
func (c Config) ToJSON() (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Timeout devuelve el timeout global como duración (0 = sin timeout).
func (c Config) Timeout() time.Duration {
	if c.Core.TimeoutS <= 0 {
		return 0
	}
	return time.Duration(c.Core.TimeoutS) * time.Second
}

// TestTimeout devuelve el límite del test de configuración.
func (c Config) TestTimeout() time.Duration {
	return time.Duration(c.Tool.TestTimeoutS) * time.Second
}

// Helpers

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return d
}

func parseList(v string) []string {
	return cleanList(strings.Split(v, ","))
}

// cleanList recorta espacios y descarta entradas vacías y duplicadas, conservando el orden.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
