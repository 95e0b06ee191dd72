// internal/platform/config/help.go
package config

import (
	"fmt"
	"runtime"
)

// LongHelp es la descripción extendida del comando raíz.
const LongHelp = `ExamGuard - Suricata environment validator

Checks that Suricata is installed, configured with fast logging, not already
running, and able to capture live traffic on an active interface before an
exam session starts.

STAGES:
  1. resolve-executable  first existing executable among the candidates
  2. liveness            fails if Suricata is already running
  3. config-discovery    searches config roots for matching filenames
  4. config-check        fast log enabled + 'suricata -T' without errors
  5. interfaces          first interface that is up, running, not loopback
  6. runtime-probe       starts a capture, sends one ICMP echo and expects
                         the fast log to grow

EXIT CODES:
  0  validation passed
  1  validation failed
  2  configuration or usage error

ENVIRONMENT VARIABLES:
  Most flags can be set via environment variables with EXAMGUARD_ prefix:

  EXAMGUARD_CONFIG=/path.yaml        Configuration file
  EXAMGUARD_TIMEOUT=120              Global timeout in seconds
  EXAMGUARD_LOG_LEVEL=debug          Log level
  EXAMGUARD_EXECUTABLES=/a,/b        Executable candidates
  EXAMGUARD_CONF_DIRS=/etc/suricata  Config search roots
  EXAMGUARD_CONF_PATTERNS=*.yaml     Config filename patterns
  EXAMGUARD_PROBE_MODE=exec          Probe mode (icmp, exec)
  EXAMGUARD_PROBE_TARGET=1.1.1.1     Probe target
  EXAMGUARD_SETTLE=3s                Capture settle time
  EXAMGUARD_OUTPUT_DIR=/path         Report directory
  EXAMGUARD_UI=raw                   UI mode (auto, pretty, raw, json, none)

  Precedence: defaults < config file < environment < flags.`

// Examples ejemplos de uso mostrados en la ayuda.
const Examples = `  examguard
  examguard check --probe exec --probe-target 9.9.9.9
  examguard check --conf-dir /etc/suricata --conf-pattern 'suricata*.yaml'
  examguard check -c /etc/examguard.yaml --ui raw
  examguard interfaces
  examguard config > examguard.yaml
  examguard show reports/examguard_20260301_100000_failure.json`

// VersionString formatea la información de versión.
func VersionString(version, commit, date string) string {
	return fmt.Sprintf("ExamGuard %s\n  Commit:  %s\n  Built:   %s\n  Go:      %s\n",
		version, commit, date, runtime.Version())
}
