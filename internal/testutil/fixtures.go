// internal/testutil/fixtures.go
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// Fixture data para tests de configuración de Suricata.

// FixtureConfigEnabled retorna un config con fast log habilitado.
func FixtureConfigEnabled(logDir, filename string) string {
	return fmt.Sprintf(`%%YAML 1.1
---
default-log-dir: %s

outputs:
  - fast:
      enabled: yes
      filename: %s
      append: yes
  - eve-log:
      enabled: no
`, logDir, filename)
}

// FixtureConfigDisabled config con el fast log deshabilitado.
const FixtureConfigDisabled = `default-log-dir: /var/log/suricata/
outputs:
  - fast:
      enabled: no
      filename: fast.log
`

// FixtureStderrClean salida de `suricata -T` sin errores.
const FixtureStderrClean = `i: suricata: This is Suricata version 7.0.3 RELEASE running in SYSTEM mode
i: suricata: Configuration provided was successfully loaded. Exiting.
`

// FixtureStderrErrors salida de `suricata -T` con dos errores.
const FixtureStderrErrors = `i: suricata: This is Suricata version 7.0.3 RELEASE running in SYSTEM mode
E: detect-parse: unknown rule keyword 'foo'.
W: detect: 1 rule files specified, but no rules were loaded!
E: suricata: Loading signatures failed.
`

// FixtureInterfaceNames nombres de interfaces de prueba.
var FixtureInterfaceNames = []string{"lo", "eth0", "wlan0"}

// WriteFile crea dir/name con el contenido dado y retorna la ruta absoluta.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteExecutable crea un script /bin/sh ejecutable en dir/name.
func WriteExecutable(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := WriteFile(t, dir, name, "#!/bin/sh\n"+body+"\n")
	if err := os.Chmod(path, 0o755); err != nil {
		t.Fatalf("chmod %s: %v", path, err)
	}
	return path
}
