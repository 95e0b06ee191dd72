// internal/core/ports/inspector.go
package ports

import (
	"context"
	"time"

	"examguard/internal/core/domain"
)

// Inspector es el port hacia la herramienta de inspección de red externa.
type Inspector interface {
	// TestConfig ejecuta la herramienta en modo de prueba de configuración
	// (sin captura) y retorna el stderr capturado.
	TestConfig(ctx context.Context, executable, configPath string) (stderr string, err error)

	// StartCapture lanza la captura en vivo sobre una interfaz.
	// El Capture retornado debe detenerse siempre con Stop.
	StartCapture(ctx context.Context, executable, configPath, iface string) (Capture, error)
}

// Capture es un proceso de captura en ejecución.
type Capture interface {
	// Pid identifica el proceso lanzado
	Pid() int

	// Exited indica si el proceso ya terminó por su cuenta
	Exited() bool

	// Stderr retorna la cola del stderr capturado, para diagnóstico
	Stderr() string

	// Stop termina el proceso (SIGTERM y luego SIGKILL tras grace) y espera su salida.
	// Es idempotente.
	Stop(grace time.Duration) error
}

// ConfigGrammar interpreta los archivos de configuración de la herramienta.
type ConfigGrammar interface {
	// ScanFile extrae el directorio de logs y la configuración del fast log
	ScanFile(path string) (domain.ConfigScan, error)

	// CountErrors cuenta las líneas de error en la salida de TestConfig
	CountErrors(output string) int
}
