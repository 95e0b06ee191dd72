// internal/core/domain/config_scan.go
package domain

// ConfigScan es lo que el escaneo gramatical extrae de un archivo de configuración.
type ConfigScan struct {
	// SectionFound indica si apareció el sub-bloque del fast log
	SectionFound bool `json:"section_found"`

	// FastLogEnabled solo es true si el bloque estaba habilitado y nombraba un archivo
	FastLogEnabled bool `json:"fast_log_enabled"`

	Target LogTarget `json:"target"`
}
