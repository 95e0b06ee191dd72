// internal/platform/validator/validator.go
package validator

import (
	"net"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var hostnameRegex = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?$`)

var processNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._+\-]+$`)

// Host validators

// IsHostname verifica si un string es un nombre de host válido (no una IP).
func IsHostname(host string) bool {
	if len(host) == 0 || len(host) > 253 {
		return false
	}
	if !hostnameRegex.MatchString(host) {
		return false
	}
	return net.ParseIP(host) == nil
}

// IsIP verifica si un string es una dirección IP válida (v4 o v6).
func IsIP(ip string) bool {
	return net.ParseIP(ip) != nil
}

// IsProbeTarget acepta una IP o un nombre de host resoluble.
func IsProbeTarget(target string) bool {
	target = strings.TrimSpace(target)
	return IsIP(target) || IsHostname(target)
}

// Path validators

// IsAbsPath verifica que la ruta sea absoluta y no esté vacía.
func IsAbsPath(path string) bool {
	return strings.TrimSpace(path) != "" && filepath.IsAbs(path)
}

// AllAbsPaths retorna las rutas que no son absolutas.
func AllAbsPaths(paths []string) (invalid []string) {
	for _, p := range paths {
		if !IsAbsPath(p) {
			invalid = append(invalid, p)
		}
	}
	return invalid
}

// IsGlob verifica que un patrón de nombre de archivo sea válido y no contenga separadores.
func IsGlob(pattern string) bool {
	if pattern == "" || strings.ContainsRune(pattern, '/') {
		return false
	}
	return doublestar.ValidatePattern(pattern)
}

// IsProcessName verifica que un nombre de proceso sea un nombre base simple.
func IsProcessName(name string) bool {
	return len(name) <= 255 && processNameRegex.MatchString(name)
}

// Generic validators

// IsEmpty verifica si un string está vacío o solo contiene espacios.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// OneOf verifica que v sea uno de los valores permitidos.
func OneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
