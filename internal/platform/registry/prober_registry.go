// internal/platform/registry/prober_registry.go
package registry

import (
	"fmt"
	"sort"
	"sync"

	"examguard/internal/core/ports"
	"examguard/internal/platform/config"
	"examguard/internal/platform/logx"
)

// ProberRegistry gestiona el registro y construcción de probers por modo.
// Implementa el patrón Registry + Factory para desacoplar la creación
// del prober del código de aplicación.
type ProberRegistry struct {
	mu        sync.RWMutex
	factories map[string]ProberFactory
	info      map[string]string
	logger    logx.Logger
}

// ProberFactory crea un prober a partir de la configuración de sondeo.
type ProberFactory func(cfg config.ProbeConfig, logger logx.Logger) (ports.Prober, error)

// globalRegistry es la instancia global del registry.
var globalRegistry *ProberRegistry
var once sync.Once

// Global retorna la instancia global del registry.
func Global() *ProberRegistry {
	once.Do(func() {
		globalRegistry = NewProberRegistry(logx.NewSilent())
	})
	return globalRegistry
}

// NewProberRegistry crea un registry vacío.
func NewProberRegistry(logger logx.Logger) *ProberRegistry {
	return &ProberRegistry{
		factories: make(map[string]ProberFactory),
		info:      make(map[string]string),
		logger:    logger.With("component", "prober-registry"),
	}
}

// Register registra la factory de un modo con su descripción.
// Típicamente llamado desde init() del package del prober.
func (r *ProberRegistry) Register(mode string, factory ProberFactory, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if mode == "" {
		return fmt.Errorf("probe mode cannot be empty")
	}

	if factory == nil {
		return fmt.Errorf("factory cannot be nil for probe mode %s", mode)
	}

	if _, exists := r.factories[mode]; exists {
		return fmt.Errorf("probe mode %s is already registered", mode)
	}

	r.factories[mode] = factory
	r.info[mode] = description
	r.logger.Debug("prober registered", "mode", mode)

	return nil
}

// Build construye el prober del modo configurado.
func (r *ProberRegistry) Build(cfg config.ProbeConfig, logger logx.Logger) (ports.Prober, error) {
	r.mu.RLock()
	factory, exists := r.factories[cfg.Mode]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("probe mode %q not registered (available: %v)", cfg.Mode, r.List())
	}
	if logger == nil {
		logger = r.logger
	}

	prober, err := factory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build prober %s: %w", cfg.Mode, err)
	}
	return prober, nil
}

// List retorna los modos registrados ordenados.
func (r *ProberRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	modes := make([]string, 0, len(r.factories))
	for mode := range r.factories {
		modes = append(modes, mode)
	}
	sort.Strings(modes)
	return modes
}

// Description retorna la descripción de un modo.
func (r *ProberRegistry) Description(mode string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.info[mode]
	return d, ok
}

// IsRegistered verifica si un modo está registrado.
func (r *ProberRegistry) IsRegistered(mode string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[mode]
	return exists
}

// Clear elimina todos los registros (útil para testing).
func (r *ProberRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories = make(map[string]ProberFactory)
	r.info = make(map[string]string)
}
