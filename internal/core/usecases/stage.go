// internal/core/usecases/stage.go
package usecases

import (
	"context"

	"examguard/internal/core/domain"
)

// Nombres de las etapas del pipeline, en orden de ejecución.
const (
	StageResolveExecutable = "resolve-executable"
	StageLiveness          = "liveness"
	StageConfigDiscovery   = "config-discovery"
	StageConfigCheck       = "config-check"
	StageInterfaces        = "interfaces"
	StageRuntimeProbe      = "runtime-probe"
)

// StageNames retorna los nombres de todas las etapas en orden.
func StageNames() []string {
	return []string{
		StageResolveExecutable,
		StageLiveness,
		StageConfigDiscovery,
		StageConfigCheck,
		StageInterfaces,
		StageRuntimeProbe,
	}
}

// stage es una etapa del pipeline.
// run retorna nil para continuar o un Failure para abortar la ejecución;
// detail resume lo que la etapa dejó en el estado cuando pasa.
type stage struct {
	name   string
	run    func(ctx context.Context, state *domain.RunState) *domain.Failure
	detail func(state *domain.RunState) string
}
