//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build; it
// exists only so `wire` has a target to regenerate wire_gen.go from.

package injector

import (
	"github.com/google/wire"

	"github.com/kestrelecs/kestrel/internal/core/config"
	"github.com/kestrelecs/kestrel/internal/core/observability/log"
	"github.com/kestrelecs/kestrel/internal/core/runtime"
	"github.com/kestrelecs/kestrel/internal/core/scheduler"
	"github.com/kestrelecs/kestrel/internal/core/loop"
)

func ProvideLogger() *log.Logger {
	wire.Build(log.Provide)
	return log.New(log.LevelInfo)
}

func ProvideConfig() config.Config {
	wire.Build(config.Default)
	return config.Default()
}

func ProvideRuntime(host loop.HostEvents, renderSync *scheduler.Gate) *runtime.Runtime {
	wire.Build(ProvideConfig, ProvideLogger, runtime.New)
	return nil
}
