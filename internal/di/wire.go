//go:build wireinject

package di

import (
	"github.com/google/wire"

	"virtual-file-system/internal/config"
)

//go:generate wire

// ProviderSet lists every provider of the application graph. After changing
// it run go generate ./internal/di/... to refresh wire_gen.go.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideMetricsCollector,
	ProvideTracerProvider,
	ProvideFileSystem,
	ProvideFormatter,
	ProvideOutputWriter,
	ProvideContentProvider,
	ProvideMenu,
	wire.Struct(new(App), "*"),
)

// InitializeApp builds the App from a loaded configuration.
func InitializeApp(cfg *config.Config) (*App, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
