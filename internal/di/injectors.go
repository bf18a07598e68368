//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"clinicd/internal"
	"clinicd/internal/controllers"
	"clinicd/internal/providers"
	"clinicd/internal/records"
	"clinicd/internal/services"
	"clinicd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		records.NewRecordStore,
		services.NewRecordService,
		records.NewSnapshotter,
		records.NewScheduler,
		controllers.NewRecordController,
		controllers.NewBackupController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
