//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"mihrab/internal"
	"mihrab/internal/controllers"
	"mihrab/internal/models"
	"mihrab/internal/notify"
	"mihrab/internal/providers"
	"mihrab/internal/scheduler"
	"mihrab/internal/services"
	"mihrab/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewCacheProvider,

		models.NewJournal,
		models.NewMilestoneLedger,
		notify.NewLogNotifier,
		services.NewPrayerService,
		services.NewMilestoneService,
		services.NewJournalService,
		scheduler.NewZstdCompressor,
		scheduler.NewFileManager,
		scheduler.NewEngine,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
