//go:build wireinject
// +build wireinject

package di

import (
	"blueghost/internal"
	"blueghost/internal/controllers"
	"blueghost/internal/llm"
	"blueghost/internal/providers"
	"blueghost/internal/services"
	"blueghost/internal/storage"
	"blueghost/internal/structures"
	"blueghost/internal/views"

	wire "github.com/google/wire"
)

var storeSet = wire.NewSet(
	storage.NewCompressor,
	storage.NewFileManager,
	wire.Bind(new(services.Persister), new(*storage.FileManager)),
	services.NewStoryStore,
	wire.Bind(new(services.StoryStoreInterface), new(*services.StoryStore)),
	wire.Bind(new(providers.StoryCounter), new(*services.StoryStore)),
)

var serviceSet = wire.NewSet(
	llm.NewClient,
	services.NewGenerationService,
	wire.Bind(new(services.GenerationServiceInterface), new(*services.GenerationService)),
	services.NewAuthService,
	wire.Bind(new(services.AuthServiceInterface), new(*services.AuthService)),
	wire.Bind(new(providers.SessionVerifier), new(*services.AuthService)),
	services.NewCharacterService,
	wire.Bind(new(services.CharacterServiceInterface), new(*services.CharacterService)),
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storeSet,
		serviceSet,
		views.NewRenderer,

		controllers.NewApiController,
		controllers.NewPageController,
		controllers.NewAuthController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
