package components

import (
	"storent/internal/pkg/clock"
	"storent/internal/usecase"
	"storent/internal/usecase/commands"
	"storent/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewRentalUseCase,
		commands.NewStatusUseCase,
		commands.NewPaymentUseCase,
		commands.NewAccessUseCase,
		commands.NewCatalogUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewRentalQueries,
		queries.NewStatusQueries,
		queries.NewPaymentQueries,
		queries.NewAccessQueries,
		queries.NewCatalogQueries,
		queries.NewAdminQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
