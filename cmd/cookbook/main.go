package main

import (
	"context"
	"log/slog"
	"os"

	"cookbook/config"
	"cookbook/internal/delivery"
	"cookbook/internal/delivery/api"
	"cookbook/internal/delivery/api/middleware"
	"cookbook/internal/delivery/api/router/handler"
	"cookbook/internal/domain/service"
	"cookbook/internal/infra/auth"
	"cookbook/internal/infra/auth/google"
	logs "cookbook/internal/infra/log"
	"cookbook/internal/infra/metrics"
	"cookbook/internal/infra/persistence/mongodb"
	"cookbook/internal/infra/session"
	"cookbook/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		mongodb.New,
		session.NewStore,
		metrics.NewRegistry,
		fx.Annotate(
			metrics.NewCollector,
			fx.As(new(service.AuthMetrics)),
		),
		fx.Annotate(
			metrics.Handler,
			fx.ResultTags(`name:"metrics"`),
		),
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			mongodb.NewUserRepository,
			mongodb.NewRecipeRepository,
			mongodb.NewCategoryRepository,
			mongodb.NewReviewRepository,
			mongodb.NewContactRepository,
			mongodb.NewProductRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			google.NewProvider,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewDirectoryService,
			impl.NewSessionService,
			impl.NewAuthService,
			impl.NewRecipeService,
			impl.NewCategoryService,
			impl.NewReviewService,
			impl.NewContactService,
			impl.NewProductService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewSessionCookie,
			middleware.NewAuthMiddleware,
			middleware.NewSessionMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewRecipeHandler,
			handler.NewCategoryHandler,
			handler.NewReviewHandler,
			handler.NewContactHandler,
			handler.NewProductHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
