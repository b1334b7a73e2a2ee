package main

import (
	"context"
	"log/slog"
	"os"

	"demoapp/config"
	"demoapp/internal/delivery"
	"demoapp/internal/delivery/http"
	"demoapp/internal/delivery/http/middleware"
	"demoapp/internal/delivery/http/router/handler"
	"demoapp/internal/domain/entity"
	"demoapp/internal/domain/repository"
	"demoapp/internal/domain/service"
	"demoapp/internal/infra/auth"
	"demoapp/internal/infra/gateway"
	logs "demoapp/internal/infra/log"
	"demoapp/internal/infra/memory"
	"demoapp/internal/usecase/impl"

	"github.com/pkg/errors"
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
			seedCredentials,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			memory.NewUserRepository,
			memory.NewCredentialRepository,
			memory.NewPaymentRepository,
			memory.NewOAuthRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			gateway.NewMockGateway,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewAuthService,
			impl.NewOAuthService,
			impl.NewPaymentService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewOAuthHandler,
			handler.NewPaymentHandler,
			handler.NewUserHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// seedCredentials populates the credential table from configuration. The
// configured plaintexts are hashed here and never stored as-is.
func seedCredentials(
	ctx context.Context,
	cfg *config.Config,
	credRepo repository.CredentialRepository,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) error {
	if cfg.Auth == nil {
		return nil
	}

	for _, seed := range cfg.Auth.SeedUsers {
		hash, err := hasher.Hash(seed.Password)
		if err != nil {
			return errors.Wrapf(err, "failed to hash password for seed user %q", seed.Username)
		}

		err = credRepo.Save(ctx, &entity.Credential{
			Username:     seed.Username,
			PasswordHash: hash,
			Role:         entity.Role(seed.Role),
			Email:        seed.Email,
		})
		if err != nil {
			return errors.Wrapf(err, "failed to seed credential %q", seed.Username)
		}

		logger.Info("Seeded credential", slog.String("username", seed.Username), slog.String("role", seed.Role))
	}

	return nil
}

func startServer(ctx context.Context, params startServerParams) {
	for _, d := range params.Deliveries {
		go func() {
			if err := d.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
