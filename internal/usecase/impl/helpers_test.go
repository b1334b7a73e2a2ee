package impl

import (
	"io"
	"log/slog"

	"demoapp/config"
	"demoapp/internal/domain/service"
	"demoapp/internal/infra/auth"
	"demoapp/internal/infra/memory"

	"github.com/shopspring/decimal"
)

func decimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// testLogger discards everything; the services under test log freely.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testHasher() service.PasswordHasher {
	return auth.NewBcryptHasherWithCost(4)
}

func testTokenService() service.TokenService {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"

	tokenService, err := auth.NewJWTService(cfg)
	if err != nil {
		panic(err)
	}

	return tokenService
}

// newTestUserService wires a user service against a fresh in-memory store.
func newTestUserService() *userService {
	return NewUserService(UserServiceParams{
		UserRepo: memory.NewUserRepository(),
		Hasher:   testHasher(),
		Logger:   testLogger(),
	}).(*userService)
}
