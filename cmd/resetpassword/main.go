// Command resetpassword sets a new password for a management account.
//
//	resetpassword -username management -password <new>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/bedbook/internal/config"
	"github.com/spec-kit/bedbook/internal/observability"
	"github.com/spec-kit/bedbook/internal/persistence"
	"github.com/spec-kit/bedbook/internal/repository"
	"github.com/spec-kit/bedbook/internal/service"
	apperrors "github.com/spec-kit/bedbook/pkg/util"
)

func main() {
	username := flag.String("username", "management", "management account to update")
	password := flag.String("password", "", "new password")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "-password is required")
		flag.Usage()
		os.Exit(2)
	}
	os.Exit(run(*username, *password))
}

func run(username, password string) int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}
	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		log.Printf("failed to init logger: %v", err)
		return 1
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Error("failed to connect postgres", zap.Error(err))
		return 1
	}
	defer pg.Close()
	if !pg.Enabled() {
		logger.Error("POSTGRES_DSN is required")
		return 1
	}

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo: repository.NewUserRepository(pg.PoolHandle()),
	})

	return report(authService.ResetPassword(ctx, username, password), username)
}

func report(err error, username string) int {
	switch {
	case err == nil:
		fmt.Printf("Password for %s reset.\n", username)
		return 0
	case errors.Is(err, apperrors.ErrUserNotFound):
		fmt.Fprintf(os.Stderr, "User %s not found.\n", username)
	case errors.Is(err, apperrors.ErrNotManagementUser):
		fmt.Fprintf(os.Stderr, "User %s is not a management user.\n", username)
	default:
		fmt.Fprintf(os.Stderr, "Reset failed: %v\n", err)
	}
	return 1
}
