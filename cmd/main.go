package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/chiefbiiko/lauth/internal/api/http/handler"
	"github.com/chiefbiiko/lauth/internal/api/http/router"
	httpserver "github.com/chiefbiiko/lauth/internal/api/http/server"
	"github.com/chiefbiiko/lauth/internal/config"
	applogger "github.com/chiefbiiko/lauth/internal/logger"
	"github.com/chiefbiiko/lauth/internal/model"
	"github.com/chiefbiiko/lauth/internal/repository/postgres"
	redisrepo "github.com/chiefbiiko/lauth/internal/repository/redis"
	"github.com/chiefbiiko/lauth/internal/server"
	"github.com/chiefbiiko/lauth/internal/service"
	"github.com/chiefbiiko/lauth/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := applogger.New(cfg.LogLevel)

	users, closeStore, err := newUserStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize user store", "error", err)
	}
	defer closeStore()

	keypair, err := newKeypair(cfg)
	if err != nil {
		logger.Fatal("failed to initialize signing keypair", "error", err)
	}
	logger.Info("signing key ready", "kid", keypair.KeyID)

	codec := token.NewCodec(token.Config{
		PrivateKey:       keypair.Private,
		PublicKey:        keypair.Public,
		KeyID:            keypair.KeyID,
		OwnAudience:      cfg.Token.OwnAudience,
		ResourceAudience: cfg.Token.ResourceAudience,
		AccessTTL:        cfg.Token.AccessTTL,
		RefreshTTL:       cfg.Token.RefreshTTL,
	})

	authService, err := service.NewAuth(users, codec, cfg.Role, logger)
	if err != nil {
		logger.Fatal("failed to initialize auth service", "error", err)
	}

	authHandler := handler.NewAuth(authService, applogger.NewReporter(logger), logger)
	app := router.New(authHandler, users, cfg.HTTP.StaticDir, logger).Register()
	httpServer := httpserver.NewHTTPServer(app, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func newUserStore(ctx context.Context, cfg *config.Config) (model.UserStore, func(), error) {
	switch cfg.Store {
	case config.StorePostgres:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewUserRepository(db), func() { _ = db.Close() }, nil
	case config.StoreRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return redisrepo.NewUserRepository(client), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend: %s", cfg.Store)
	}
}

func newKeypair(cfg *config.Config) (token.Keypair, error) {
	if cfg.Token.KeySeed != "" {
		return token.KeypairFromSeed(cfg.Token.KeySeed, cfg.Token.KeyID)
	}
	return token.GenerateKeypair()
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
