package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradewallet/internal/api"
	"tradewallet/internal/auth"
	"tradewallet/internal/client"
	"tradewallet/internal/config"
	"tradewallet/internal/handler"
	"tradewallet/internal/session"
	"tradewallet/internal/store"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	if err := config.Init(); err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(config.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	durable, err := store.OpenBolt(config.GetVaultDBPath())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open wallet database")
	}
	defer durable.Close()

	// No Redis address means no warm resume; the session simply starts
	// locked after every restart.
	var mirror store.KV
	if addr := config.GetRedisAddr(); addr != "" {
		mirror = store.OpenRedis(addr)
		log.Info().Str("addr", addr).Msg("session mirror enabled")
	} else {
		mirror = store.NewMemoryStore()
		log.Info().Msg("session mirror disabled, restart survival off")
	}
	defer mirror.Close()

	sessions := session.NewManager(durable, mirror, config.GetAutoLock(),
		log.With().Str("component", "session").Logger())
	defer sessions.Close()

	authn := auth.NewAuthenticator(sessions)
	trading := client.NewTradingClient(config.GetTradingAPIURL(), authn)

	walletHandler := handler.NewWalletHandler(sessions,
		log.With().Str("component", "wallet").Logger())
	tradingHandler := handler.NewTradingHandler(trading,
		log.With().Str("component", "trading").Logger())

	srv := &http.Server{
		Addr:         ":" + config.GetPort(),
		Handler:      api.SetupRouter(walletHandler, tradingHandler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", config.GetPort()).Msg("walletd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
