package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/evilhangman/internal/httpserver"
	"github.com/robalobadob/evilhangman/internal/metrics"
	"github.com/robalobadob/evilhangman/internal/store"
)

func newServeCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve evil hangman rounds over a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			lex, err := loadLexicon(ctx, cfg)
			if err != nil {
				return err
			}
			st, closeStore, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			srv := httpserver.New(lex, st, metrics.New(), httpserver.Config{
				JWTSecret:     cfg.JWTSecret,
				TokenTTL:      cfg.TokenTTL,
				CookieName:    cfg.CookieName,
				SecureCookies: cfg.SecureCookies,
				ClientOrigin:  cfg.ClientOrigin,
				DailySalt:     cfg.DailySalt,
				DailyGuesses:  cfg.DailyGuesses,
			})
			if cfg.JWTSecret == "" {
				log.Warn().Msg("JWT_SECRET not set, using development secret")
			}
			return listen(ctx, ":"+cfg.Port, srv.Handler())
		},
	}
	cmd.Flags().StringVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	return cmd
}

// openStore builds the round store named by STORE_BACKEND.
func openStore(ctx context.Context, cfg *config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case "", "memory":
		return store.NewMemoryStore(), func() {}, nil
	case "redis":
		client := backend.NewClient(&backend.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
		}
		log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.SessionTTL).Msg("using redis round store")
		return store.NewRedisStore(client, store.WithTTL(cfg.SessionTTL)), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}

// listen serves h on addr until ctx is cancelled, then shuts down gracefully.
func listen(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("starting evilhangman server")
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("graceful shutdown did not complete")
			return srv.Close()
		}
		return nil
	}
}
