// @title         Wikicord API
// @version       0.1.0
// @description   Discord interaction webhook backed by Wikipedia

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"wikicord/internal/core/signature"
	"wikicord/internal/platform/config"
	"wikicord/internal/platform/logger"
	phttp "wikicord/internal/platform/net/http"

	"wikicord/internal/services/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// bring up logging early
	l := logger.Get()

	// HOST / PORT / SHUTDOWN_GRACE and the module toggles all live at the root
	cfg := config.New()

	// fail fast with a readable message rather than the module panic
	if _, err := signature.ParsePublicKey(cfg.MayString("DISCORD_PUBLIC_KEY", "")); err != nil {
		l.Fatal().Err(err).Msg("DISCORD_PUBLIC_KEY is missing or invalid")
	}

	srv := phttp.NewServer(cfg)

	opt := api.FromConfig(cfg)
	opt.Logger = l
	api.Mount(srv.Router(), opt)

	l.Info().Str("addr", srv.Addr()).Dur("shutdown_grace", srv.Grace()).Msg("wikicord api starting")

	if err := srv.Run(ctx); err != nil {
		l.Fatal().Err(err).Msg("http server stopped")
	}
}
