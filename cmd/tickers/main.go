package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/ducksquaddd/discord-price-tickers/internal/application/usecase/tickers"
	"github.com/ducksquaddd/discord-price-tickers/internal/domain"
	"github.com/ducksquaddd/discord-price-tickers/internal/infrastructure/config"
	"github.com/ducksquaddd/discord-price-tickers/internal/infrastructure/discord"
	"github.com/ducksquaddd/discord-price-tickers/internal/infrastructure/logger"
	"github.com/ducksquaddd/discord-price-tickers/internal/infrastructure/pricefeed"
)

func main() {
	logger.Setup()

	_ = godotenv.Load() // .env is optional, env may come from the runtime

	configPath := flag.String("config", "configs/config.toml", "path to config.toml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *configPath).Msg("load config failed")
	}
	logger.SetLevel(cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// One bot session per tracked asset (infrastructure -> application ports).
	entries := make([]tickers.Entry, 0, len(domain.Tracked))
	for _, asset := range domain.Tracked {
		sess, err := discord.NewSession(asset.Label, cfg.Discord.Tokens[asset.Key])
		if err != nil {
			log.Fatal().Err(err).Str("client", asset.Label).Msg("create discord session failed")
		}
		entries = append(entries, tickers.Entry{
			Session: sess,
			AssetID: asset.ID,
			Label:   asset.Label,
			GuildID: cfg.Discord.GuildID,
		})
	}

	source := pricefeed.NewClient(cfg.CoinGecko.BaseURL, cfg.CoinGecko.APIKey, cfg.Timeout())

	svc := tickers.NewService(tickers.ServiceDeps{
		Entries:     entries,
		Source:      source,
		UpdateEvery: cfg.UpdateEvery(),
		ReadyPoll:   cfg.ReadyPoll(),
	})

	log.Info().
		Str("config", *configPath).
		Int("clients", len(entries)).
		Str("guild", cfg.Discord.GuildID).
		Dur("update_every", cfg.UpdateEvery()).
		Msg("price tickers started")

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("ticker service exited")
	}
	log.Info().Msg("shutdown complete")
}
