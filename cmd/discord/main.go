package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/osse101/GuildCommandBot_Go/internal/command"
	"github.com/osse101/GuildCommandBot_Go/internal/config"
	"github.com/osse101/GuildCommandBot_Go/internal/discord"
	"github.com/osse101/GuildCommandBot_Go/internal/domain"
	"github.com/osse101/GuildCommandBot_Go/internal/guild"
	"github.com/osse101/GuildCommandBot_Go/internal/lifecycle"
	"github.com/osse101/GuildCommandBot_Go/internal/logger"
	"github.com/osse101/GuildCommandBot_Go/internal/registry"
	"github.com/osse101/GuildCommandBot_Go/internal/watcher"
)

func main() {
	// Load configuration (.env included)
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logger.InitLogger(cfg.Logger())

	store, err := guild.NewStore(cfg.GuildsDir)
	if err != nil {
		slog.Error("Failed to open guild storage", "dir", cfg.GuildsDir, "error", err)
		os.Exit(1)
	}

	bot, err := discord.New(discord.Config{
		Token:       cfg.BotToken,
		AppID:       cfg.AppID,
		ForceUpdate: cfg.ForceUpdate,
	})
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	if cfg.ForceUpdate {
		slog.Info("Force command update enabled via environment variable")
	}

	compiler := command.NewCompiler(domain.CommandHelp, domain.CommandReload)
	synchronizer := registry.NewSynchronizer(store, compiler, bot.Platform, lifecycle.Builtins())
	controller := lifecycle.NewController(store, synchronizer)
	bot.Controller = controller

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.HealthEnabled() {
		httpServer := discord.NewHTTPServer(cfg.HealthPort, bot, synchronizer)
		httpServer.Start()
		defer httpServer.Stop()
	}

	if cfg.Watch {
		dw, err := watcher.New(store.Root(), watcher.DefaultDebounce, store.IsGuildID, controller.Reload)
		if err != nil {
			slog.Error("Failed to create descriptor watcher", "error", err)
			os.Exit(1)
		}
		if err := dw.Start(ctx); err != nil {
			slog.Error("Failed to start descriptor watcher", "error", err)
			os.Exit(1)
		}
		defer dw.Stop()
	}

	// Run bot
	if err := bot.Run(ctx); err != nil {
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}
}
