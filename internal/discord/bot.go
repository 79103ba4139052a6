package discord

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GuildCommandBot_Go/internal/logger"
)

// Controller is the lifecycle surface the bot forwards gateway events to.
type Controller interface {
	Ready() bool
	Startup(ctx context.Context, guildIDs []string) error
	GuildJoin(ctx context.Context, guildID string) error
	GuildLeave(ctx context.Context, guildID string) error
	Help(guildID string) string
	Reload(ctx context.Context, guildID string) error
	Invoke(guildID, name string) (string, error)
}

// Bot represents the Discord bot
type Bot struct {
	Session    *discordgo.Session
	Platform   *CommandPlatform
	Controller Controller

	connected atomic.Bool
}

// Config holds the bot configuration
type Config struct {
	Token       string
	AppID       string
	ForceUpdate bool
}

// New creates a new Discord bot. Controller must be set before Start.
func New(cfg Config) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds

	return &Bot{
		Session:  s,
		Platform: NewCommandPlatform(s, cfg.AppID, cfg.ForceUpdate),
	}, nil
}

// Start registers the gateway handlers and opens the connection
func (b *Bot) Start() error {
	if b.Controller == nil {
		return fmt.Errorf("discord bot has no controller")
	}

	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.resumed)
	b.Session.AddHandler(b.disconnect)
	b.Session.AddHandler(b.guildCreate)
	b.Session.AddHandler(b.guildDelete)
	b.Session.AddHandler(b.interactionCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	slog.Info("Discord bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop stops the bot
func (b *Bot) Stop() {
	if err := b.Session.Close(); err != nil {
		slog.Error("Failed to close Discord session", "error", err)
	}
	b.connected.Store(false)
}

// Run runs the bot until a signal is received or ctx is cancelled
func (b *Bot) Run(ctx context.Context) error {
	if err := b.Start(); err != nil {
		return err
	}
	defer b.Stop()

	// Wait here until CTRL-C or other term signal is received.
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer signal.Stop(sc)

	select {
	case <-sc:
	case <-ctx.Done():
	}
	return nil
}

// Connected reports whether the gateway session is up.
func (b *Bot) Connected() bool {
	return b.connected.Load()
}

func eventContext() context.Context {
	return logger.WithRequestID(context.Background(), logger.GenerateRequestID())
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	b.connected.Store(true)

	ctx := eventContext()
	log := logger.FromContext(ctx)
	if r.User != nil {
		log.Info("Bot is ready", "user", r.User.Username, "guilds", len(r.Guilds))
		b.Platform.SetDefaultAppID(r.User.ID)
	}

	guildIDs := make([]string, 0, len(r.Guilds))
	for _, g := range r.Guilds {
		guildIDs = append(guildIDs, g.ID)
	}

	if err := b.Controller.Startup(ctx, guildIDs); err != nil {
		log.Error("Startup sync failed", "error", err)
	}
}

func (b *Bot) resumed(s *discordgo.Session, r *discordgo.Resumed) {
	b.connected.Store(true)
}

func (b *Bot) disconnect(s *discordgo.Session, d *discordgo.Disconnect) {
	b.connected.Store(false)
	slog.Warn("Discord gateway disconnected")
}

// guildCreate fires for every guild after Ready and for each new join. The
// controller ignores it until startup is done and initialization is idempotent.
func (b *Bot) guildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if g.Guild == nil || g.Unavailable {
		return
	}

	ctx := eventContext()
	if err := b.Controller.GuildJoin(ctx, g.ID); err != nil {
		logger.FromContext(ctx).Error("Failed to handle guild join", "guild_id", g.ID, "error", err)
	}
}

// guildDelete with Unavailable set is an outage, not a removal.
func (b *Bot) guildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Guild == nil {
		return
	}

	ctx := eventContext()
	log := logger.FromContext(ctx)
	if g.Unavailable {
		log.Warn("Guild became unavailable, keeping its commands", "guild_id", g.ID)
		return
	}

	if err := b.Controller.GuildLeave(ctx, g.ID); err != nil {
		log.Error("Failed to handle guild leave", "guild_id", g.ID, "error", err)
	}
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	b.handleCommand(eventContext(), s, i)
}
