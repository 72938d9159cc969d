// Command wikicord-commands registers the slash command catalogue with Discord
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wikicord/internal/adapters/discord"
	"wikicord/internal/modkit"
	"wikicord/internal/platform/config"
	"wikicord/internal/platform/logger"

	intmod "wikicord/internal/services/api/interactions/module"
)

func main() {
	var (
		fGuild   = flag.String("guild", "", "register to a single guild instead of globally")
		fDry     = flag.Bool("dry-run", false, "print the command names without calling Discord")
		fTimeout = flag.Duration("timeout", 30*time.Second, "overall registration timeout")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *fTimeout)
	defer cancel()

	l := logger.Get()
	root := config.New()
	dc := root.Prefix("DISCORD_")

	// the catalogue is built the same way the webhook builds it, so both sides agree
	opts := intmod.FromConfig(root)
	schemas := intmod.Commands(intmod.NewSource(modkit.Deps{Log: l, Cfg: root}, opts), opts).Schemas()

	if *fDry {
		for _, s := range schemas {
			l.Info().Str("name", s.Name).Int("options", len(s.Options)).Msg("command")
		}
		return
	}

	dc.Require("APPLICATION_ID", "BOT_TOKEN")
	guild := *fGuild
	if guild == "" {
		guild = dc.MayString("GUILD_ID", "")
	}

	client := discord.NewClient(discord.Options{
		BaseURL:       dc.MayURL("API_URL", discord.DefaultBaseURL),
		ApplicationID: dc.MustString("APPLICATION_ID"),
		BotToken:      dc.MustString("BOT_TOKEN"),
		GuildID:       guild,
		UserAgent:     opts.UserAgent,
	}, nil)

	reg, err := client.RegisterCommands(ctx, schemas)
	if err != nil {
		l.Fatal().Err(err).Str("path", client.CommandsPath()).Msg("command registration failed")
	}
	for _, r := range reg {
		l.Info().Str("id", r.ID).Str("name", r.Name).Str("version", r.Version).Msg("registered")
	}
	l.Info().Int("count", len(reg)).Str("guild", guild).Msg("commands registered")
}
