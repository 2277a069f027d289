package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/obelisk-mc/obelisk/internal/server"
	"github.com/obelisk-mc/obelisk/internal/server/config"
)

// configFlags are the flags that override values from the config file.
var configFlags = []string{
	"port", "motd", "max-players", "view-distance", "gamemode", "hardcore",
	"difficulty", "dimension", "level-type", "palette", "metrics-addr", "log-level",
}

func serveCmd() *cobra.Command {
	cfg := config.DefaultConfig()
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			fromFile, err := config.Load(configPath)
			if err != nil {
				return err
			}
			explicit := make(map[string]bool)
			for _, name := range configFlags {
				explicit[name] = cmd.Flags().Changed(name)
			}
			config.Merge(cfg, fromFile, explicit)

			if err := cfg.Validate(); err != nil {
				return err
			}
			level, _ := cfg.Level()
			log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			srv, err := server.New(cfg, log)
			if err != nil {
				return err
			}
			if err := srv.Start(ctx); err != nil {
				log.Error("server error", "error", err)
				return err
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "obelisk.yaml", "path to YAML config file")
	f.IntVar(&cfg.Port, "port", cfg.Port, "server port")
	f.StringVar(&cfg.MOTD, "motd", cfg.MOTD, "server description")
	f.IntVar(&cfg.MaxPlayers, "max-players", cfg.MaxPlayers, "maximum number of players")
	f.IntVar(&cfg.ViewDistance, "view-distance", cfg.ViewDistance, "chunk columns sent around spawn")
	f.StringVar(&cfg.GameMode, "gamemode", cfg.GameMode, "survival, creative, adventure or spectator")
	f.BoolVar(&cfg.Hardcore, "hardcore", cfg.Hardcore, "hardcore world")
	f.StringVar(&cfg.Difficulty, "difficulty", cfg.Difficulty, "peaceful, easy, normal or hard")
	f.StringVar(&cfg.Dimension, "dimension", cfg.Dimension, "overworld, nether or end")
	f.StringVar(&cfg.LevelType, "level-type", cfg.LevelType, "default, flat, largeBiomes, amplified or default_1_1")
	f.StringVar(&cfg.PaletteFile, "palette", cfg.PaletteFile, "PrismarineJS blocks.json for block state ids")
	f.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "admin HTTP address for /metrics and /healthz")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")

	return cmd
}
