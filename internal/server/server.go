package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/obelisk-mc/obelisk/internal/server/config"
	"github.com/obelisk-mc/obelisk/internal/server/conn"
	"github.com/obelisk-mc/obelisk/internal/server/metrics"
	"github.com/obelisk-mc/obelisk/internal/server/player"
	"github.com/obelisk-mc/obelisk/internal/server/world"
	"github.com/obelisk-mc/obelisk/internal/server/world/gen"
	"github.com/obelisk-mc/obelisk/pkg/gamedata"
)

const shutdownTimeout = 5 * time.Second

// Server accepts game connections and serves the admin HTTP endpoints.
type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	worlds  *world.Registry
	players *player.Manager
	metrics *metrics.Metrics
}

// New creates a Server with a single flat world holding the spawn point.
func New(cfg *config.Config, log *slog.Logger) (*Server, error) {
	meta, err := cfg.WorldMetadata()
	if err != nil {
		return nil, err
	}

	states := gen.DefaultBlockStates
	if cfg.PaletteFile != "" {
		palette, err := gamedata.LoadPaletteFile(cfg.PaletteFile)
		if err != nil {
			return nil, err
		}
		if states, err = gen.ResolveBlockStates(palette); err != nil {
			return nil, fmt.Errorf("palette %s: %w", cfg.PaletteFile, err)
		}
		log.Info("loaded block palette",
			"path", cfg.PaletteFile,
			"blocks", palette.Len(),
			"bitsPerEntry", palette.BitsPerEntry(),
		)
	}

	worlds := world.NewRegistry()
	id := worlds.Add(world.NewWorld(meta, gen.NewFlatGenerator(states)))
	worlds.SetSpawn(world.Location{X: cfg.Spawn.X, Y: cfg.Spawn.Y, Z: cfg.Spawn.Z, World: id})

	return &Server{
		cfg:     cfg,
		log:     log,
		worlds:  worlds,
		players: player.NewManager(cfg.MaxPlayers),
		metrics: metrics.New(),
	}, nil
}

// Start listens on the configured port and blocks until ctx is cancelled
// or a listener fails.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	lc := net.ListenConfig{}

	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts game connections on ln, and runs the admin server when
// MetricsAddr is set. It closes ln before returning.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.log.Info("server started",
		"addr", ln.Addr().String(),
		"motd", s.cfg.MOTD,
		"maxPlayers", s.cfg.MaxPlayers,
		"levelType", s.cfg.LevelType,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.acceptLoop(ctx, ln) })
	if s.cfg.MetricsAddr != "" {
		g.Go(func() error { return s.serveAdmin(ctx) })
	}
	return g.Wait()
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	// Close listener when context is cancelled.
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	// Connections end with the loop, whether ctx was cancelled or the
	// listener failed.
	connCtx, cancelConns := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancelConns()
		wg.Wait()
	}()

	for {
		c, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.log.Info("server shutting down")
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return fmt.Errorf("accept: %w", err)
			}
			s.log.Error("accept connection", "error", err)
			continue
		}

		connection := conn.NewConnection(c, s.cfg, s.log, s.players, s.worlds, s.metrics)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = connection.Serve(connCtx)
		}()
	}
}

func (s *Server) serveAdmin(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.MetricsAddr,
		Handler:           metrics.NewRouter(s.metrics, s.players),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("admin server started", "addr", s.cfg.MetricsAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("admin server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Players returns the player registry.
func (s *Server) Players() *player.Manager { return s.players }

// Worlds returns the world registry.
func (s *Server) Worlds() *world.Registry { return s.worlds }
