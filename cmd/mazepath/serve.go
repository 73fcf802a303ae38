package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"fmt"
	"log/slog"
	"mazepath/internal/maze"
	internalssh "mazepath/internal/ssh"
	"mazepath/internal/viewer"
	"net/http"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	xssh "golang.org/x/crypto/ssh"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(a *app) *cobra.Command {
	var addr, hostKey, metricsAddr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the maze viewer over SSH",
		Long: `Start an SSH server that gives every connecting terminal its own maze viewer.
Clients must request a PTY, e.g. ssh -t -p 2222 localhost.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			if flags.Changed("host-key") {
				a.cfg.Server.HostKey = hostKey
			}
			if flags.Changed("metrics-addr") {
				a.cfg.Server.MetricsAddr = metricsAddr
			}
			return a.serve(cmd.Context())
		},
	}
	f := cmd.Flags()
	f.StringVar(&addr, "addr", "", "SSH listen address")
	f.StringVar(&hostKey, "host-key", "", "PEM host key path (generated if absent)")
	f.StringVar(&metricsAddr, "metrics-addr", "", "HTTP address for /metrics (empty disables)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	signer, err := loadOrCreateHostKey(a.cfg.Server.HostKey, a.logger)
	if err != nil {
		return err
	}
	theme, err := a.theme()
	if err != nil {
		return err
	}

	srv := internalssh.NewServer(a.cfg.Server.Addr, signer,
		func(ctx context.Context, screen tcell.Screen, logger *slog.Logger) error {
			sess, err := viewer.NewSession(screen, a.generator(resolveSeed(a.cfg.Maze.Seed)), theme, logger,
				maze.WithTileSize(a.cfg.Maze.TileSize))
			if err != nil {
				return err
			}
			return sess.Run(ctx)
		}, a.logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); !errors.Is(err, gossh.ErrServerClosed) {
			return err
		}
		return nil
	})

	var metrics *http.Server
	if a.cfg.Server.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metrics = &http.Server{Addr: a.cfg.Server.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			a.logger.Info("metrics listening", "addr", metrics.Addr)
			if err := metrics.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}

	// Stop both listeners on a signal or when either one fails.
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down", "active_sessions", srv.Active())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if metrics != nil {
			_ = metrics.Shutdown(shutdownCtx)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
		}
		return nil
	})
	return g.Wait()
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("loaded host key", "path", path)
			return signer, nil
		}
		logger.Warn("host key unreadable, generating a new one", "path", path)
	}

	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	block, err := xssh.MarshalPrivateKey(key, "mazepath server")
	if err != nil {
		return nil, fmt.Errorf("marshal host key: %w", err)
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		logger.Warn("could not persist host key", "path", path, "error", err)
	} else {
		logger.Info("generated host key", "path", path)
	}
	return signer, nil
}
