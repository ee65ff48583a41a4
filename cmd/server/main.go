// cube-combine-server serves the sandbox over SSH. Every connection gets its
// own world on its own PTY. Build:
//
//	go build -o cube-combine-server ./cmd/server
//
// Usage:
//
//	./cube-combine-server [--port 2222] [--host-key server_host_key] [-c config.yaml]
//
// Connect:
//
//	ssh -t -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cube-combine/internal/config"
	"cube-combine/internal/logging"
	"cube-combine/internal/scene"

	gossh "github.com/gliderlabs/ssh"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	xssh "golang.org/x/crypto/ssh"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := config.Flags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	cfg, err := config.Load("", fs)
	if err != nil {
		return err
	}
	logger, closer, err := logging.Setup(cfg.Log.Level, cfg.Log.Dir, "cube-combine-server", os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	sc, err := scene.Load(cfg.Scene.Path)
	if err != nil {
		return err
	}
	signer, err := loadOrCreateHostKey(cfg.Server.HostKey, logger)
	if err != nil {
		return err
	}

	h := newHub(cfg, sc, logger)
	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: h.handleSession,
		// The sandbox only needs a terminal; any PTY request is accepted.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No authentication: anyone who can reach the port may play.
		HostSigners: []gossh.Signer{signer},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info().Msg("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("shutdown")
		}
	}()

	logger.Info().Int("port", cfg.Server.Port).Int("max_sessions", cfg.Server.MaxSessions).Msg("listening")
	logger.Info().Msgf("Connect with:  ssh -t -p %d -o StrictHostKeyChecking=no localhost", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
		return err
	}
	return nil
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger zerolog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info().Str("path", path).Msg("loaded host key")
			return signer, nil
		}
	}

	logger.Info().Str("path", path).Msg("generating new ed25519 host key")
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persisting is best effort; the next start just generates another key.
	if block, err := xssh.MarshalPrivateKey(key, "cube-combine server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("host key not saved")
		}
	}
	return signer, nil
}
