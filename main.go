// cube-combine is a terminal sandbox: walk a cube around, bump into objects
// and absorb them. Build:
//
//	go build -o cube-combine .
//
// Usage:
//
//	./cube-combine [-c config.yaml] [--scene scene.yaml] [--log-level debug]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cube-combine/internal/config"
	"cube-combine/internal/game"
	"cube-combine/internal/logging"
	"cube-combine/internal/scene"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"
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
	logger, closer, err := logging.Setup(cfg.Log.Level, cfg.Log.Dir, "cube-combine", nil)
	if err != nil {
		return err
	}
	defer closer.Close()

	sc, err := scene.Load(cfg.Scene.Path)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.Scene.Path).Msg("scene load failed")
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return game.New(screen, cfg, sc, logger).Run(ctx)
}
