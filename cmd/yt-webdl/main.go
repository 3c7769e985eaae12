package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/imbecility/yt-webdl/pkg/api"
	"github.com/imbecility/yt-webdl/pkg/config"
	"github.com/imbecility/yt-webdl/pkg/flash"
	"github.com/imbecility/yt-webdl/pkg/gateway"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Printf("Configuration failed: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gw, err := gateway.New(ctx, cfg)
	if err != nil {
		fmt.Printf("Initialization failed: %v\n", err)
		os.Exit(1)
	}

	srv := &api.Server{
		Port:    cfg.Port,
		Gateway: gw,
		Flash:   flash.Store{Cookie: cfg.FlashCookie},
		Metrics: gw.Metrics.Handler(),
	}

	if err := srv.Start(ctx); err != nil {
		slog.Error("Server crashed", "err", err)
		os.Exit(1)
	}
}
