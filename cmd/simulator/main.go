package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/kirbo/go-sensorsim/internal/config"
	"github.com/kirbo/go-sensorsim/internal/mirror"
	"github.com/kirbo/go-sensorsim/internal/sensor"
	"github.com/kirbo/go-sensorsim/internal/simulator"
	"github.com/kirbo/go-sensorsim/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := transport.Dial(cfg.Endpoint)
	if err != nil {
		log.Fatalf("did not connect: %v", err)
	}
	defer conn.Close()

	pubs, err := mirror.FromConfig(cfg)
	if err != nil {
		log.Printf("mirrors disabled: %v", err)
	}
	defer func() {
		if err := mirror.CloseAll(pubs); err != nil {
			log.Printf("close mirrors: %v", err)
		}
	}()

	mirrors := make([]simulator.Mirror, 0, len(pubs))
	for _, p := range pubs {
		mirrors = append(mirrors, p)
	}

	sim := simulator.New(cfg,
		sensor.NewGenerator(cfg, nil),
		transport.NewSender(conn.Client(), cfg.CallTimeout),
		simulator.WithMirrors(mirrors...),
	)

	if err := sim.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("simulator stopped: %v", err)
	}
	log.Print("Simulator stopped")
}
