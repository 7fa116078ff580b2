// Command message-passing sends strings from producer tasks to a single
// consumer over an unbounded channel and prints them in arrival order.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/panyam/gosync/internal/config"
	"github.com/panyam/gosync/internal/demo"
)

func main() {
	log.SetFlags(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	mp := cfg.MessagePassing

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := demo.SingleMessage(os.Stdout); err != nil {
		log.Fatalf("single message: %v", err)
	}

	if _, err := demo.MultipleValues(ctx, os.Stdout, mp.Producers[0], mp.SendInterval); err != nil {
		log.Fatalf("multiple values: %v", err)
	}

	if _, err := demo.MultipleProducers(ctx, os.Stdout, mp.Producers, mp.SendInterval); err != nil {
		log.Fatalf("multiple producers: %v", err)
	}

	if _, err := demo.MergedStreams(ctx, os.Stdout, mp.Producers, mp.SendInterval); err != nil {
		log.Fatalf("merged streams: %v", err)
	}
}
