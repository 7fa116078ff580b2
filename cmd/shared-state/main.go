// Command shared-state increments one mutex-guarded counter from many tasks
// and prints the total once every task has been joined.
package main

import (
	"log"
	"os"

	"github.com/panyam/gosync/internal/config"
	"github.com/panyam/gosync/internal/demo"
)

func main() {
	log.SetFlags(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := demo.MutexScope(os.Stdout); err != nil {
		log.Fatalf("mutex scope: %v", err)
	}

	if _, err := demo.SharedCounter(os.Stdout, cfg.SharedState.Workers, cfg.SharedState.Initial); err != nil {
		log.Fatalf("shared counter: %v", err)
	}
}
