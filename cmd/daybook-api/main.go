package main

import (
	"fmt"
	"log"

	"github.com/daybookhq/daybook/internal/analysis"
	"github.com/daybookhq/daybook/internal/api"
	"github.com/daybookhq/daybook/internal/config"
	"github.com/daybookhq/daybook/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := repository.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	var analyzer analysis.Analyzer
	if cfg.OpenAI.APIKey != "" {
		analyzer = analysis.NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	}

	r := api.NewRouter(db, analyzer)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("daybook API listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
