package main

import (
	"log"

	httpapi "tilefront/internal/api/http"
	"tilefront/internal/config"
	"tilefront/internal/store"
)

// @title Tilefront Rendezvous API
// @version 1.0
// @description Match rendezvous and peer frame relay for tilefront (Go + Gin)
// @BasePath /
func main() {
	cfg := config.Load()
	mem := store.NewMemoryStore()
	r := httpapi.SetupRouter(mem)

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
