// @title Horizon Community API
// @version 1.0
// @description Backend for the Horizon role-play community: store, department applications and moderation.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"horizon_backend/internal/app"
	"horizon_backend/internal/config"
)

func main() {
	configPath := flag.String("config", "configs", "config directory")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	application.Run()
}
