package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"httpshare/internal/server"
	"httpshare/internal/server/config"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if cfg.MintTokenSubject != "" {
		if err := app.MintToken(cfg.MintTokenSubject); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	app.Run(ctx)
}
