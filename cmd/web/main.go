package main

import (
	"healthoffice_backend/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	// Missing .env is fine, config falls back to config.yaml.
	_ = godotenv.Load()

	app.Run()
}
