package main

import (
	"os"

	"dugout/cmd/handlers"
	"dugout/internal/logger"
)

func main() {
	logger.Init()
	if err := handlers.Execute(); err != nil {
		os.Exit(1)
	}
}
