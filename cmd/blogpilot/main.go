package main

import (
	"blogpilot/cmd/handlers"
	"blogpilot/internal/logger"
)

func main() {
	logger.Init() // Initialize the logger
	handlers.Execute()
}
