package main

import (
	"log"

	_ "ganttboard/docs"
	"ganttboard/internal/config"
	"ganttboard/internal/server"
)

// @title           Gantt Board API
// @version         1.0
// @description     API for managing scheduled tasks with list and Gantt timeline views.

// @host      localhost:8080
// @BasePath  /

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
