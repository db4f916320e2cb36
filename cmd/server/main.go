package main

import (
	"log"

	"github.com/risewynn/qellum/internal/server"

	// Import migrations so their init() funcs run and register themselves.
	_ "github.com/risewynn/qellum/database/migrations"
)

func main() {
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}
