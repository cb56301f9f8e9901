package main

import (
	"log"

	"github.com/yungbote/levelpath-backend/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("init app: %v", err)
	}
	defer a.Shutdown()

	if err := a.Start(); err != nil {
		a.Log.Fatal("start background services", "error", err)
	}
	if err := a.Run(); err != nil {
		a.Log.Fatal("run server", "error", err)
	}
}
