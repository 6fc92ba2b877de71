package main

import (
	"log"

	"github.com/so-ota-biz/fridge-chef/internal/api/app"
)

//go:generate swag init -g internal/api/http/router.go -d ../../ -o ../../api/openapi --packageName openapi --outputTypes go

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
