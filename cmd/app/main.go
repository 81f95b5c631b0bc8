package main

import (
	"context"

	"hotelier/config"
	"hotelier/di"
	"hotelier/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeApp()

	app.Scheduler.Start(context.Background())
	defer app.Scheduler.Stop()

	app.HTTP.Serve()
}
