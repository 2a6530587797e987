package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"resume_optimizer/internal/app/di"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	app, err := di.NewApp(context.Background())
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	slog.Info("listening", "port", app.Config.Port)
	if err := app.Engine.Run(":" + app.Config.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
