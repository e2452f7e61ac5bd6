package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	telegram "dlsdk-demos/internal/api"
	"dlsdk-demos/internal/container"
)

func main() {
	c, err := container.Load("bot")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	if c.Config.TelegramToken == "" {
		c.Logger.Error("TELEGRAM_TOKEN is required")
		os.Exit(1)
	}

	bot, err := telegram.NewBot(c.Config.TelegramToken, c)
	if err != nil {
		c.Logger.Error("failed to create bot", zap.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c.Logger.Info("bot is running")
	if err := bot.Run(ctx); err != nil {
		c.Logger.Error("bot stopped", zap.Error(err))
		os.Exit(1)
	}
}
