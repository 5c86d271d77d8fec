package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tc "github.com/Roma7-7-7/telegram"

	"github.com/Roma7-7-7/homework-notifier/internal/config"
	"github.com/Roma7-7-7/homework-notifier/internal/logging"
	"github.com/Roma7-7-7/homework-notifier/internal/practicum"
	"github.com/Roma7-7-7/homework-notifier/internal/service"
	"github.com/Roma7-7-7/homework-notifier/internal/telegram"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	conf, err := config.NewConfig(ctx)
	if err != nil {
		slog.Error("Failed to process env vars", "error", err)
		return 1
	}

	log := logging.New(os.Stdout, conf.Dev)

	if !config.CheckTokens(conf, log) {
		log.Log(ctx, logging.LevelCritical, "Stopping: required environment variables are missing")
		return 1
	}

	if username, err := telegram.Identify(conf.TelegramAPIURL, conf.TelegramToken, conf.RequestTimeout); err != nil {
		log.ErrorContext(ctx, "Failed to identify telegram bot", "error", err)
	} else {
		log.InfoContext(ctx, "Telegram bot identified", "username", username)
	}

	poller := practicum.NewClient(conf.Endpoint, conf.PracticumToken, conf.RequestTimeout, log)
	sender := tc.NewClient(&http.Client{Timeout: conf.RequestTimeout}, conf.TelegramToken)
	notifier := service.NewChatNotifier(sender, conf.TelegramChatID, log)
	watcher := service.NewWatcher(poller, notifier, time.Now().Unix(), log)

	log.InfoContext(ctx, "Starting homework notifier")
	watcher.Run(ctx, conf.RetryPeriod)
	log.InfoContext(ctx, "Stopped homework notifier")

	return 0
}
