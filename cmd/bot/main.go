package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/math-quiz-bot/internal/bootstrap"
	"github.com/aliskhannn/math-quiz-bot/internal/config"
	"github.com/aliskhannn/math-quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/math-quiz-bot/internal/logger"
	"github.com/aliskhannn/math-quiz-bot/internal/service"
	"github.com/aliskhannn/math-quiz-bot/internal/storage"
)

func main() {
	cfg, err := config.Load(config.Options{
		RequireTelegramToken: true,
		DefaultStorage:       config.StoragePostgres,
	})
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}

	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the quiz"},
		{Command: "quiz", Description: "Show the current question"},
		{Command: "restart", Description: "Start over"},
		{Command: "settings", Description: "Shuffle preferences"},
		{Command: "highscore", Description: "Show the high score"},
		{Command: "help", Description: "Help"},
	}
	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	bot.Debug = cfg.Env != "production"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := bootstrap.NewPreferenceStore(ctx, cfg)
	if err != nil {
		lg.Fatal("failed to init preference storage", zap.Error(err))
	}
	defer closeStore()

	preferenceService := service.NewPreferenceService(store)
	quizService := service.NewQuizService(
		bootstrap.NewQuestionSource(cfg),
		preferenceService,
		service.NewRandomShuffler(),
		lg,
		cfg.Questions.LoadTimeout,
	)

	handler := telegram.NewHandler(
		bot,
		lg,
		quizService,
		preferenceService,
		storage.NewQuizStorage(),
	)
	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		lg.Error("telegram handler failed", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}
