package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/aliskhannn/math-quiz-bot/internal/bootstrap"
	"github.com/aliskhannn/math-quiz-bot/internal/config"
	"github.com/aliskhannn/math-quiz-bot/internal/delivery/tui"
	"github.com/aliskhannn/math-quiz-bot/internal/logger"
	"github.com/aliskhannn/math-quiz-bot/internal/service"
)

func main() {
	cfg, err := config.Load(config.Options{DefaultStorage: config.StorageFile})
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.NewFile(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := bootstrap.NewPreferenceStore(ctx, cfg)
	if err != nil {
		log.Fatal(err)
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

	model := tui.NewModel(ctx, quizService, preferenceService, lg, tui.Options{
		NoColor: os.Getenv("NO_COLOR") != "",
	})

	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil && ctx.Err() == nil {
		lg.Error("terminal quiz failed", zap.Error(err))
		log.Fatal(err)
	}
}
