package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"TD_growth_tracker/internal/cli"
	"TD_growth_tracker/internal/repository"
	"TD_growth_tracker/internal/service"
	"TD_growth_tracker/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Log.LoggerConfig()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	store, err := repository.New(cfg.Store)
	if err != nil {
		zapLogger.Error("failed to open store", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to open data files: %v\n", err)
		os.Exit(1)
	}

	users, prompts, challenges, records := store.Counts()
	fmt.Printf("Loaded %d users, %d truth questions, %d dare challenges, %d records.\n",
		users, prompts, challenges, records)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	session := service.NewSessionService(store, cfg.Game.MaxUsers)
	selector := service.NewSelectorService(store, rng)
	activity := service.NewActivityService(store, store, cfg.Game.DareDailyCap, cfg.Game.DareReward)
	report := service.NewReportService(store, store, store)
	svc := service.NewService(session, selector, activity, report)

	shell := cli.New(svc, os.Stdin, os.Stdout, cfg.Game.MaxAnswerLen)
	if err := shell.Run(context.Background()); err != nil {
		zapLogger.Error("session ended with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Session ended with error: %v\n", err)
		os.Exit(1)
	}
}
