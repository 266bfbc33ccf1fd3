package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"speedrun_vote_system/configs"
	"speedrun_vote_system/internal/db"
	"speedrun_vote_system/internal/db/repositories"
	"speedrun_vote_system/internal/di"
	"speedrun_vote_system/internal/discord"
	"speedrun_vote_system/internal/services"
	"speedrun_vote_system/internal/speedruncom"
	"speedrun_vote_system/internal/web"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger := zap.Must(zap.NewProduction()).Sugar()

	logger.Info("loading config")
	config, err := configs.LoadVoteBotConfig()
	if err != nil {
		logger.Fatalw("failed to load config", "error", err)
	}
	logger = di.NewLogger(config.Logger)
	logger.Info("config loaded")

	logger.Info("starting db")
	database, err := db.StartDB(config.DB, logger)
	if err != nil {
		logger.Fatalw("failed to start db", "error", err)
	}
	defer database.Close()
	logger.Info("db started")

	userRepository := repositories.NewUserRepository(database)
	guildRepository := repositories.NewGuildRepository(database)
	pollRepository := repositories.NewPollRepository(database)

	logger.Info("starting discord bot")
	bot, err := discord.NewBot(config.Discord, guildRepository, logger)
	if err != nil {
		logger.Fatalw("failed to create discord bot", "error", err)
	}
	if err := bot.Open(); err != nil {
		logger.Fatalw("failed to open discord connection", "error", err)
	}
	defer bot.Close()
	logger.Infow("bot started", "invite_link", bot.InviteLink())

	srcClient := speedruncom.NewClient(config.SpeedrunCom, logger)
	classifier := services.NewClassifier(userRepository, srcClient, logger)
	scheduler := services.NewScheduler(logger)
	defer scheduler.Stop()

	pollService := services.NewPollService(
		pollRepository,
		guildRepository,
		bot,
		classifier,
		scheduler,
		logger,
	)

	logger.Info("restoring poll timers")
	if err := pollService.RestorePending(context.Background()); err != nil {
		logger.Errorw("failed to restore poll timers", "error", err)
	}

	server := web.NewServer(
		config.Web,
		config.Discord,
		pollService,
		pollRepository,
		userRepository,
		guildRepository,
		srcClient,
		bot,
		logger,
	)
	go func() {
		logger.Infow("starting web server", "port", config.Web.Port)
		if err := server.Run(); err != nil {
			logger.Fatalw("web server stopped", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
}
