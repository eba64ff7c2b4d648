package main

import (
	"log"

	"goboard/config"
	"goboard/internal/commands"
	"goboard/internal/handler"
	"goboard/internal/redis"
	"goboard/internal/repository"
	"goboard/internal/server"
	"goboard/internal/services"
	"goboard/internal/storage"
	"goboard/pkg/database"
	"goboard/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	logger.SetGlobalLogger(l)

	database.Connect(cfg)
	defer database.Close()

	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	redis.Initialize(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	limiter := redis.NewRateLimiter(redis.GetClient(), redis.DefaultRateLimitConfig())

	policy := storage.NewPolicy(cfg.Upload)
	resolver, err := storage.NewResolver(cfg.Upload)
	if err != nil {
		log.Fatalf("Failed to prepare upload directories: %v", err)
	}

	userRepo := repository.NewUserRepository(database.DB)
	boardRepo := repository.NewBoardRepository(database.DB)
	attachmentRepo := repository.NewAttachmentRepository(database.DB)

	authService := services.NewAuthService(userRepo, cfg)
	attachmentService := services.NewAttachmentService(attachmentRepo, boardRepo, resolver, l)
	boardService := services.NewBoardService(boardRepo, userRepo, attachmentService, l)
	uploadService := services.NewUploadService(attachmentRepo, policy, resolver, cfg.Upload, l)
	downloadService := services.NewDownloadService(attachmentRepo, resolver, cfg.Upload, l)

	dispatcher := commands.NewDispatcher(commands.NewBoardListCommand(boardService))
	dispatcher.Register("boardList", commands.NewBoardListCommand(boardService))
	dispatcher.Register("boardWrite", commands.NewBoardWriteCommand())
	dispatcher.Register("boardInsert", commands.NewBoardInsertCommand(boardService, uploadService))
	dispatcher.Register("boardView", commands.NewBoardViewCommand(boardService))
	dispatcher.Register("boardUpdate", commands.NewBoardUpdateCommand(boardService, uploadService))
	dispatcher.Register("boardDelete", commands.NewBoardDeleteCommand(boardService))
	dispatcher.Register("signup", commands.NewSignupCommand(authService))
	dispatcher.Register("login", commands.NewLoginCommand(authService))
	dispatcher.Register("logout", commands.NewLogoutCommand(authService))
	dispatcher.Register("fileUpload", commands.NewFileUploadCommand(boardService, uploadService))
	dispatcher.Register("fileDownload", commands.NewFileDownloadCommand(downloadService))
	dispatcher.Register("fileDelete", commands.NewFileDeleteCommand(attachmentService))

	front := handler.NewFrontController(dispatcher)

	srv := server.New(cfg, l)
	srv.SetupRoutes(front, authService, limiter, resolver.ImagesDir())

	if err := srv.Start(); err != nil {
		log.Fatalf("Server shutdown with error: %v", err)
	}
}
