package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/skillswap-backend/internal/config"
	"github.com/ignatzorin/skillswap-backend/internal/db"
	httpHandlers "github.com/ignatzorin/skillswap-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/skillswap-backend/internal/http/router"
	"github.com/ignatzorin/skillswap-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/skillswap-backend/internal/logger"
	"github.com/ignatzorin/skillswap-backend/internal/repository"
	"github.com/ignatzorin/skillswap-backend/internal/service"
	"github.com/ignatzorin/skillswap-backend/internal/storage"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/swap"
	"github.com/ignatzorin/skillswap-backend/internal/watch"
	"github.com/ignatzorin/skillswap-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Инициализируем вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	avatarStorage, err := storage.NewAvatarStorage(cfg.AvatarStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	skillRepo := repository.NewSkillRepository(dbConn)
	feedbackRepo := repository.NewFeedbackRepository(dbConn)
	notificationRepo := repository.NewNotificationRepository(dbConn)
	swapRepo := persistence.NewSwapRepositoryAdapter(dbConn)
	skillLookup := persistence.NewSkillRepositoryAdapter(dbConn)

	// Вебсокеты.
	hub := ws.NewHub(ctx)
	go hub.Run()

	// Сервисы.
	authService := service.NewAuthService(userRepo, tokenManager)
	skillService := service.NewSkillService(skillRepo)
	searchService := service.NewSearchService(skillRepo, userRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	statsService := service.NewStatsService(userRepo, swapRepo, skillRepo, service.NewCacheService())
	seedService := service.NewSeedService(userRepo, skillRepo, swapRepo)

	hub.SetNotificationSaver(ws.NewNotificationServiceAdapter(notificationService))

	// Брокер снимков коллекций.
	broker := watch.NewBroker()
	snapshotService := service.NewSnapshotService(userRepo, skillRepo, swapRepo, broker)

	// Сценарии жизненного цикла обмена.
	createSwap := swap.NewCreateRequestUseCase(swapRepo, skillLookup, hub)
	respondSwap := swap.NewRespondUseCase(swapRepo, hub)
	cancelSwap := swap.NewCancelRequestUseCase(swapRepo, hub)
	completeSwap := swap.NewCompleteSwapUseCase(swapRepo, feedbackRepo, userRepo, hub)
	listSwaps := swap.NewListRequestsUseCase(swapRepo)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService, snapshotService)
	profileHandler := httpHandlers.NewProfileHandler(userRepo, snapshotService)
	avatarHandler := httpHandlers.NewAvatarHandler(userRepo, avatarStorage)
	skillHandler := httpHandlers.NewSkillHandler(skillService, snapshotService)
	swapHandler := httpHandlers.NewSwapHandler(createSwap, respondSwap, cancelSwap, completeSwap, listSwaps, swapRepo, snapshotService)
	browseHandler := httpHandlers.NewBrowseHandler(searchService)
	statsHandler := httpHandlers.NewStatsHandler(statsService)
	notificationHandler := httpHandlers.NewNotificationHandler(notificationService)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)
	watchHandler := httpHandlers.NewWatchHandler(broker, snapshotService, tokenManager)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)
	seedHandler := httpHandlers.NewSeedHandler(seedService, snapshotService)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, authHandler, profileHandler, avatarHandler, skillHandler, swapHandler, browseHandler, statsHandler, notificationHandler, wsHandler, watchHandler, healthHandler, seedHandler, tokenManager)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
