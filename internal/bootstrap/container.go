package bootstrap

import (
	"context"
	"log"

	"ai-bookwriting-be/internal/config"
	"ai-bookwriting-be/internal/controller"
	"ai-bookwriting-be/internal/handler"
	"ai-bookwriting-be/internal/pkg/logger"
	"ai-bookwriting-be/internal/pkg/mailer"
	"ai-bookwriting-be/internal/repository/implementation"
	"ai-bookwriting-be/internal/repository/memory"
	"ai-bookwriting-be/internal/repository/unitofwork"
	"ai-bookwriting-be/internal/service"
	"ai-bookwriting-be/internal/websocket"
	"ai-bookwriting-be/pkg/llm/factory"

	pktNats "ai-bookwriting-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	BookController       controller.IBookController
	ChapterController    controller.IChapterController
	EditorController     controller.IEditorController
	GenerationController controller.IGenerationController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	// In-memory refresh session store
	sessionRepo := memory.NewSessionRepository(service.RefreshTokenTTL)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.StatsTopic,
		uowFactory,
		natsPub,
	)

	authService := service.NewAuthService(uowFactory, sessionRepo, emailService, natsPub)
	bookService := service.NewBookService(uowFactory, sysLogger)
	chapterService := service.NewChapterService(uowFactory, pubSub, cfg.App.StatsTopic, sysLogger)
	editorService := service.NewEditorService(uowFactory, sysLogger)
	generationService := service.NewGenerationService(uowFactory, llmProvider, natsPub, emailService, sysLogger)

	// 3.5 Notification System
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		AuthController:       controller.NewAuthController(authService),
		BookController:       controller.NewBookController(bookService, chapterService),
		ChapterController:    controller.NewChapterController(chapterService),
		EditorController:     controller.NewEditorController(editorService),
		GenerationController: controller.NewGenerationController(generationService),

		ConsumerService: consumerService,
	}
}
