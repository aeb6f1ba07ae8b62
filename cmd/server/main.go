package main

import (
	"context"
	"fmt"
	"log"

	"github.com/MidhunThomas45/LMSv2024Project/config"
	"github.com/MidhunThomas45/LMSv2024Project/internal/api"
	"github.com/MidhunThomas45/LMSv2024Project/internal/api/handler"
	"github.com/MidhunThomas45/LMSv2024Project/internal/database"
	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
	"github.com/MidhunThomas45/LMSv2024Project/internal/pkg/cron"
	"github.com/MidhunThomas45/LMSv2024Project/internal/pkg/pubsub"
	"github.com/MidhunThomas45/LMSv2024Project/internal/pkg/ws"
	"github.com/MidhunThomas45/LMSv2024Project/internal/repository"
	"github.com/MidhunThomas45/LMSv2024Project/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 WebSocket Hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	bookRepo := repository.NewBookRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	rentRepo := repository.NewRentRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	issuedRepo := repository.NewIssuedBookRepository(db)

	// 初始化 Service
	publisher := pubsub.NewPublisher(rdb)
	accessService := service.NewAccessService(bookRepo, membershipRepo, rdb)
	authService := service.NewAuthService(userRepo, membershipRepo, cfg)
	catalogService := service.NewCatalogService(catalogRepo)
	bookService := service.NewBookService(bookRepo, catalogRepo, accessService)
	membershipService := service.NewMembershipService(membershipRepo, paymentRepo, publisher, accessService, cfg)
	transactionService := service.NewTransactionService(
		bookRepo, rentRepo, purchaseRepo, issuedRepo,
		paymentRepo, userRepo, publisher, accessService, cfg,
	)

	// 订阅支付事件，推送给付款用户和在线馆员
	subscriber := pubsub.NewSubscriber(rdb)
	go func() {
		err := subscriber.Subscribe(context.Background(), func(msg *pubsub.PaymentMessage) {
			notice := &ws.Message{Type: msg.Type, Data: msg}
			if err := wsHub.SendToUser(msg.UserID, notice); err != nil {
				log.Printf("Failed to push payment notice to user %d: %v", msg.UserID, err)
			}
			if err := wsHub.SendToRole(model.RoleLibrarian, notice); err != nil {
				log.Printf("Failed to push payment notice to librarians: %v", err)
			}
		})
		if err != nil {
			log.Printf("Payment subscriber stopped: %v", err)
		}
	}()

	// 每日过期会员清扫
	cronService := cron.NewService(membershipService)
	cronService.Start()
	defer cronService.Stop()
	log.Println("Membership expiry sweep scheduled")

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	bookHandler := handler.NewBookHandler(bookService, accessService)
	membershipHandler := handler.NewMembershipHandler(membershipService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	websocketHandler := handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret)

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		catalogHandler,
		bookHandler,
		membershipHandler,
		transactionHandler,
		websocketHandler,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
