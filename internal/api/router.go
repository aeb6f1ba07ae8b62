package api

import (
	"github.com/gin-gonic/gin"

	"github.com/MidhunThomas45/LMSv2024Project/config"
	"github.com/MidhunThomas45/LMSv2024Project/internal/api/handler"
	"github.com/MidhunThomas45/LMSv2024Project/internal/api/middleware"
)

type Router struct {
	authHandler        *handler.AuthHandler
	catalogHandler     *handler.CatalogHandler
	bookHandler        *handler.BookHandler
	membershipHandler  *handler.MembershipHandler
	transactionHandler *handler.TransactionHandler
	websocketHandler   *handler.WebSocketHandler
	cfg                *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	catalogHandler *handler.CatalogHandler,
	bookHandler *handler.BookHandler,
	membershipHandler *handler.MembershipHandler,
	transactionHandler *handler.TransactionHandler,
	websocketHandler *handler.WebSocketHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:        authHandler,
		catalogHandler:     catalogHandler,
		bookHandler:        bookHandler,
		membershipHandler:  membershipHandler,
		transactionHandler: transactionHandler,
		websocketHandler:   websocketHandler,
		cfg:                cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// WebSocket
		api.GET("/ws", r.websocketHandler.Handle)

		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
		}

		// 公开接口 - 套餐列表
		api.GET("/memberships", r.membershipHandler.ListPlans)

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			authenticated.GET("/user/profile", r.authHandler.GetProfile)

			// 目录浏览
			authenticated.GET("/books", r.bookHandler.List)
			authenticated.GET("/books/available", r.bookHandler.Available)
			authenticated.GET("/books/:id", r.bookHandler.Get)
			authenticated.GET("/authors", r.catalogHandler.ListAuthors)
			authenticated.GET("/authors/:id", r.catalogHandler.GetAuthor)
			authenticated.GET("/categories", r.catalogHandler.ListCategories)
			authenticated.GET("/languages", r.catalogHandler.ListLanguages)

			// 借出记录和支付流水，角色在服务层区分范围
			authenticated.GET("/issued-books", r.transactionHandler.ListIssued)
			authenticated.GET("/payments", r.transactionHandler.ListPayments)
		}

		// 学生接口
		student := api.Group("")
		student.Use(middleware.Auth(r.cfg.JWT.Secret), middleware.RequireStudent())
		{
			student.POST("/memberships/:id/subscribe", r.membershipHandler.Subscribe)
			student.GET("/memberships/current", r.membershipHandler.Current)
			student.POST("/books/:id/rent", r.transactionHandler.Rent)
			student.POST("/books/:id/purchase", r.transactionHandler.Purchase)
			student.GET("/rents", r.transactionHandler.ListRents)
			student.GET("/purchases", r.transactionHandler.ListPurchases)
		}

		// 馆员接口
		librarian := api.Group("")
		librarian.Use(middleware.Auth(r.cfg.JWT.Secret), middleware.RequireLibrarian())
		{
			librarian.POST("/authors", r.catalogHandler.CreateAuthor)
			librarian.PUT("/authors/:id", r.catalogHandler.UpdateAuthor)
			librarian.DELETE("/authors/:id", r.catalogHandler.DeleteAuthor)

			librarian.POST("/categories", r.catalogHandler.CreateCategory)
			librarian.PUT("/categories/:id", r.catalogHandler.UpdateCategory)
			librarian.DELETE("/categories/:id", r.catalogHandler.DeleteCategory)

			librarian.POST("/books", r.bookHandler.Create)
			librarian.PUT("/books/:id", r.bookHandler.Update)
			librarian.DELETE("/books/:id", r.bookHandler.Delete)

			librarian.POST("/memberships", r.membershipHandler.CreatePlan)
			librarian.PUT("/memberships/:id", r.membershipHandler.UpdatePlan)
			librarian.DELETE("/memberships/:id", r.membershipHandler.DeletePlan)

			librarian.POST("/issued-books", r.transactionHandler.Issue)
			librarian.POST("/issued-books/:id/return", r.transactionHandler.Return)
		}
	}

	return engine
}
