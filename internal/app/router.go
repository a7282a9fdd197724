package app

import (
	"horizon_backend/internal/config"
	"horizon_backend/internal/middleware"
	"horizon_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerUserRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/status", c.health.GameServerStatus)
		public.GET("/auth/login", c.auth.Login)
		public.GET("/auth/callback", c.auth.Callback)
		public.GET("/translations/:lang", c.translation.Table)
		public.GET("/quizzes", c.quiz.List)
		public.GET("/quizzes/:id", c.quiz.Get)
		public.GET("/store/products", c.store.ListProducts)
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/me", c.auth.Me)
	rg.PUT("/auth/language", c.auth.SetLanguage)

	rg.GET("/submissions/mine", c.quiz.MySubmissions)

	// Application sessions
	rg.POST("/sessions", c.session.Start)
	rg.GET("/sessions/:id", c.session.Get)
	rg.POST("/sessions/:id/begin", c.session.Begin)
	rg.PUT("/sessions/:id/draft", c.session.UpdateDraft)
	rg.POST("/sessions/:id/advance", c.session.Advance)
	rg.POST("/sessions/:id/retry", c.session.Retry)
	rg.DELETE("/sessions/:id", c.session.Abandon)

	// Cart
	rg.GET("/store/cart", c.store.GetCart)
	rg.DELETE("/store/cart", c.store.ClearCart)
	rg.POST("/store/cart/items", c.store.AddToCart)
	rg.PUT("/store/cart/items/:productId", c.store.SetQuantity)
	rg.DELETE("/store/cart/items/:productId", c.store.RemoveFromCart)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		admin.GET("/quizzes", c.admin.ListQuizzes)
		admin.POST("/quizzes", c.admin.CreateQuiz)
		admin.PUT("/quizzes/:id", c.admin.UpdateQuiz)
		admin.DELETE("/quizzes/:id", c.admin.DeleteQuiz)

		admin.GET("/products", c.admin.ListProducts)
		admin.POST("/products", c.admin.CreateProduct)
		admin.POST("/products/image", c.admin.UploadProductImage)
		admin.PUT("/products/:id", c.admin.UpdateProduct)
		admin.DELETE("/products/:id", c.admin.DeleteProduct)

		admin.GET("/submissions", c.admin.ListSubmissions)
		admin.GET("/submissions/:id", c.admin.GetSubmission)
		admin.PUT("/submissions/:id/status", c.admin.SetSubmissionStatus)

		admin.GET("/audit-log", c.admin.AuditLog)
		admin.PUT("/translations", c.translation.Upsert)
	}
}
