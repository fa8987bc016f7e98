package main

import (
	"net/http"

	"pvadb-backend/internal/shared/middleware"
	"pvadb-backend/internal/shared/response"
	"pvadb-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupProductRoutes(v1, c)
		setupSubmissionRoutes(v1, c)
		setupBrandRoutes(v1, c)
		setupContentRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.RefreshToken)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/me", c.UserHandler.GetProfile)
	}
}

func setupProductRoutes(v1 *gin.RouterGroup, c *container.Container) {
	products := v1.Group("/products")
	{
		products.GET("", c.ProductHandler.List)
		products.GET("/:slug", c.ProductHandler.GetBySlug)
	}
}

// setupSubmissionRoutes wires the community submission pipeline.
// Single submissions accept anonymous callers; bulk import and image
// upload require a login.
func setupSubmissionRoutes(v1 *gin.RouterGroup, c *container.Container) {
	submissions := v1.Group("/submissions")
	{
		submissions.POST("", middleware.OptionalAuthMiddleware(c.JWTManager), c.ProductHandler.Submit)
		submissions.GET("/quota", middleware.OptionalAuthMiddleware(c.JWTManager), c.QuotaHandler.Status)
		submissions.POST("/import", middleware.AuthMiddleware(c.JWTManager), c.BulkImportHandler.Import)
	}

	v1.POST("/products/:id/image", middleware.AuthMiddleware(c.JWTManager), c.ProductHandler.UploadImage)
}

func setupBrandRoutes(v1 *gin.RouterGroup, c *container.Container) {
	brands := v1.Group("/brands")
	{
		brands.GET("", c.BrandHandler.List)
		brands.GET("/:slug", c.BrandHandler.GetBySlug)
	}
}

func setupContentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/blog", c.ContentHandler.ListPosts)
	v1.GET("/blog/:slug", c.ContentHandler.GetPost)
	v1.GET("/research", c.ContentHandler.ListResearch)
	v1.GET("/videos", c.ContentHandler.ListVideos)
}

func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		// Moderation queue
		admin.GET("/submissions", c.ModerationHandler.ListPending)
		admin.POST("/submissions/:id/approve", c.ModerationHandler.Approve)
		admin.POST("/submissions/:id/reject", c.ModerationHandler.Reject)

		// Brand management
		admin.POST("/brands", c.BrandHandler.Create)
		admin.PUT("/brands/:id", c.BrandHandler.Update)
		admin.DELETE("/brands/:id", c.BrandHandler.Delete)

		// Curated content
		admin.POST("/blog", c.ContentHandler.CreatePost)
		admin.PUT("/blog/:id", c.ContentHandler.UpdatePost)
		admin.DELETE("/blog/:id", c.ContentHandler.DeletePost)
		admin.POST("/research", c.ContentHandler.CreateResearch)
		admin.DELETE("/research/:id", c.ContentHandler.DeleteResearch)
		admin.POST("/videos", c.ContentHandler.CreateVideo)
		admin.DELETE("/videos/:id", c.ContentHandler.DeleteVideo)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
		}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = "unreachable"
			ctx.JSON(http.StatusServiceUnavailable, status)
			return
		}

		response.Success(ctx, http.StatusOK, status)
	}
}
