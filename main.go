package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/auswindowshrouds/awsbackend/config"
	"github.com/auswindowshrouds/awsbackend/controllers"
	"github.com/auswindowshrouds/awsbackend/database"
	"github.com/auswindowshrouds/awsbackend/mailer"
	"github.com/auswindowshrouds/awsbackend/middleware"
	"github.com/auswindowshrouds/awsbackend/quotes"
	"github.com/auswindowshrouds/awsbackend/storage"
	"github.com/auswindowshrouds/awsbackend/utils"
)

func newLogger(cfg config.LoggerConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func newObjectStore(ctx context.Context, cfg config.StorageConfig) (storage.ObjectStore, error) {
	if cfg.Driver == "r2" {
		return storage.NewR2Store(ctx, cfg)
	}
	return storage.NewGCSStore(ctx, cfg)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg.Logger)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	client, db, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		logger.Fatal("mongo connect failed", zap.Error(err))
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := database.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal("index creation failed", zap.Error(err))
	}

	if cfg.Auth.AdminEmail != "" && cfg.Auth.AdminPassword != "" {
		if err := utils.SeedAdminUser(ctx, db.Collection("users"), cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, logger); err != nil {
			logger.Fatal("admin seed failed", zap.Error(err))
		}
	}

	objects, err := newObjectStore(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("object store init failed", zap.Error(err))
	}

	notifier := mailer.NewResendDispatcher(cfg.Mail)

	pipeline := quotes.NewPipeline(
		quotes.NewFileGate(cfg.Quotes.MaxAttachmentSizeMB),
		objects,
		quotes.NewMongoStore(db),
		notifier,
		logger,
	)

	allowedOrigins := map[string]bool{}
	for _, origin := range cfg.App.AllowedOrigins {
		allowedOrigins[origin] = true
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	r.POST("/auth/login", controllers.Login(db, cfg.Auth))
	r.POST("/auth/refresh", controllers.Refresh(db, cfg.Auth))
	r.POST("/auth/logout", controllers.Logout(db, cfg.Auth))

	r.GET("/products", controllers.GetProducts(db))
	r.GET("/products/slug/:slug", controllers.GetProductBySlug(db))
	r.GET("/blog-posts", controllers.GetBlogPosts(db))
	r.GET("/blog-posts/slug/:slug", controllers.GetBlogPostBySlug(db))
	r.GET("/referral-sources", controllers.GetReferralSources())
	r.POST("/quote-requests", controllers.CreateQuoteRequest(pipeline))

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))
	{
		admin.POST("/products", controllers.AddProduct(db, objects, cfg.Quotes.MaxProductImages))
		admin.PATCH("/products/:id", controllers.UpdateProduct(db, objects, cfg.Quotes.MaxProductImages))
		admin.DELETE("/products/:id", controllers.DeleteProduct(db, objects))

		admin.POST("/blog-posts", controllers.AddBlogPost(db))
		admin.PATCH("/blog-posts/:id", controllers.UpdateBlogPost(db))
		admin.DELETE("/blog-posts/:id", controllers.DeleteBlogPost(db))

		admin.GET("/quote-requests", controllers.GetQuoteRequests(db))
		admin.GET("/quote-requests/:id", controllers.GetQuoteRequest(db))

		admin.POST("/media", controllers.UploadMedia(objects))

		admin.POST("/users", controllers.CreateUser(db))
		admin.POST("/users/me/password", controllers.ChangeMyPassword(db, cfg.Auth))
	}

	logger.Info("listening", zap.String("port", cfg.App.Port))
	if err := r.Run(":" + cfg.App.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
