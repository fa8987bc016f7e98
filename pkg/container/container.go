package container

import (
	"context"
	"fmt"
	"time"

	"pvadb-backend/internal/config"
	infraCache "pvadb-backend/internal/infrastructure/cache"
	"pvadb-backend/internal/infrastructure/database"
	"pvadb-backend/internal/infrastructure/queue"
	"pvadb-backend/internal/infrastructure/storage"
	"pvadb-backend/pkg/cache"
	"pvadb-backend/pkg/jwt"
	"pvadb-backend/pkg/logger"

	"pvadb-backend/internal/domains/brand"
	brandHandler "pvadb-backend/internal/domains/brand/handler"
	brandRepo "pvadb-backend/internal/domains/brand/repository"
	brandService "pvadb-backend/internal/domains/brand/service"
	"pvadb-backend/internal/domains/content"
	contentHandler "pvadb-backend/internal/domains/content/handler"
	contentRepo "pvadb-backend/internal/domains/content/repository"
	contentService "pvadb-backend/internal/domains/content/service"
	"pvadb-backend/internal/domains/product"
	productHandler "pvadb-backend/internal/domains/product/handler"
	productRepo "pvadb-backend/internal/domains/product/repository"
	productService "pvadb-backend/internal/domains/product/service"
	"pvadb-backend/internal/domains/quota"
	quotaHandler "pvadb-backend/internal/domains/quota/handler"
	quotaRepo "pvadb-backend/internal/domains/quota/repository"
	quotaService "pvadb-backend/internal/domains/quota/service"
	"pvadb-backend/internal/domains/user"
	userHandler "pvadb-backend/internal/domains/user/handler"
	userRepo "pvadb-backend/internal/domains/user/repository"
	userService "pvadb-backend/internal/domains/user/service"

	"github.com/hibiken/asynq"
)

// Container is the root of the dependency graph: config, infrastructure,
// repositories, services, handlers, built in that order.
type Container struct {
	// Infrastructure
	Config         *config.Config
	DB             *database.PostgresDB
	Cache          cache.Cache
	JWTManager     *jwt.Manager
	MinIOStorage   *storage.MinIOStorage
	ImageProcessor *storage.ImageProcessor
	AsynqClient    *asynq.Client

	// Repositories
	UserRepo    user.Repository
	QuotaRepo   quota.TrustRepository
	CounterRepo quota.CounterStore
	ProductRepo product.Repository
	BrandRepo   brand.Repository
	ContentRepo content.Repository

	// Services
	UserService       user.Service
	QuotaService      quota.Service
	ProductService    product.Service
	BulkImportService product.BulkImportService
	BrandService      brand.Service
	ContentService    content.Service

	// Handlers
	UserHandler       *userHandler.UserHandler
	QuotaHandler      *quotaHandler.QuotaHandler
	ProductHandler    *productHandler.ProductHandler
	ModerationHandler *productHandler.ModerationHandler
	BulkImportHandler *productHandler.BulkImportHandler
	BrandHandler      *brandHandler.BrandHandler
	ContentHandler    *contentHandler.ContentHandler
}

// NewContainer wires the whole application. Order matters: config, then
// infrastructure, then repositories, services and handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("Configuration loaded", map[string]interface{}{"environment": cfg.App.Environment})

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	logger.Info("Database connected", nil)

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			// The quota counter degrades to fail-open reads without redis,
			// so boot continues
			logger.Warn("Redis connection failed", map[string]interface{}{"error": err.Error()})
		} else {
			logger.Info("Redis connected", nil)
		}
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.MinIOStorage = minioStorage
	c.ImageProcessor = storage.NewImageProcessor()

	c.AsynqClient = queue.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("Container initialized", nil)

	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.QuotaRepo = quotaRepo.NewPostgresTrustRepository(pool)
	c.CounterRepo = quotaRepo.NewKVCounterStore(c.Cache)
	c.ProductRepo = productRepo.NewPostgresRepository(pool, c.Cache)
	c.BrandRepo = brandRepo.NewPostgresRepository(pool)
	c.ContentRepo = contentRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.QuotaService = quotaService.NewQuotaService(c.QuotaRepo, c.CounterRepo)
	c.UserService = userService.NewUserService(c.UserRepo, c.QuotaService, c.JWTManager)
	c.ProductService = productService.NewProductService(
		c.ProductRepo,
		c.QuotaService,
		c.UserRepo,
		c.MinIOStorage,
		c.ImageProcessor,
		c.AsynqClient,
	)
	c.BulkImportService = productService.NewBulkImportService(c.ProductRepo, c.QuotaService)
	c.BrandService = brandService.NewBrandService(c.BrandRepo)
	c.ContentService = contentService.NewContentService(c.ContentRepo)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.QuotaHandler = quotaHandler.NewQuotaHandler(c.QuotaService)
	c.ProductHandler = productHandler.NewProductHandler(c.ProductService)
	c.ModerationHandler = productHandler.NewModerationHandler(c.ProductService)
	c.BulkImportHandler = productHandler.NewBulkImportHandler(c.BulkImportService)
	c.BrandHandler = brandHandler.NewBrandHandler(c.BrandService)
	c.ContentHandler = contentHandler.NewContentHandler(c.ContentService)
}

// Close releases infrastructure connections
func (c *Container) Close() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("Failed to close asynq client", err)
		}
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Error("Failed to close redis", err)
		}
	}
	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
	}
}
