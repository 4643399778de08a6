package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/config"
	"github.com/fekuna/omnipos-storefront-service/pkg/blobstore"
	"github.com/fekuna/omnipos-storefront-service/pkg/broker"
	"github.com/fekuna/omnipos-storefront-service/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/search"

	catalogH "github.com/fekuna/omnipos-storefront-service/internal/catalog/handler"
	catalogListenerPkg "github.com/fekuna/omnipos-storefront-service/internal/catalog/listener"
	catalogRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/catalog/repository"
	catalogUCPkg "github.com/fekuna/omnipos-storefront-service/internal/catalog/usecase"

	categoryH "github.com/fekuna/omnipos-storefront-service/internal/category/handler"
	categoryRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/category/repository"
	categoryUCPkg "github.com/fekuna/omnipos-storefront-service/internal/category/usecase"

	checkoutH "github.com/fekuna/omnipos-storefront-service/internal/checkout/handler"
	checkoutRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/checkout/repository"
	checkoutUCPkg "github.com/fekuna/omnipos-storefront-service/internal/checkout/usecase"

	mediaH "github.com/fekuna/omnipos-storefront-service/internal/media/handler"
	mediaUCPkg "github.com/fekuna/omnipos-storefront-service/internal/media/usecase"

	"github.com/fekuna/omnipos-storefront-service/internal/integration/inventory"
	"github.com/fekuna/omnipos-storefront-service/internal/integration/payment"
	"github.com/fekuna/omnipos-storefront-service/internal/middleware"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.Config{
		IsDevelopment:     cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to MongoDB
	mongoCtx, cancelMongo := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelMongo()
	mongoClient, err := mongo.Connect(mongoCtx, mongooptions.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		appLogger.Fatal("Could not connect to MongoDB", zap.Error(err))
	}
	if err := mongoClient.Ping(mongoCtx, nil); err != nil {
		appLogger.Fatal("Could not reach MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())
	db := mongoClient.Database(cfg.Mongo.Database)
	appLogger.Info("Connected to MongoDB", zap.String("database", cfg.Mongo.Database))

	// 4. Initialize Repositories
	productRepo := catalogRepoPkg.NewMongoRepository(db)
	branchRepo := catalogRepoPkg.NewMongoBranchRepository(db)
	categoryRepo := categoryRepoPkg.NewMongoRepository(db)
	orderRepo := checkoutRepoPkg.NewMongoOrderRepository(db)

	// 5. Initialize Blob Storage
	gcsStore, err := blobstore.NewGCSStore(context.Background(), cfg.GCS.Bucket, cfg.GCS.CredentialsFile)
	if err != nil {
		appLogger.Fatal("Could not connect to Cloud Storage", zap.Error(err))
	}
	appLogger.Info("Connected to Cloud Storage", zap.String("bucket", cfg.GCS.Bucket))

	// 5.5 Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5.6 Initialize Kafka Consumer
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 5.8 Initialize Elasticsearch
	var esClient *search.Client
	if cfg.Elastic.Enabled {
		esClient, err = search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch (Search features might be limited)", zap.Error(err))
			esClient = nil
		} else {
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	// 5.9 Initialize Remote Gateways
	inventoryGW := inventory.NewClient(cfg.Inventory.BaseURL, time.Duration(cfg.Inventory.Timeout)*time.Second, appLogger)
	paymentGW := payment.NewClient(cfg.Payment.BaseURL, time.Duration(cfg.Payment.Timeout)*time.Second, appLogger)

	// 6. Initialize UseCases
	catalogUC := catalogUCPkg.NewCatalogUseCase(productRepo, branchRepo, inventoryGW, redisClient, esClient, appLogger, cfg.Storefront.LowStockThreshold)
	categoryUC := categoryUCPkg.NewCategoryUseCase(categoryRepo, appLogger)
	mediaUC := mediaUCPkg.NewMediaUseCase(productRepo, gcsStore, appLogger)
	checkoutUC := checkoutUCPkg.NewCheckoutUseCase(orderRepo, productRepo, branchRepo, inventoryGW, paymentGW, cfg.Storefront, appLogger)

	// 6.5 Initialize Listeners
	stockListener := catalogListenerPkg.NewStockListener(kafkaConsumer, catalogUC, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go stockListener.Start(ctx)

	// 7. Initialize Handlers
	catalogHandler := catalogH.NewCatalogHandler(catalogUC, appLogger)
	categoryHandler := categoryH.NewCategoryHandler(categoryUC, appLogger)
	mediaHandler := mediaH.NewMediaHandler(mediaUC, catalogUC, appLogger)
	checkoutHandler := checkoutH.NewCheckoutHandler(checkoutUC, appLogger)

	// 8. Start HTTP Server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID)
	e.Use(middleware.Metrics)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Public storefront surface; the org travels in the path.
	store := e.Group("/api/stores/:orgId")
	store.GET("/products", catalogHandler.ListPublicProductsPaged)
	store.GET("/products/all", catalogHandler.ListPublicProducts)
	store.GET("/products/search", catalogHandler.SearchPublicProducts)
	store.GET("/products/:productId", catalogHandler.GetPublicProductDetail)
	store.GET("/categories", categoryHandler.ListPublicCategories)
	store.POST("/checkout", checkoutHandler.InitiateCheckout)
	store.POST("/orders/:orderId/payment-order", checkoutHandler.CreatePaymentOrder)

	// Merchant admin surface; the org comes from the JWT.
	admin := e.Group("/api/admin", middleware.Auth(cfg.JWT.SecretKey, appLogger))
	admin.GET("/products", catalogHandler.ListAdminProducts)
	admin.PATCH("/products/:productId", catalogHandler.EnrichProduct)
	admin.PUT("/products/:productId", mediaHandler.UpdateProduct)
	admin.DELETE("/products/:productId", catalogHandler.DeleteProduct)
	admin.POST("/products/:productId/images", mediaHandler.UploadImage)
	admin.DELETE("/products/:productId/images/:assetId", mediaHandler.DeleteImage)
	admin.GET("/categories", categoryHandler.ListCategories)
	admin.POST("/categories", categoryHandler.CreateCategory)
	admin.PUT("/categories/:categoryId", categoryHandler.UpdateCategory)
	admin.DELETE("/categories/:categoryId", categoryHandler.DeleteCategory)

	// Service-to-service surface.
	internal := e.Group("/api/internal", middleware.Auth(cfg.JWT.SecretKey, appLogger))
	internal.POST("/stock-updates", catalogHandler.HandleStockUpdate)
	internal.GET("/products/:orgId", catalogHandler.GetProductsByIDs)
	internal.GET("/products/:orgId/:productId", catalogHandler.GetProductDetails)
	internal.GET("/orders/:orgId/:orderId/details", checkoutHandler.GetOrderDetails)

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	go func() {
		if err := e.Start(port); err != nil {
			appLogger.Info("HTTP server stopped", zap.Error(err))
		}
	}()
	appLogger.Info("Starting HTTP server", zap.String("port", port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
