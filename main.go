package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/street-conflate/app/controllers"
	"github.com/street-conflate/app/services"
	"github.com/street-conflate/internal/search"
	"github.com/street-conflate/routes"
)

func main() {
	loadConfig()

	logger := initLogger()
	defer logger.Sync()

	logger.Info("starting street conflate service")

	mongoDB := initMongoDB(logger)
	defer func() {
		if err := mongoDB.Client().Disconnect(context.Background()); err != nil {
			logger.Error("mongo disconnect", zap.Error(err))
		}
	}()

	searchConfig := search.Config{
		Host:      viper.GetString("meilisearch.url"),
		APIKey:    viper.GetString("meilisearch.master_key"),
		IndexName: "street_names",
		Timeout:   30 * time.Second,
		MaxHits:   20,
	}
	streetSearcher, err := search.NewStreetSearcher(searchConfig, logger)
	if err != nil {
		logger.Fatal("search backend init failed", zap.Error(err))
	}

	redisURL := getEnv("REDIS_URL", "redis://localhost:6379")
	redisCache, err := services.NewRedisCacheService(redisURL, logger)
	if err != nil {
		logger.Fatal("redis cache init failed", zap.Error(err))
	}

	l1Size := getEnvInt("L1_CACHE_SIZE", viper.GetInt("cache.l1_size"))
	mongoCache, err := services.NewMongoCacheService(mongoDB, l1Size, logger)
	if err != nil {
		logger.Fatal("mongo cache init failed", zap.Error(err))
	}

	cacheService := services.NewHybridCacheService(redisCache, mongoCache, logger)

	if err := mongoCache.WarmUp(context.Background(), l1Size/2); err != nil {
		logger.Warn("cache warm up failed", zap.Error(err))
	}

	nameService, err := services.NewNameService(l1Size, logger)
	if err != nil {
		logger.Fatal("name service init failed", zap.Error(err))
	}

	nameController := controllers.NewNameController(nameService, cacheService, logger)
	adminController := controllers.NewAdminController(cacheService, streetSearcher, logger)

	router := gin.Default()
	router.Use(gin.Recovery())

	routes.SetupAllRoutes(router, nameController, adminController)

	port := getEnv("APP_PORT", viper.GetString("app.port"))
	logger.Info("street conflate service listening", zap.String("port", port))

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func loadConfig() {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("meilisearch.url", "http://localhost:7700")
	viper.SetDefault("meilisearch.master_key", "")
	viper.SetDefault("mongo.url", "mongodb://localhost:27017/street_conflate")
	viper.SetDefault("cache.l1_size", 10000)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("warning: cannot read config file: %v", err)
	}
}

func initLogger() *zap.Logger {
	env := getEnv("APP_ENV", viper.GetString("app.env"))

	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	logger, err := config.Build()
	if err != nil {
		log.Fatal("cannot initialize logger:", err)
	}
	return logger
}

func initMongoDB(logger *zap.Logger) *mongo.Database {
	mongoURL := getEnv("MONGO_URL", viper.GetString("mongo.url"))

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURL))
	if err != nil {
		logger.Fatal("mongo connect failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("mongo ping failed", zap.Error(err))
	}

	db := client.Database("street_conflate")
	logger.Info("connected to mongo", zap.String("database", db.Name()))
	return db
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
