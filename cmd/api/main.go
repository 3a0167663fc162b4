package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/oaknest/storefront/internal/cache"
	"github.com/oaknest/storefront/internal/config"
	storehttp "github.com/oaknest/storefront/internal/http"
	"github.com/oaknest/storefront/internal/repository"
	"github.com/oaknest/storefront/internal/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()
	zap.ReplaceGlobals(logger)

	cfg := config.Load()
	ctx := context.Background()

	// MongoDB
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := repository.EnsureIndexes(ctx, mongoDB); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	log.Infof("Connected to MongoDB at %s", cfg.Mongo.URI)

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	log.Infof("Connected to Redis at %s", cfg.Redis.Addr)

	// Repositories
	productRepo := repository.NewMongoProductRepository(mongoDB)
	vehicleRepo := repository.NewMongoVehicleRepository(mongoDB)
	orderRepo := repository.NewMongoOrderRepository(mongoDB)
	userRepo := repository.NewMongoUserRepository(mongoDB)
	departmentRepo := repository.NewMongoDepartmentRepository(mongoDB)

	// Services
	productCache := cache.NewRedisCache(redisClient)
	productService := service.NewProductService(productRepo, productCache, log)
	vehicleService := service.NewVehicleService(vehicleRepo, log)
	orderService := service.NewOrderService(orderRepo, productRepo, vehicleRepo, log)
	userService := service.NewUserService(userRepo, cfg.Auth, log)
	departmentService := service.NewDepartmentService(departmentRepo)

	timeout := cfg.Server.RequestTimeout
	router := storehttp.NewRouter(
		storehttp.RouterConfig{
			JWTSecret:      cfg.Auth.JWTSecret,
			RequestTimeout: timeout,
			Log:            log,
		},
		storehttp.Handlers{
			Orders:      storehttp.NewOrderHandler(orderService, timeout, log),
			Products:    storehttp.NewProductHandler(productService, timeout, log),
			Vehicles:    storehttp.NewVehicleHandler(vehicleService, timeout, log),
			Users:       storehttp.NewUserHandler(userService, timeout, log),
			Departments: storehttp.NewDepartmentHandler(departmentService, timeout, log),
		},
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		IdleTimeout:  2 * timeout,
	}

	go func() {
		log.Infof("Storefront API starting on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	if err := mongoDB.Client().Disconnect(shutdownCtx); err != nil {
		log.Warnf("mongo disconnect: %v", err)
	}

	log.Info("server exited")
}
