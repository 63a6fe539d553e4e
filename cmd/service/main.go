package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iguana/koalashop/config"
	"github.com/iguana/koalashop/internal/database"
	"github.com/iguana/koalashop/internal/logger"
	"github.com/iguana/koalashop/internal/producer"
	"github.com/iguana/koalashop/internal/repository"
	"github.com/iguana/koalashop/internal/service"
	transport "github.com/iguana/koalashop/internal/transport/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	// Event bus is optional: without brokers the services run standalone.
	var events service.EventBus
	var orderProducer *producer.OrderEventProducer
	if cfg.Kafka.Enabled {
		orderProducer = producer.NewOrderEventProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		events = orderProducer
		log.Info("order event producer enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	customers := service.NewCustomerService(repos)
	products := service.NewProductService(repos)
	orders := service.NewOrderService(repos, events)

	r := transport.Router(customers, products, orders, log)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("shutting down HTTP server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}

	if orderProducer != nil {
		if err := orderProducer.Close(); err != nil {
			log.Error("failed to close order event producer", zap.Error(err))
		}
	}

	log.Info("HTTP server stopped gracefully")
}
