package main

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dagocoffee/dago-orders-service/internal/application"
	"github.com/dagocoffee/dago-orders-service/internal/config"
	"github.com/dagocoffee/dago-orders-service/internal/idgen"
	"github.com/dagocoffee/dago-orders-service/internal/kitchen"
	"github.com/dagocoffee/dago-orders-service/internal/logger"
	"github.com/dagocoffee/dago-orders-service/internal/presentation"
	"github.com/dagocoffee/dago-orders-service/internal/repository"
)

func main() {
	logger.Init()
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}

	// Flat-file stores
	salesRepo, err := repository.NewSalesRepository(cfg.DATA_DIR)
	if err != nil {
		logger.Error("sales store init failed", "err", err)
		os.Exit(1)
	}
	financeRepo, err := repository.NewFinanceRepository(cfg.DATA_DIR)
	if err != nil {
		logger.Error("finance store init failed", "err", err)
		os.Exit(1)
	}
	logger.Info("data dir ready", "dir", cfg.DATA_DIR)

	ids := idgen.New()

	// Kafka producer for the kitchen queue; disabled without brokers
	var pub application.TicketPublisher
	if cfg.KAFKA_BROKERS != "" {
		prod := kitchen.NewProducer(cfg.KAFKA_BROKERS, cfg.KAFKA_TOPIC)
		defer prod.Close()
		pub = prod
		logger.Info("kitchen queue enabled", "brokers", cfg.KAFKA_BROKERS, "topic", cfg.KAFKA_TOPIC)
	}

	// Wiring
	orders := application.NewOrdersService(salesRepo, ids, pub)
	reports := application.NewReportService(salesRepo)
	finance := application.NewFinanceService(financeRepo, ids)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// API
	h := presentation.NewHandler(orders, reports, finance)
	h.Register(r)

	addr := ":" + cfg.HTTP_PORT
	logger.Info("starting http", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Error("http server crashed", "err", err)
		os.Exit(1)
	}
}
