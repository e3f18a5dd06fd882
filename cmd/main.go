package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bobapos/internal/adapter/logger"
	"bobapos/internal/adapter/metrics"
	"bobapos/internal/adapter/postgres"
	"bobapos/internal/adapter/rabbitmq"
	"bobapos/internal/app/catalog"
	"bobapos/internal/app/checkout"
	"bobapos/internal/app/reporting"
	"bobapos/internal/config"
	"bobapos/internal/domain"

	amqpAdapter "bobapos/internal/adapter/amqp"
	httpAdapter "bobapos/internal/adapter/http"
)

func main() {
	mode := flag.String("mode", "pos", "Service mode: pos, notification-subscriber")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	ctx := context.Background()
	lgr := logger.New(*mode)

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	switch *mode {
	case "pos":
		db, err := postgres.Connect(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer db.Close()

		lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
			"host": cfg.Database.Host,
			"db":   cfg.Database.Database,
		})

		runPOSService(cfg, db, mqConn, lgr)

	case "notification-subscriber":
		runNotificationSubscriber(ctx, mqConn, lgr)

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func runPOSService(cfg *config.Config, db postgres.DB, mqConn rabbitmq.Connection, lgr logger.Logger) {
	// Repositories
	catalogRepo := postgres.NewCatalogRepository(db)
	inventoryRepo := postgres.NewInventoryRepository(db)
	employeeRepo := postgres.NewEmployeeRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	reportRepo := postgres.NewReportRepository(db)
	checkoutStore := postgres.NewCheckoutStore(db)

	// Messaging
	publisher := rabbitmq.NewPublisher(mqConn)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	checkoutMetrics := metrics.NewCheckout(registry)

	// The adjustable clock backs order timestamps so demo data can be
	// backdated through the admin endpoints.
	clock := domain.NewAdjustableClock()

	// Services
	checkoutService := checkout.NewService(checkoutStore, publisher, clock, lgr, checkoutMetrics, checkout.Config{
		ToppingSurcharge:  cfg.Checkout.ToppingSurcharge.Decimal,
		LowStockThreshold: cfg.Checkout.LowStockThreshold.Decimal,
	})
	adminService := catalog.NewService(catalogRepo, inventoryRepo, employeeRepo, lgr)
	reportService := reporting.NewService(reportRepo, lgr)

	// Handlers
	checkoutHandler := httpAdapter.NewCheckoutHandler(checkoutService, lgr)
	catalogHandler := httpAdapter.NewCatalogHandler(adminService, orderRepo, lgr)
	adminHandler := httpAdapter.NewAdminHandler(adminService, lgr)
	reportHandler := httpAdapter.NewReportHandler(reportService, lgr)
	clockHandler := httpAdapter.NewClockHandler(clock)

	r := chi.NewRouter()
	r.Use(httpAdapter.RequestID)
	r.Use(httpAdapter.RecoveryMiddleware(lgr))
	r.Use(httpAdapter.LoggingMiddleware(lgr))

	r.Post("/checkout", checkoutHandler.Checkout)
	r.Get("/menu", catalogHandler.ListMenu)
	r.Get("/inventory", catalogHandler.ListInventory)
	r.Get("/recipes", catalogHandler.ListRecipes)
	r.Get("/orders", catalogHandler.ListOrders)
	r.Get("/orders/{id}", catalogHandler.GetOrder)

	r.Mount("/admin", adminHandler.Routes())

	r.Get("/reports/popular-drinks", reportHandler.PopularDrinks)
	r.Get("/reports/inventory-usage", reportHandler.InventoryUsage)
	r.Get("/reports/sales", reportHandler.DailySales)

	r.Get("/system-date", clockHandler.Get)
	r.Post("/system-date", clockHandler.Set)
	r.Post("/system-date/advance", clockHandler.Advance)
	r.Post("/system-date/reset", clockHandler.Reset)

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("POS service started on port %d", cfg.Server.Port), "startup", map[string]interface{}{
		"port": cfg.Server.Port,
	})

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "Shutting down POS service", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", "runtime", nil, err)
	}
}

func runNotificationSubscriber(ctx context.Context, mqConn rabbitmq.Connection, lgr logger.Logger) {
	consumer := rabbitmq.NewConsumer(mqConn, 1)
	handler := amqpAdapter.NewNotificationHandler(lgr)

	lgr.Info("service_started", "Notification subscriber started", "startup", nil)

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := consumer.ConsumeOrderPlaced(subCtx, handler.HandleOrderPlaced); err != nil && subCtx.Err() == nil {
			lgr.Error("consumer_error", "Error consuming order placed events", "runtime", nil, err)
		}
	}()
	go func() {
		if err := consumer.ConsumeLowStock(subCtx, handler.HandleLowStock); err != nil && subCtx.Err() == nil {
			lgr.Error("consumer_error", "Error consuming low stock alerts", "runtime", nil, err)
		}
	}()

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
	<-sigint

	lgr.Info("shutdown_initiated", "Shutting down notification subscriber", "shutdown", nil)
}
