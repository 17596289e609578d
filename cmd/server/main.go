package main

import (
	"database/sql"
	"fmt"
	"net/http"

	"simplemarket/internal/config"
	"simplemarket/internal/httpapi"
	"simplemarket/internal/logger"
	"simplemarket/internal/order"
	"simplemarket/internal/product"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func initDB(cfg *config.Config) *sql.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.L().Fatal("failed to open database", zap.Error(err))
	}
	if err = db.Ping(); err != nil {
		logger.L().Fatal("failed to ping database", zap.Error(err))
	}

	logger.L().Info("database connection established")
	return db
}

func main() {
	cfg := config.MustLoadServer()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	db := initDB(cfg)
	defer db.Close()

	productRepo := product.NewRepository(db)
	productSvc := product.NewService(productRepo)

	orderRepo := order.NewRepository(db)
	orderSvc := order.NewService(orderRepo, productRepo)

	router := httpapi.NewRouter(productSvc, orderSvc, cfg.JWTSecret)

	logger.L().Info("marketplace API listening", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
