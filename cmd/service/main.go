// File: cmd/service/main.go
// @title        Annuaire Bien-Être API
// @version      1.0
// @description  這是服務目錄網站的後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"annuary/internal/cache"
	"annuary/internal/database"
	"annuary/internal/router"
	"annuary/internal/service"
	"annuary/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "annuary/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// 本機開發以 .env 補環境變數，檔案不存在時忽略
	_ = godotenv.Load()

	// 資料庫連線字符串
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("環境變數 DATABASE_URL 未設定")
	}

	// Redis 配置
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		log.Fatal("環境變數 REDIS_ADDR 未設定")
	}
	rdbIndex, err := strconv.Atoi(os.Getenv("REDIS_DB"))
	if err != nil {
		log.Fatalf("無效的 REDIS_DB: %v", err)
	}

	// 驗證信連結的站台位址
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		log.Fatal("環境變數 BASE_URL 未設定")
	}

	// 執行遷移
	if err := database.RunMigrations(dbURL); err != nil {
		log.Fatalf("Migration 執行失敗: %v", err)
	}

	// 建立資料庫連線池
	db, err := database.NewPgxPool(context.Background(), dbURL)
	if err != nil {
		log.Fatalf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	// 建立 Redis 客戶端
	rdb, err := cache.NewRedisClient(redisAddr, os.Getenv("REDIS_PASSWORD"), rdbIndex)
	if err != nil {
		log.Fatalf("Redis 連線失敗: %v", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Printf("關閉 Redis 連線失敗: %v", err)
		}
	}()

	// 上傳檔案的物件儲存
	files, err := service.NewMinioStorage(context.Background())
	if err != nil {
		log.Fatalf("MinIO 連線失敗: %v", err)
	}

	// SMTP 寄件器
	mailer, err := service.NewSMTPMailer()
	if err != nil {
		log.Fatalf("SMTP 設定失敗: %v", err)
	}

	// 寄信用 worker pool
	workerCount, _ := strconv.Atoi(os.Getenv("WORKER_COUNT"))
	wp := worker.NewPool(workerCount)
	defer wp.Stop()

	// Echo 實例及中介層
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// 註冊路由並注入相依
	router.Setup(e, db, rdb, files, mailer, wp, baseURL)

	// Swagger UI
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// 啟動服務
	e.Logger.Fatal(e.Start(":8080"))
}
