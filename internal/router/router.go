// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"annuary/internal/cache"
	"annuary/internal/database"
	"annuary/internal/handler"
	"annuary/internal/handler/account"
	"annuary/internal/handler/auth"
	"annuary/internal/handler/categories"
	"annuary/internal/handler/comments"
	"annuary/internal/handler/favorites"
	"annuary/internal/handler/promotions"
	"annuary/internal/handler/registration"
	"annuary/internal/middleware"
	"annuary/internal/service"
	"annuary/internal/worker"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, files service.FileStorage, mailer service.Mailer, wp worker.Pool, baseURL string) {
	categoryCache := cache.NewStore(rdb)

	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(db, rdb))

	// 首頁：本月分類與最近註冊
	api.GET("/home", handler.HomeHandler(db, categoryCache))

	// 公開的 provider 查詢
	api.GET("/providers/search", handler.SearchProvidersHandler(db))
	api.GET("/providers/last", handler.LastSubscribersHandler(db))
	api.GET("/providers/autocomplete", handler.AutoCompleteHandler(db))
	api.GET("/providers/:id", handler.GetProviderHandler(db))
	api.GET("/providers/:id/similar", handler.SimilarProvidersHandler(db))
	api.GET("/providers/:id/promotions", promotions.ListProviderPromotionsHandler(db))
	api.GET("/providers/:id/comments", comments.ListProviderCommentsHandler(db))
	api.POST("/providers/:id/comments", comments.CreateCommentHandler(db), middleware.RequireCustomer)

	// 註冊表單的地區下拉選單
	api.GET("/localities", handler.ListLocalitiesHandler(db))

	// 分類
	api.GET("/categories", categories.ListCategoriesHandler(db, categoryCache))
	api.GET("/categories/:id/providers", handler.ByCategoryHandler(db))
	api.POST("/categories/:id/highlight", categories.HighlightCategoryHandler(db, categoryCache), middleware.RequireProvider)

	// 註冊與 email 驗證
	api.POST("/register/:type_of_user", registration.RegisterHandler(db, files, mailer, wp, baseURL))
	api.GET("/verify/email", registration.VerifyEmailHandler(db))

	// 使用者登入與帳號
	api.POST("/auth/login", auth.LoginHandler(db))
	api.DELETE("/account", account.DeleteAccountHandler(db), middleware.RequireAuth)

	// customer 專屬的最愛清單
	apiFavorites := api.Group("/favorites", middleware.RequireCustomer)
	apiFavorites.GET("", favorites.ListFavoritesHandler(db))
	apiFavorites.POST("/:provider_id", favorites.AddFavoriteHandler(db))
	apiFavorites.DELETE("/:provider_id", favorites.RemoveFavoriteHandler(db))

	// provider 專屬的促銷管理
	apiPromotions := api.Group("/promotions", middleware.RequireProvider)
	apiPromotions.POST("", promotions.CreatePromotionHandler(db, files))
	apiPromotions.PUT("/:id", promotions.UpdatePromotionHandler(db, files))
	apiPromotions.DELETE("/:id", promotions.DeletePromotionHandler(db))
}
