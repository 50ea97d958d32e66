package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"emkaan/api/internal/config"
	"emkaan/api/internal/middleware"
	"emkaan/api/internal/models"
	"emkaan/api/internal/repository"
	"emkaan/api/internal/service"
	"emkaan/api/internal/storage"
)

type HandlerSet struct {
	log           zerolog.Logger
	cfg           *config.AppConfig
	db            *pgxpool.Pool
	cache         *redis.Client
	users         *repository.UserRepository
	content       *service.ContentService
	authService   *service.AuthService
	uploadService *service.UploadService
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	pageRepo := repository.NewPageRepository(db)
	sectionRepo := repository.NewSectionRepository(db)

	content := service.NewContentService(pageRepo, sectionRepo, cache, cfg.Cache.PageListTTL, log)
	auth := service.NewAuthService(userRepo, cfg, log)
	upload := service.NewUploadService(store, cfg, log)

	return HandlerSet{
		log:           log,
		cfg:           cfg,
		db:            db,
		cache:         cache,
		users:         userRepo,
		content:       content,
		authService:   auth,
		uploadService: upload,
	}
}

// Content returns the content service for collaborators outside the HTTP
// path, such as the cache-warming scheduler.
func (h HandlerSet) Content() *service.ContentService {
	return h.content
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	authed := middleware.Auth(h.cfg, h.users)
	adminOnly := middleware.RequireRoles(models.UserRoleAdmin)
	editors := middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleEditor)

	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/login", h.Login)
		auth.GET("/me", authed, h.Me)
		auth.PUT("/update", authed, h.UpdateProfile)

		pages := v1.Group("/pages")
		pages.GET("", h.ListPages)
		pages.POST("", authed, h.CreatePage)
		pages.PUT("/order", authed, adminOnly, h.ReorderPages)
		pages.GET("/:id", authed, h.GetPage)
		pages.PUT("/:id", authed, adminOnly, h.UpdatePage)
		pages.DELETE("/:id", authed, adminOnly, h.DeletePage)

		sections := v1.Group("/sections")
		sections.GET("", h.ListSections)
		sections.POST("", authed, editors, h.CreateSection)
		sections.PUT("/order", authed, editors, h.ReorderSections)
		sections.GET("/:id", h.GetSection)
		sections.PUT("/:id", authed, editors, h.UpdateSection)
		sections.DELETE("/:id", authed, editors, h.DeleteSection)

		v1.POST("/upload", authed, h.Upload)
	}
}
