package server

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yeol2/8-pumati-be/internal/agent"
	"github.com/yeol2/8-pumati-be/internal/config"
	"github.com/yeol2/8-pumati-be/internal/handler"
	"github.com/yeol2/8-pumati-be/internal/middleware"
	"github.com/yeol2/8-pumati-be/internal/repository"
	"github.com/yeol2/8-pumati-be/internal/service"
	"github.com/yeol2/8-pumati-be/pkg/storage"
	"github.com/yeol2/8-pumati-be/pkg/token"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	tokens := token.NewManager(
		cfg.JWTSecret,
		cfg.AccessTokenTTL,
		time.Duration(cfg.RefreshCookieMaxAge)*time.Second,
	)

	memberRepo := repository.NewMemberRepository(db)
	oauthRepo := repository.NewOAuthRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(redisClient)

	teamSvc := service.NewTeamService(teamRepo)
	oauthSvc := service.NewOAuthService(oauthRepo, cfg.AllowedProviders)
	memberSvc := service.NewMemberService(memberRepo, refreshRepo, teamSvc, oauthSvc, tokens, cfg)

	presigner, err := storage.NewS3Presigner(context.Background(), cfg.S3BucketName, cfg.S3Region)
	if err != nil {
		log.Fatalf("failed to initialize s3 presigner: %v", err)
	}
	uploadSvc := service.NewUploadService(presigner, cfg)
	uploadHandler := handler.NewUploadHandler(uploadSvc)

	var personas agent.PersonaGenerator
	if cfg.GeminiAPIKey != "" {
		llm, err := agent.NewLLMClient(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			log.Printf("persona generator disabled: %v", err)
		} else {
			personas = llm
		}
	}
	memberHandler := handler.NewMemberHandler(memberSvc, personas, cfg)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	setupCORS(router, cfg.AllowedOrigins)

	authMiddleware := middleware.NewAuthMiddleware(tokens)

	api := router.Group("/api")

	// Public routes (signup happens before any token exists)
	api.POST("/members", memberHandler.SignupOAuthMember)
	api.POST("/members/ai", memberHandler.SignupAiMember)

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/members/me", memberHandler.GetCurrentMember)
		protected.GET("/members/:id", memberHandler.GetMember)
		protected.PATCH("/members/me", memberHandler.UpdateCurrentMember)
		protected.PATCH("/members/me/email-consent", memberHandler.ToggleEmailConsent)
		protected.DELETE("/members/me", memberHandler.DeleteCurrentMember)

		protected.GET("/teams/:teamId/members", memberHandler.GetTeamMembers)

		protected.POST("/uploads/presigned-url", uploadHandler.GeneratePresignedURL)
		protected.POST("/uploads/presigned-urls", uploadHandler.GeneratePresignedURLs)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
