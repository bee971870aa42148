package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	handlers "github.com/theodez1/revly-sub001/internal/adapter/handler/http"
	"github.com/theodez1/revly-sub001/internal/adapter/cache"
	"github.com/theodez1/revly-sub001/internal/config"
	"github.com/theodez1/revly-sub001/internal/infrastructure/database"
	"github.com/theodez1/revly-sub001/internal/middleware/auth"
	"github.com/theodez1/revly-sub001/internal/usecase"
	"github.com/theodez1/revly-sub001/internal/utils"
)

type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
	repos  *database.Repositories
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, repos *database.Repositories, redisClient *redis.Client) *Server {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PATCH, echo.DELETE},
	}))

	return &Server{
		config: cfg,
		logger: logger,
		echo:   e,
		repos:  repos,
		redis:  redisClient,
	}
}

func (s *Server) Start() error {
	// Setup routes
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	// Shared services
	idgen := utils.NewUniqueIDService()
	suggestionCache := cache.NewRedisSuggestionCache(s.redis, s.config.Redis.SuggestionTTL, s.logger)

	membershipService := usecase.NewMembershipService(
		s.repos.Group, s.repos.Membership, s.repos.User, suggestionCache, idgen, s.logger)
	groupService := usecase.NewGroupService(
		s.repos.Group, s.repos.Membership, s.repos.JoinRequest, membershipService, suggestionCache, idgen, s.logger)
	joinRequestService := usecase.NewJoinRequestService(
		s.repos.Group, s.repos.Membership, s.repos.JoinRequest, s.repos.User, suggestionCache, idgen, s.logger)
	roleService := usecase.NewRoleService(s.repos.Group, s.repos.Membership, s.logger)

	// Initialize handlers
	groupHandler := handlers.NewGroupHandler(s.logger, groupService)
	memberHandler := handlers.NewMemberHandler(s.logger, groupService, membershipService, roleService)
	joinRequestHandler := handlers.NewJoinRequestHandler(s.logger, joinRequestService)

	// JWT middleware configuration
	jwtConfig := auth.JWTConfig{
		Secret: s.config.JWT.Secret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
		},
	}

	// API v1 routes (all require JWT authentication)
	v1 := s.echo.Group("/api/v1", auth.JWTMiddleware(jwtConfig))

	// Groups
	groups := v1.Group("/groups")
	groups.POST("", groupHandler.CreateGroup)
	groups.GET("/suggested", groupHandler.GetSuggestedGroups)
	groups.GET("/mine", groupHandler.GetUserGroups)
	groups.GET("/:id", groupHandler.GetGroup)
	groups.PATCH("/:id", groupHandler.UpdateGroup)
	groups.DELETE("/:id", groupHandler.DeleteGroup)

	// Members
	groups.GET("/:id/members", memberHandler.ListMembers)
	groups.POST("/:id/members", memberHandler.JoinGroup)
	groups.DELETE("/:id/members/me", memberHandler.LeaveGroup)
	groups.DELETE("/:id/members/:userId", memberHandler.RemoveMember)
	groups.POST("/:id/members/:userId/promote", memberHandler.PromoteMember)
	groups.POST("/:id/members/:userId/demote", memberHandler.DemoteMember)
	groups.POST("/:id/transfer-ownership", memberHandler.TransferOwnership)

	// Join requests
	groups.POST("/:id/join-requests", joinRequestHandler.RequestToJoin)
	groups.GET("/:id/join-requests", joinRequestHandler.ListPendingRequests)
	groups.DELETE("/:id/join-requests/me", joinRequestHandler.CancelJoinRequest)

	requests := v1.Group("/join-requests")
	requests.POST("/:requestId/approve", joinRequestHandler.ApproveJoinRequest)
	requests.POST("/:requestId/reject", joinRequestHandler.RejectJoinRequest)
}
