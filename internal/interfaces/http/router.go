package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	attachmentusecases "helpdesk/internal/application/attachment/usecases"
	ticketusecases "helpdesk/internal/application/ticket/usecases"
	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/infrastructure/cache"
	"helpdesk/internal/infrastructure/config"
	"helpdesk/internal/infrastructure/email"
	"helpdesk/internal/infrastructure/repository"
	"helpdesk/internal/infrastructure/services"
	"helpdesk/internal/infrastructure/storage"
	attachmenthandlers "helpdesk/internal/interfaces/http/handlers/attachment"
	tickethandlers "helpdesk/internal/interfaces/http/handlers/ticket"
	"helpdesk/internal/interfaces/http/middleware"
	"helpdesk/internal/interfaces/http/routes"
	"helpdesk/internal/shared/logger"
)

// Router wires the HTTP surface together.
type Router struct {
	engine            *gin.Engine
	ticketHandler     *tickethandlers.TicketHandler
	attachmentHandler *attachmenthandlers.AttachmentHandler
	authMiddleware    *middleware.AuthMiddleware
	allowedOrigins    []string
	log               logger.Interface
	blobStore         *storage.BucketBlobStore
}

// NewRouter creates the router and all its dependencies. The blob bucket
// is opened here, so the caller should Close the router on shutdown.
func NewRouter(ctx context.Context, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Router, error) {
	engine := gin.New()

	ticketRepo := repository.NewTicketRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)

	redisCache := cache.NewRedisCache(redisClient, log)
	numberGen := services.NewTicketNumberGenerator(db)
	notifier := email.NewSMTPNotifier(cfg.Email)

	blobStore, err := storage.Open(ctx, &cfg.Storage)
	if err != nil {
		return nil, err
	}

	createTicketUC := ticketusecases.NewCreateTicketUseCase(ticketRepo, messageRepo, attachmentRepo, numberGen, redisCache, log)
	listTicketsUC := ticketusecases.NewListTicketsUseCase(ticketRepo, redisCache, log)
	getTicketUC := ticketusecases.NewGetTicketUseCase(ticketRepo, messageRepo, attachmentRepo, redisCache, log)
	addMessageUC := ticketusecases.NewAddMessageUseCase(ticketRepo, messageRepo, attachmentRepo, redisCache, notifier, log)
	updateTicketUC := ticketusecases.NewUpdateTicketUseCase(ticketRepo, messageRepo, redisCache, notifier, log)
	getStatsUC := ticketusecases.NewGetTicketStatsUseCase(ticketRepo, messageRepo, redisCache, log)
	uploadUC := attachmentusecases.NewUploadAttachmentUseCase(attachmentRepo, ticketRepo, blobStore, log)

	ticketHandler := tickethandlers.NewTicketHandler(
		createTicketUC, listTicketsUC, getTicketUC, addMessageUC, updateTicketUC, getStatsUC,
	)
	attachmentHandler := attachmenthandlers.NewAttachmentHandler(uploadUC)

	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)

	return &Router{
		engine:            engine,
		ticketHandler:     ticketHandler,
		attachmentHandler: attachmentHandler,
		authMiddleware:    authMiddleware,
		allowedOrigins:    cfg.Server.AllowedOrigins,
		log:               log,
		blobStore:         blobStore,
	}, nil
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.CORS(r.allowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupTicketRoutes(r.engine, &routes.TicketRouteConfig{
		TicketHandler:     r.ticketHandler,
		AttachmentHandler: r.attachmentHandler,
		AuthMiddleware:    r.authMiddleware,
	})
}

// GetEngine returns the Gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Close releases resources held by the router.
func (r *Router) Close() error {
	return r.blobStore.Close()
}
