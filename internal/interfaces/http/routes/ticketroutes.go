package routes

import (
	"github.com/gin-gonic/gin"

	attachmenthandlers "helpdesk/internal/interfaces/http/handlers/attachment"
	tickethandlers "helpdesk/internal/interfaces/http/handlers/ticket"
	"helpdesk/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler     *tickethandlers.TicketHandler
	AttachmentHandler *attachmenthandlers.AttachmentHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	tickets := engine.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		// Collection operations (no ID parameter)
		tickets.POST("",
			config.TicketHandler.CreateTicket)
		tickets.GET("",
			config.TicketHandler.ListTickets)

		// Specific action endpoints (must come BEFORE /:id to avoid conflicts)
		tickets.GET("/stats",
			config.TicketHandler.GetStats)
		tickets.POST("/:id/messages",
			config.TicketHandler.AddMessage)

		// Generic parameterized routes (must come LAST)
		tickets.GET("/:id",
			config.TicketHandler.GetTicket)
		tickets.PATCH("/:id",
			middleware.RequireAdmin(),
			config.TicketHandler.UpdateTicket)
	}

	attachments := engine.Group("/attachments")
	attachments.Use(config.AuthMiddleware.RequireAuth())
	{
		attachments.POST("",
			config.AttachmentHandler.Upload)
	}
}
