package routes

import (
	"github.com/hermione06/cafeteria-management-system/handlers"
	"github.com/hermione06/cafeteria-management-system/middleware"
	"github.com/hermione06/cafeteria-management-system/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)
		public.POST("/auth/verify-email/:token", handlers.VerifyEmail)
		public.POST("/auth/forgot-password", handlers.ForgotPassword)
		public.POST("/auth/reset-password/:token", handlers.ResetPassword)

		// Menu catalog (no auth needed)
		public.GET("/menu", handlers.GetMenu)
		public.GET("/menu/categories", handlers.GetCategories)
		public.GET("/menu/:id", handlers.GetMenuItem)
		public.GET("/menu/:id/ratings", handlers.GetRatings)

		// Announcement board
		public.GET("/announcements", handlers.GetAnnouncements)
		public.GET("/announcements/:id", handlers.GetAnnouncement)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes (any role) ────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/auth/me", handlers.GetProfile)
		auth.POST("/auth/change-password", handlers.ChangePassword)

		// Orders
		auth.POST("/orders", handlers.PlaceOrder)
		auth.GET("/orders", handlers.ListOrders)
		auth.GET("/orders/:id", handlers.GetOrder)
		auth.PUT("/orders/:id/cancel", handlers.CancelOrder)
		auth.POST("/orders/:id/items", handlers.AddOrderItem)
		auth.DELETE("/orders/:id/items/:itemId", handlers.RemoveOrderItem)
		auth.DELETE("/orders/:id", handlers.DeleteOrder)

		// Ratings
		auth.POST("/menu/:id/ratings", handlers.RateItem)
		auth.DELETE("/menu/:id/ratings", handlers.DeleteRating)
	}

	// ── Staff/Admin routes ─────────────────────────────────────────
	staff := r.Group("/api")
	staff.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleStaff, models.RoleAdmin))
	{
		staff.PATCH("/orders/:id/status", handlers.UpdateOrderStatus)
		staff.PATCH("/orders/:id/payment", handlers.UpdatePayment)

		staff.PUT("/menu/:id", handlers.UpdateMenuItem)
		staff.PATCH("/menu/:id/availability", handlers.ToggleAvailability)

		staff.GET("/reports/summary", handlers.ReportSummary)
		staff.GET("/reports/top-items", handlers.ReportTopItems)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.POST("/menu", handlers.CreateMenuItem)
		admin.DELETE("/menu/:id", handlers.DeleteMenuItem)

		admin.GET("/announcements/all/list", handlers.GetAllAnnouncements)
		admin.POST("/announcements", handlers.CreateAnnouncement)
		admin.PUT("/announcements/:id", handlers.UpdateAnnouncement)
		admin.DELETE("/announcements/:id", handlers.DeleteAnnouncement)

		admin.GET("/users", handlers.ListUsers)
		admin.GET("/users/stats", handlers.UserStats)
		admin.GET("/users/:id", handlers.GetUser)
		admin.PATCH("/users/:id", handlers.UpdateUser)
		admin.DELETE("/users/:id", handlers.DeleteUser)
	}
}
