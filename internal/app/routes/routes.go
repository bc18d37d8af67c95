// Package routes wires controllers to URL paths
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/arnav/gradlink/internal/app/controllers"
	"github.com/arnav/gradlink/internal/app/models"
	"github.com/arnav/gradlink/internal/app/models/dto"
	"github.com/arnav/gradlink/internal/middleware"
	"github.com/arnav/gradlink/internal/pkg/websocket"
)

// Controllers bundles everything SetupRouter mounts
type Controllers struct {
	Auth         *controllers.AuthController
	User         *controllers.UserController
	Post         *controllers.PostController
	Career       *controllers.CareerController
	EventRequest *controllers.EventRequestController
	Approval     *controllers.ApprovalController
	Booking      *controllers.BookingController
	Payment      *controllers.PaymentController
	Notification *controllers.NotificationController
	Leaderboard  *controllers.LeaderboardController
	WebSocket    *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes, including the signup wizard ---
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", c.Auth.StartSignup)
		auth.PUT("/signup/:sessionId/fields", c.Auth.SetSignupField)
		auth.POST("/signup/:sessionId/next", c.Auth.SignupNext)
		auth.POST("/signup/:sessionId/previous", c.Auth.SignupPrevious)
		auth.DELETE("/signup/:sessionId", c.Auth.CancelSignup)

		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
		auth.POST("/logout", c.Auth.Logout)
		auth.GET("/verify-email", c.Auth.VerifyEmail)
		auth.POST("/resend-verification", c.Auth.ResendVerification)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Profile
		authenticated.GET("/users/me", c.User.GetMe)
		authenticated.PUT("/users/me", c.User.UpdateMe)
		authenticated.POST("/users/me/photo", c.User.UploadProfilePhoto)

		// Mentor directory
		authenticated.GET("/mentors", c.User.ListMentors)

		// Leaderboard
		authenticated.GET("/leaderboard", c.Leaderboard.Top)

		// Post feed
		posts := authenticated.Group("/posts")
		{
			posts.GET("", c.Post.ListPosts)
			posts.GET("/:id", c.Post.GetPost)
			posts.POST("/:id/like", c.Post.LikePost)
			posts.GET("/:id/comments", c.Post.ListComments)
			posts.POST("/:id/comments", c.Post.AddComment)
			posts.DELETE("/:id", c.Post.DeletePost)
		}

		// Career tracking
		career := authenticated.Group("/career")
		{
			career.POST("/milestones", c.Career.CreateMilestone)
			career.GET("/milestones", c.Career.ListMilestones)
			career.PUT("/milestones/:id", c.Career.UpdateMilestone)
			career.DELETE("/milestones/:id", c.Career.DeleteMilestone)

			career.POST("/goals", c.Career.CreateGoal)
			career.GET("/goals", c.Career.ListGoals)
			career.PUT("/goals/:id", c.Career.UpdateGoal)
			career.DELETE("/goals/:id", c.Career.DeleteGoal)

			career.POST("/skills", c.Career.CreateSkill)
			career.GET("/skills", c.Career.ListSkills)
			career.PUT("/skills/:id", c.Career.UpdateSkill)
			career.DELETE("/skills/:id", c.Career.DeleteSkill)
		}

		// Event requests: reading is open to all authenticated users
		events := authenticated.Group("/events/requests")
		{
			events.GET("/mine", c.EventRequest.ListMine)
			events.GET("/:id", c.EventRequest.Get)
		}

		// Booking wizard and booking lists
		bookings := authenticated.Group("/bookings")
		{
			bookings.GET("", c.Booking.ListMine)
			bookings.GET("/:id", c.Booking.Get)

			wizardRoutes := bookings.Group("/wizard")
			{
				wizardRoutes.POST("", c.Booking.StartWizard)
				wizardRoutes.GET("/:sessionId", c.Booking.GetState)
				wizardRoutes.PUT("/:sessionId/fields", c.Booking.SetField)
				wizardRoutes.POST("/:sessionId/next", c.Booking.Next)
				wizardRoutes.POST("/:sessionId/previous", c.Booking.Previous)
				wizardRoutes.GET("/:sessionId/quote", c.Booking.Quote)
				wizardRoutes.DELETE("/:sessionId", c.Booking.CancelWizard)
			}
		}

		// Payments
		payments := authenticated.Group("/payments")
		{
			payments.POST("/verify", c.Payment.Verify)
			payments.POST("/dismiss", c.Payment.Dismiss)
			payments.GET("/:id", c.Payment.Get)
		}

		// Notifications, REST and live stream
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", c.Notification.List)
			notifications.GET("/unread-count", c.Notification.UnreadCount)
			notifications.PUT("/read-all", c.Notification.MarkAllRead)
			notifications.PUT("/:id/read", c.Notification.MarkRead)
			notifications.GET("/ws", c.WebSocket.HandleConnection)
		}

		// --- Alumni-only routes ---
		alumniOnly := authenticated.Group("")
		alumniOnly.Use(authMiddleware.RoleRequired(string(models.RoleAlumni)))
		{
			alumniOnly.POST("/posts", c.Post.CreatePost)
			alumniOnly.POST("/events/requests", c.EventRequest.Submit)
			alumniOnly.PUT("/users/me/mentor-settings", c.User.UpdateMentorSettings)
		}

		// --- Student-only routes ---
		studentOnly := authenticated.Group("")
		studentOnly.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
		{
			studentOnly.POST("/bookings/wizard/:sessionId/checkout", c.Booking.Checkout)
		}

		// --- Admin routes ---
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			admin.GET("/users", c.User.ListUsers)
			admin.PUT("/users/:id/status", c.User.SetUserStatus)

			admin.GET("/approvals", c.Approval.List)
			admin.GET("/approvals/pending-count", c.Approval.PendingCount)
			admin.GET("/approvals/:id", c.Approval.Get)
			admin.POST("/approvals/:id/approve", c.Approval.Approve)
			admin.POST("/approvals/:id/reject", c.Approval.Reject)

			admin.GET("/events/requests", c.EventRequest.List)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
