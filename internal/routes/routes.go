package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"verdant_back_end/internal/config"
	"verdant_back_end/internal/handlers"
	"verdant_back_end/internal/middleware"
)

// RegisterRoutes mounts the API surface. redisClient may be nil; the OTP
// rate limit is only applied when Redis is configured.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, cartH *handlers.CartHandler, authH *handlers.AuthHandler, redisClient *redis.Client) {
	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authH.Register)
			auth.POST("/login", authH.Login)
			auth.POST("/verify-otp", authH.VerifyOTP)
			auth.GET("/me", middleware.AuthRequired(cfg.JWTSecret), authH.Me)

			sendOTP := auth.Group("")
			if redisClient != nil {
				sendOTP.Use(middleware.OTPRateLimit(redisClient))
			}
			sendOTP.POST("/send-otp-email", authH.SendOTPEmail)
		}

		cart := api.Group("/cart")
		{
			cart.GET("", cartH.GetCart)
			cart.GET("/:plantId", cartH.GetCartItem)
			cart.POST("", cartH.AddToCart)
			cart.PUT("", cartH.UpdateCartItem)
			cart.DELETE("/:plantId", cartH.RemoveFromCart)
			cart.DELETE("", cartH.ClearCart)
		}
	}
}
