package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"verdant_back_end/internal/cache"
	"verdant_back_end/internal/catalog"
	"verdant_back_end/internal/config"
	"verdant_back_end/internal/handlers"
	"verdant_back_end/internal/middleware"
	"verdant_back_end/internal/routes"
	"verdant_back_end/internal/store"
)

func main() {
	cfg := config.Load()

	otps, redisClient := newOTPStore(cfg)

	plants := catalog.NewClient(cfg.PlantAPIURL)
	carts := store.NewCartStore(plants)
	users := store.NewUserStore()

	cartH := handlers.NewCartHandler(carts)
	authH := handlers.NewAuthHandler(cfg, users, otps, handlers.NewSMTPMailer(cfg))

	r := gin.Default()
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	routes.RegisterRoutes(r, cfg, cartH, authH, redisClient)

	log.Println("🚀 Verdant API listening on port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}

// newOTPStore picks the Redis-backed OTP store when REDIS_URL is set and
// falls back to the in-memory one otherwise. The returned client is nil
// unless Redis is up; route wiring uses it for the OTP rate limit.
func newOTPStore(cfg *config.Config) (store.OTPStore, *redis.Client) {
	if cfg.RedisURL == "" {
		log.Println("⚠️  REDIS_URL not set — OTP codes are kept in memory")
		return store.NewMemoryOTPStore(), nil
	}

	client, err := cache.Connect(cfg.RedisURL)
	if err != nil {
		log.Printf("⚠️  Redis unavailable (%v) — OTP codes are kept in memory", err)
		return store.NewMemoryOTPStore(), nil
	}

	log.Println("✅ Redis connected")
	return cache.NewRedisOTPStore(client), client
}
