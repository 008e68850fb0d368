package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/recetario/backend/internal/config"
	"github.com/recetario/backend/internal/database"
	"github.com/recetario/backend/internal/handler"
	"github.com/recetario/backend/internal/middleware"
	"github.com/recetario/backend/internal/model"
	"github.com/recetario/backend/internal/queue"
	"github.com/recetario/backend/internal/repository"
	"github.com/recetario/backend/internal/router"
	"github.com/recetario/backend/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env wins
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	users := repository.NewUserRepo(db)
	roles := repository.NewRoleRepo(db)
	tokens := repository.NewTokenRepo(db)
	follows := repository.NewFollowRepo(db)
	likes := repository.NewLikeRepo(db)
	ratings := repository.NewRatingRepo(db)
	comments := repository.NewCommentRepo(db)
	recipes := repository.NewRecipeRepo(db)
	notifications := repository.NewNotificationRepo(db)

	// The default role must be seeded; a missing USER role makes every
	// registration fail, so refuse to start instead.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if _, err := roles.GetByName(ctx, model.RoleUser); err != nil {
		cancel()
		log.Fatalf("roles: default role %s missing: %v", model.RoleUser, err)
	}
	cancel()

	notifier := service.NewNotificationService(notifications)
	authSvc := service.NewAuthService(users, roles, tokens, cfg.JWTSecret,
		time.Duration(cfg.TokenTTLHrs)*time.Hour, cfg.BcryptCost)
	socialSvc := service.NewSocialService(users, follows, notifier)
	engagementSvc := service.NewEngagementService(users, recipes, likes, ratings, comments, notifier)

	authH := handler.NewAuthHandler(authSvc)
	socialH := handler.NewSocialHandler(socialSvc)
	engagementH := handler.NewEngagementHandler(engagementSvc)
	notificationH := handler.NewNotificationHandler(notifier)
	recipeH := handler.NewRecipeHandler(recipes, likes, ratings)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}
	loginLimiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	browseCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.Use(middleware.Identity(cfg.JWTSecret, users, tokens))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, loginLimiter)
	router.RegisterPublic(e, recipeH, socialH, engagementH, browseCache)
	router.RegisterProtected(e, recipeH, socialH, engagementH, notificationH)

	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()
	go pruneRevokedTokens(tokens)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// pruneRevokedTokens drops ledger rows past their original expiry
// once an hour. Housekeeping only; revocation checks are correct
// with or without it.
func pruneRevokedTokens(tokens *repository.TokenRepo) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for range t.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := tokens.PruneExpired(ctx, time.Now())
		cancel()
		if err != nil {
			log.Printf("revoked-token prune failed: %v", err)
			continue
		}
		if n > 0 {
			log.Printf("pruned %d expired revoked tokens", n)
		}
	}
}
