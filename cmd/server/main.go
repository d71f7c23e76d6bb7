package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisstore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"authd/internal/config"
	apphttp "authd/internal/http"
	"authd/internal/repository/sqlite"
	"authd/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// schema must exist before the server accepts traffic
	userRepo := sqlite.NewUserRepository(db)
	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}

	authService := service.NewAuthService(userRepo)

	store, err := buildSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup session store: %v", err)
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(apphttp.RequestLogger(logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins()
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	router.Use(sessions.Sessions(cfg.Session.Name, store))

	handler := apphttp.NewHandler(authService, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

// buildSessionStore picks a server-side redis store when configured and falls
// back to a signed cookie store otherwise.
func buildSessionStore(ctx context.Context, cfg config.Config, logger *logrus.Logger) (sessions.Store, error) {
	secret := []byte(cfg.Session.Secret)

	var store sessions.Store
	if cfg.Session.RedisAddr != "" {
		// fail fast if the session backend is down, before listening
		client := goredis.NewClient(&goredis.Options{Addr: cfg.Session.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		_ = client.Close()
		if err != nil {
			return nil, fmt.Errorf("session redis unreachable: %w", err)
		}

		redisStore, err := redisstore.NewStore(10, "tcp", cfg.Session.RedisAddr, "", "", secret)
		if err != nil {
			return nil, fmt.Errorf("create redis session store: %w", err)
		}
		store = redisStore
		logger.Infof("using redis session store at %s", cfg.Session.RedisAddr)
	} else {
		store = cookie.NewStore(secret)
		logger.Info("using cookie session store")
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAgeSeconds,
		HttpOnly: true,
		Secure:   cfg.Server.Mode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
