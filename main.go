package main

import (
	"TeamChat/config"
	"TeamChat/controllers"
	"TeamChat/interfaces"
	"TeamChat/repositories/impl"
	"TeamChat/routes"
	"TeamChat/services"
	"TeamChat/tasks"
	"TeamChat/websocket"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	config.InitLogger(cfg.LogLevel)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatal("database", "err", err)
	}

	// Repositories
	userRepo := impl.NewUserRepository(db)
	chatRepo := impl.NewChatRepository(db)
	messageRepo := impl.NewMessageRepository(db)

	var wg sync.WaitGroup

	hub := websocket.NewHub()
	background(&wg, func() { hub.Run(ctx) })

	tokens := services.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	chatService := services.NewChatService(chatRepo, messageRepo, userRepo)
	chatService.Events = hub
	chatService.RequireMembership = cfg.RequireMembership

	if cfg.RedisURL != "" {
		queue, err := tasks.NewAsynqQueue(cfg.RedisURL)
		if err != nil {
			log.Fatal("task queue", "err", err)
		}
		defer queue.Close()
		chatService.Notifications = queue

		worker, err := tasks.NewWorker(cfg.RedisURL, cfg.WorkerConcurrency, services.NewNotificationService(pushSender(ctx, cfg), chatRepo, userRepo))
		if err != nil {
			log.Fatal("task worker", "err", err)
		}
		background(&wg, func() {
			if err := worker.Run(ctx); err != nil {
				log.Error("[Worker] exited", "err", err)
			}
		})
	} else {
		log.Warn("REDIS_URL not set, push notifications disabled")
	}

	controllers.SetAuthService(services.NewAuthService(userRepo, tokens))
	controllers.SetUserService(services.NewUserService(userRepo))
	controllers.SetChatService(chatService)
	controllers.SetWebSocketHub(hub)
	controllers.SetHealthCheck(func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})

	r := gin.Default()
	routes.RegisterRoutes(r, tokens)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
	if !waitFor(shutdownCtx, &wg) {
		log.Warn("background workers did not stop before the shutdown timeout")
	}
}

// background runs fn in a goroutine tracked by wg.
func background(wg *sync.WaitGroup, fn func()) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		fn()
	}()
}

// waitFor blocks until wg drains or ctx expires and reports whether it drained.
func waitFor(ctx context.Context, wg *sync.WaitGroup) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}

func pushSender(ctx context.Context, cfg config.Config) interfaces.PushSender {
	app, err := config.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatal("firebase", "err", err)
	}
	if app == nil {
		log.Warn("FIREBASE_CREDENTIALS_PATH not set, push notifications are logged only")
		return services.LogSender{}
	}

	sender, err := services.NewFCMSender(ctx, app)
	if err != nil {
		log.Fatal("firebase messaging", "err", err)
	}
	return sender
}
