package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hibried/SportNow/internal/api"
	"github.com/hibried/SportNow/internal/handlers"
	"github.com/hibried/SportNow/internal/middlewares"
	"github.com/hibried/SportNow/internal/session"
	"github.com/hibried/SportNow/pkg/config"
	"github.com/hibried/SportNow/pkg/obs"
)

func main() {
	_ = godotenv.Load()
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}

	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		shutdown, err := obs.InitTracer("sportnow-web")
		if err != nil {
			logrus.Fatalf("tracer init: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}()
	}

	var store session.Store
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		store = session.NewRedisStore(rdb, cfg.SessionTTL)
		logrus.Info("sessions in redis")
	} else {
		store = session.NewMemoryStore(cfg.SessionTTL)
		logrus.Info("sessions in memory")
	}

	client := api.New(cfg.APIBaseURL)

	r := gin.Default()
	r.SetHTMLTemplate(handlers.Templates())
	r.Use(middlewares.LoadSession(store))

	ah := handlers.NewAuthHandler(client, store)
	guest := r.Group("", middlewares.RequireGuest())
	{
		guest.GET("/login", ah.ShowLogin)
		guest.POST("/login", ah.Login)
		guest.GET("/register", ah.ShowRegister)
		guest.POST("/register", ah.Register)
	}

	secured := r.Group("", middlewares.RequireAuth())
	{
		secured.POST("/logout", ah.Logout)

		acth := handlers.NewActivityHandler(client, store)
		secured.GET("/activity", acth.List)
		secured.GET("/activity/:id", acth.Detail)
		secured.POST("/activity/:id/checkout", acth.Checkout)

		txh := handlers.NewTransactionHandler(client, store)
		secured.GET("/my-transaction", txh.List)
		secured.GET("/transaction/:id/confirm", txh.Confirm)
		secured.POST("/transaction/:id/cancel", txh.Cancel)
		secured.POST("/transaction/:id/proof", txh.UploadProof)
	}

	r.GET("/", func(c *gin.Context) {
		c.Redirect(302, middlewares.LandingPath)
	})

	logrus.Info("sportnow-web on ", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logrus.Fatal(err)
	}
}
