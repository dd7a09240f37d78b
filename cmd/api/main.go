package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/ariefcatur/go-commerce.git/internal/auth"
	"github.com/ariefcatur/go-commerce.git/internal/catalog"
	"github.com/ariefcatur/go-commerce.git/internal/config"
	"github.com/ariefcatur/go-commerce.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-commerce.git/internal/kafka"
	"github.com/ariefcatur/go-commerce.git/internal/orders"
	"github.com/ariefcatur/go-commerce.git/internal/postgres"
	"github.com/ariefcatur/go-commerce.git/internal/redisx"
	"github.com/ariefcatur/go-commerce.git/internal/users"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer utk pesan checkout
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicCheckoutRequested, 1024)
	prod.Start(ctx)

	// Services
	authSvc := auth.New(cfg.JWTSecret)
	userSvc := &users.Service{Store: &users.Repo{DB: db}, Auth: authSvc}
	orderSvc := &orders.Service{
		Cart:     &orders.CartRepo{DB: db},
		Orders:   &orders.Repo{DB: db},
		Producer: prod,
		Redis:    rdb,
		Service:  cfg.ServiceName,
	}
	catalogRepo := &catalog.Repo{DB: db}

	// Handlers & routes
	authH := &httpx.AuthHandler{Users: userSvc}
	usersH := &httpx.UsersHandler{Svc: userSvc}
	catalogH := &httpx.CatalogHandler{Repo: catalogRepo, UploadDir: cfg.UploadDir}
	ordersH := &httpx.OrdersHandler{Svc: orderSvc}

	router := httpx.NewRouter()
	router.Route("/api", func(api chi.Router) {
		authH.Register(api)
		usersH.RegisterPublic(api)
		catalogH.RegisterPublic(api)

		api.Group(func(protected chi.Router) {
			protected.Use(httpx.Auth(authSvc.VerifyToken))
			usersH.RegisterProtected(protected)
			catalogH.RegisterProtected(protected)
			ordersH.Register(protected)
		})
	})
	httpx.MountUploads(router, cfg.UploadDir)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()      // tutup inbox -> flush & close writer
	prod.WaitClosed() // drain
}
