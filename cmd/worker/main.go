package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ariefcatur/go-commerce.git/internal/config"
	"github.com/ariefcatur/go-commerce.git/internal/fulfillment"
	kafkax "github.com/ariefcatur/go-commerce.git/internal/kafka"
	"github.com/ariefcatur/go-commerce.git/internal/orders"
	"github.com/ariefcatur/go-commerce.git/internal/postgres"
	"github.com/ariefcatur/go-commerce.git/internal/redisx"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Service
	svc := &fulfillment.Service{
		Orders:      &orders.Repo{DB: db},
		Redis:       rdb,
		ServiceName: cfg.ServiceName + "-worker",
	}

	// Consumer: default 1 pesan in-flight; >1 menghidupkan lagi race per-variant
	// antar proses (dijaga FOR UPDATE di transaksi, tapi urutan tidak dijamin).
	group := getenv("WORKER_GROUP", "checkout-worker")
	workers := mustAtoi(os.Getenv("WORKER_CONCURRENCY"), "1")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicCheckoutRequested, workers)

	go func() {
		log.Printf("checkout worker started: group=%s topic=%s workers=%d", group, orders.TopicCheckoutRequested, workers)
		if err := cons.Start(ctx, svc.HandleCheckoutRequested); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down worker...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
