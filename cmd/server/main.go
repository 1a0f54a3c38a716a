package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	config "github.com/phillip/ngo-portal-go/config"
	database "github.com/phillip/ngo-portal-go/database"
	metrics "github.com/phillip/ngo-portal-go/metrics"
	routes "github.com/phillip/ngo-portal-go/routes"
	utils "github.com/phillip/ngo-portal-go/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics.Register(prometheus.DefaultRegisterer)

	store := database.NewStore(cfg.MongoURI, cfg.DBName)
	assets, err := utils.NewCloudinaryStore(cfg.Cloudinary, cfg.Images)
	if err != nil {
		log.Fatalf("asset store: %v", err)
	}

	// connect eagerly so a bad URI shows up at boot; requests retry on failure
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if _, err := store.Database(ctx); err != nil {
		log.Printf("mongo not reachable yet: %v", err)
	}
	cancel()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(cfg, database.NewRepositories(store), assets),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if err := store.Disconnect(ctx); err != nil {
		log.Printf("mongo disconnect: %v", err)
	}
}
