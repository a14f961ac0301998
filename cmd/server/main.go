package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	shopv1 "github.com/light-bringer/backoffice-service/api/shop/v1"
	"github.com/light-bringer/backoffice-service/internal/config"
	"github.com/light-bringer/backoffice-service/internal/pkg/logging"
	"github.com/light-bringer/backoffice-service/internal/services"
	"github.com/light-bringer/backoffice-service/internal/transport/grpc/shop"
	httptransport "github.com/light-bringer/backoffice-service/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)

	log.Printf("Starting back office service...")
	log.Printf("Spanner Database: %s", cfg.Spanner.Database)
	log.Printf("gRPC Port: %s", cfg.Server.GRPCPort)
	log.Printf("HTTP Port: %s", cfg.Server.HTTPPort)

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. Create gRPC server
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(
		shop.LoggingInterceptor(logger),
		shop.AuthInterceptor(serviceOpts.Sessions),
	))
	shopv1.RegisterAuthServiceServer(grpcServer, serviceOpts.AuthHandler)
	shopv1.RegisterCartServiceServer(grpcServer, serviceOpts.CartHandler)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", ":"+cfg.Server.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}

	errCh := make(chan error, 2)
	go func() {
		log.Printf("gRPC server listening on :%s", cfg.Server.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("gRPC server: %w", err)
		}
	}()

	// 4. Create HTTP server
	gin.SetMode(cfg.Server.GinMode)
	limiter := httptransport.NewIPRateLimiter(cfg.Auth.LoginRatePerSec, cfg.Auth.LoginBurst)
	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.HTTPPort,
		Handler: httptransport.NewRouter(serviceOpts.HTTPHandler, serviceOpts.Sessions, limiter, logger),
	}

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.Server.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	// 5. Graceful shutdown handling
	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
		log.Printf("Server error: %v", serveErr)
	}

	log.Println("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	grpcServer.GracefulStop()

	return serveErr
}
