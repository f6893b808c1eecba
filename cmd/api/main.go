package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"staynest-backend/config"
	"staynest-backend/internal/delivery/http/middleware"
	v1 "staynest-backend/internal/delivery/http/v1"
	memcache "staynest-backend/internal/infrastructure/cache"
	"staynest-backend/internal/infrastructure/checkout"
	"staynest-backend/internal/repository/postgres"
	"staynest-backend/internal/usecase"
	"staynest-backend/pkg/logger"
	"staynest-backend/pkg/storage"
	"staynest-backend/pkg/utils"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
)

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Initialize Database
	pgxPool, err := postgres.NewPgxPool(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	log.Info().Msg("Successfully connected to PostgreSQL")

	// Initialize Repositories
	wishlistRepo := postgres.NewWishlistRepository(pgxPool)
	catalogRepo := postgres.NewCatalogRepository(pgxPool)

	// Initialize Cache (In-Memory)
	// Default expiration 30m, cleanup every 60m
	memCache := memcache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	// Set up Router
	mux := http.NewServeMux()

	// --- Modules Initialization ---

	// Storage Module (R2)
	r2Storage, err := storage.NewR2Storage(
		context.Background(),
		cfg.R2AccountID,
		cfg.R2AccessKeyID,
		cfg.R2AccessKeySecret,
		cfg.R2BucketName,
		cfg.R2PublicURL,
		cfg.R2UploadTimeout,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize R2 Storage")
	}
	uploadHandler := v1.NewUploadHandler(r2Storage, cfg.MaxUploadSizeMB)

	// Catalog Module
	catalogUC := usecase.NewCatalogUsecase(catalogRepo, memCache, cfg.CacheCatalogTTL)
	catalogHandler := v1.NewCatalogHandler(catalogUC)

	// Wishlist Module
	wishlistUC := usecase.NewWishlistUsecase(wishlistRepo, catalogUC)
	wishlistHandler := v1.NewWishlistHandler(wishlistUC)

	// Booking Module
	checkoutClient := checkout.NewClient(cfg.CheckoutAPIURL, cfg.CheckoutAPIKey, cfg.CheckoutTimeout)
	bookingUC := usecase.NewBookingUsecase(catalogRepo, checkoutClient)
	bookingHandler := v1.NewBookingHandler(bookingUC)

	adminMiddleware := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(middleware.AdminMiddleware(h))
	}

	// Wishlist (Protected)
	mux.Handle("GET /api/v1/wishlist", middleware.AuthMiddleware(http.HandlerFunc(wishlistHandler.GetWishlist)))
	mux.Handle("POST /api/v1/wishlist/folder", middleware.AuthMiddleware(http.HandlerFunc(wishlistHandler.CreateFolder)))
	mux.Handle("POST /api/v1/wishlist/folder/{folderId}/item", middleware.AuthMiddleware(http.HandlerFunc(wishlistHandler.AddItem)))
	mux.Handle("DELETE /api/v1/wishlist/folder/{folderId}/item/{itemId}", middleware.AuthMiddleware(http.HandlerFunc(wishlistHandler.RemoveItem)))
	mux.Handle("DELETE /api/v1/wishlist/folder/{folderId}", middleware.AuthMiddleware(http.HandlerFunc(wishlistHandler.DeleteFolder)))

	// Catalog (Public)
	mux.HandleFunc("GET /api/v1/listings", catalogHandler.ListListings)
	mux.HandleFunc("GET /api/v1/listings/{id}", catalogHandler.GetListing)
	mux.HandleFunc("GET /api/v1/experiences/{id}", catalogHandler.GetExperience)

	// Catalog (Admin)
	mux.Handle("POST /api/v1/admin/listings", adminMiddleware(catalogHandler.CreateListing))
	mux.Handle("POST /api/v1/admin/experiences", adminMiddleware(catalogHandler.CreateExperience))

	// Uploads (Admin)
	mux.Handle("POST /api/v1/upload", adminMiddleware(uploadHandler.UploadFile))
	mux.Handle("DELETE /api/v1/upload", adminMiddleware(uploadHandler.DeleteFile))

	// Booking (Protected)
	mux.Handle("POST /api/v1/bookings/checkout", middleware.AuthMiddleware(http.HandlerFunc(bookingHandler.StartCheckout)))

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok", "db": "connected"}`))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Support root health check for Load Balancers

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Initialize Rate Limiter with lifecycle management
	// 50 req/s, burst 100, cleanup every minute, TTL 3 minutes
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		50,            // requests per second
		100,           // burst
		time.Minute,   // cleanup period
		3*time.Minute, // client TTL
	)

	// Apply CORS (with config injection), Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	log.Info().Msgf("Server starting on %s", addr)

	// Wait for interrupt signal via channel
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	pgxPool.Close()
	log.Info().Msg("Server exited properly")
}
