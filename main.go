// File: pinkmint/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"pinkmint/config"
	"pinkmint/database"
	"pinkmint/handlers"
	"pinkmint/routes"
	"pinkmint/services/booking"
	"pinkmint/services/catalog"
	"pinkmint/services/identity"
	"pinkmint/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitSessionCache()
	config.FirebaseInit()

	cat, err := catalog.Load(config.AppConfig.CatalogFile)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load catalog: %v", err)
	}

	ctx := context.Background()

	authClient, err := identity.NewFirebaseAuthClient(ctx, config.GetFirebaseApp(), config.AppConfig.FirebaseAPIKey, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize auth client: %v", err)
	}

	// Persistence gateway, selected by config.
	var repo database.BookingRepository
	switch config.AppConfig.GatewayDriver {
	case "mongo":
		database.InitDB()
		repo = database.NewMongoBookingRepo(database.MongoClient,
			config.AppConfig.DatabaseName, config.AppConfig.BookingCollection)
	default:
		repo, err = database.NewFirestoreBookingRepo(ctx, config.GetFirebaseApp(),
			config.AppConfig.BookingScope, config.AppConfig.AppID, config.AppConfig.BookingCollection)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize firestore gateway: %v", err)
		}
	}

	identityStore := utils.NewRedisIdentityStore(utils.GetSessionCacheClient(),
		time.Duration(config.AppConfig.SessionTTLMin)*time.Minute)

	sessionService := &booking.DefaultSessionService{
		AuthClient:    authClient,
		IdentityStore: identityStore,
		Repo:          repo,
		Catalog:       cat,
		AppID:         config.AppConfig.AppID,
		InitialToken:  config.AppConfig.InitialAuthToken,
		DisplayFor:    time.Duration(config.AppConfig.MessageDisplayMS) * time.Millisecond,
		Logger:        logger,
	}

	bookingHandler := handlers.NewBookingHandler(sessionService, cat, logger)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	routes.RegisterRoutes(router, bookingHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
