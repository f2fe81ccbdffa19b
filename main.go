package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"cozyconnect_server/config"
	"cozyconnect_server/logger"
	"cozyconnect_server/routes"
	"cozyconnect_server/services"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("starting cozyconnect server", zap.String("env", cfg.App.Env))

	// Record store and object storage clients
	dynamoClient := services.InitializeDynamoDBClient(cfg.AWS.Region)
	dynamoService := &services.DynamoService{Client: dynamoClient, Log: appLogger}
	s3Service := &services.S3Service{
		Client: services.InitializeS3Client(cfg.AWS.Region),
		Bucket: cfg.AWS.S3Bucket,
		Region: cfg.AWS.Region,
	}

	// Optional profile-list cache
	var cache *redis.Client
	if cfg.Redis.Addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
	}

	// Services
	authService := services.NewAuthService(
		cfg.Auth.GoogleClientID,
		cfg.Auth.GoogleClientSecret,
		cfg.Auth.GoogleRedirectURL,
		cfg.Auth.JWTSecret,
		cfg.Auth.TokenLifespan,
		appLogger,
	)
	emailService := services.NewEmailService(cfg.Email.ResendAPIKey, cfg.Email.From, appLogger)

	profileStore := &services.ProfileDynamoStore{Dynamo: dynamoService}
	profileService := &services.ProfileService{
		Store:    profileStore,
		Log:      appLogger,
		Cache:    cache,
		CacheTTL: cfg.Profiles.CacheTTL,
		Featured: cfg.Profiles.Featured,
		Hidden:   cfg.Profiles.Hidden,
	}
	matchService := &services.MatchService{
		Matches:  &services.MatchDynamoStore{Dynamo: dynamoService},
		Profiles: profileService,
		Log:      appLogger,
	}
	linkService := &services.LinkService{
		Store: profileStore,
		Email: emailService,
		Log:   appLogger,
	}
	feedbackService := &services.FeedbackService{
		Store: &services.FeedbackDynamoStore{Dynamo: dynamoService},
		Log:   appLogger,
	}

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to Cozy Connect")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}).Methods("GET")

	// Register routes
	routes.RegisterAuthRoutes(r, authService)
	routes.RegisterProfileRoutes(r, profileService, linkService, authService)
	routes.RegisterMatchRoutes(r, matchService, profileService, authService)
	routes.RegisterUploadRoutes(r, s3Service, authService)
	routes.RegisterFeedbackRoutes(r, feedbackService)

	// Add CORS middleware
	allowedOrigins := cfg.App.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	appLogger.Info("listening", zap.String("port", cfg.App.Port))
	if err := http.ListenAndServe(":"+cfg.App.Port, corsHandler); err != nil {
		appLogger.Fatal("server exited", err)
	}
}
