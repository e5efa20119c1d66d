package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"planboard/internal/config"
	"planboard/internal/handler"
	"planboard/internal/middleware"
	"planboard/internal/repository"
	"planboard/internal/service"
	"planboard/internal/websocket"

	_ "github.com/go-kivik/kivik/v4/couchdb"

	"github.com/go-kivik/kivik/v4"
	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	couchURL := fmt.Sprintf("http://%s:%s@%s:%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
	)

	client, err := kivik.New("couch", couchURL)
	if err != nil {
		log.Fatalf("Failed to connect to CouchDB: %v", err)
	}

	exists, err := client.DBExists(context.Background(), cfg.Database.Name)
	if err != nil {
		log.Fatalf("Failed to check database existence: %v", err)
	}

	if !exists {
		if err := client.CreateDB(context.Background(), cfg.Database.Name); err != nil {
			log.Fatalf("Failed to create database: %v", err)
		}
		log.Printf("Created database: %s", cfg.Database.Name)
	}

	userRepo := repository.NewUserRepository(client, cfg.Database.Name)
	noteRepo := repository.NewNoteRepository(client, cfg.Database.Name)
	versionRepo := repository.NewNoteVersionRepository(client, cfg.Database.Name)
	bulletRepo := repository.NewBulletRepository(client, cfg.Database.Name)
	commentRepo := repository.NewCommentRepository(client, cfg.Database.Name)
	dashboardRepo := repository.NewDashboardRepository(client, cfg.Database.Name)
	widgetRepo := repository.NewWidgetRepository(client, cfg.Database.Name)

	// WebSocket Manager
	wsManager := websocket.NewManager(
		cfg.WebSocket.MaxConnPerUser,
		cfg.WebSocket.WriteWait,
		cfg.WebSocket.PongWait,
		cfg.WebSocket.PingPeriod,
	)
	go wsManager.Run()

	feed := service.NewChangeFeed(wsManager)

	devMode := cfg.Server.Env != "production"

	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.Expiration,
		cfg.JWT.RefreshTokenExpiration,
		cfg.JWT.MagicLinkExpiration,
		cfg.Auth.GuestEmail,
		cfg.Auth.AllowedEmails,
		cfg.Auth.MagicLinkBaseURL,
		devMode,
	)
	noteService := service.NewNoteService(noteRepo, versionRepo, feed)
	trashService := service.NewTrashService(noteRepo, versionRepo)
	bulletService := service.NewBulletService(bulletRepo)
	commentService := service.NewCommentService(commentRepo, noteRepo, feed)
	dashboardService := service.NewDashboardService(dashboardRepo, widgetRepo, feed)
	storageService := service.NewStorageService(cfg.Storage.PublicBaseURL)

	if err := authService.EnsureGuestUser(cfg.Auth.GuestPassword); err != nil {
		log.Fatalf("Failed to seed guest account: %v", err)
	}
	if err := bulletService.Seed(service.DefaultBulletTemplates()); err != nil {
		log.Fatalf("Failed to seed bullet library: %v", err)
	}

	wsManager.SetMessageHandler(handler.NewChangeFeedMessageHandler())

	authHandler := handler.NewAuthHandler(authService)
	noteHandler := handler.NewNoteHandler(noteService)
	trashHandler := handler.NewTrashHandler(trashService)
	bulletHandler := handler.NewBulletHandler(bulletService)
	commentHandler := handler.NewCommentHandler(commentService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	storageHandler := handler.NewStorageHandler(storageService)
	wsHandler := handler.NewWebSocketHandler(wsManager, cfg.JWT.Secret)

	r := mux.NewRouter()

	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
	))

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/guest", authHandler.LoginGuest).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/magic-link", authHandler.RequestMagicLink).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/verify", authHandler.VerifyMagicLink).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST", "OPTIONS")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret))

	protected.HandleFunc("/auth/session", authHandler.Session).Methods("GET", "OPTIONS")

	protected.HandleFunc("/bullets", bulletHandler.List).Methods("GET", "OPTIONS")

	protected.HandleFunc("/notes", noteHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/notes", noteHandler.List).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notes/{id}", noteHandler.Get).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notes/{id}", noteHandler.Update).Methods("PATCH", "PUT", "OPTIONS")
	protected.HandleFunc("/notes/{id}", noteHandler.Delete).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/notes/{id}/restore", noteHandler.Restore).Methods("POST", "OPTIONS")
	protected.HandleFunc("/notes/{id}/permanent", noteHandler.PermanentDelete).Methods("DELETE", "OPTIONS")

	protected.HandleFunc("/notes/{id}/versions", noteHandler.CreateVersion).Methods("POST", "OPTIONS")
	protected.HandleFunc("/notes/{id}/versions", noteHandler.ListVersions).Methods("GET", "OPTIONS")
	protected.HandleFunc("/versions/{id}", noteHandler.DeleteVersion).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/versions/{id}/restore", noteHandler.RestoreVersion).Methods("POST", "OPTIONS")
	protected.HandleFunc("/versions/{id}/permanent", noteHandler.PermanentDeleteVersion).Methods("DELETE", "OPTIONS")

	protected.HandleFunc("/trash", trashHandler.List).Methods("GET", "OPTIONS")
	protected.HandleFunc("/trash/notes", trashHandler.ListNotes).Methods("GET", "OPTIONS")
	protected.HandleFunc("/trash/versions", trashHandler.ListVersions).Methods("GET", "OPTIONS")

	protected.HandleFunc("/notes/{id}/comments", commentHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/notes/{id}/comments", commentHandler.ListByNote).Methods("GET", "OPTIONS")
	protected.HandleFunc("/comments/{id}", commentHandler.Update).Methods("PATCH", "PUT", "OPTIONS")
	protected.HandleFunc("/comments/{id}", commentHandler.Delete).Methods("DELETE", "OPTIONS")

	protected.HandleFunc("/dashboards", dashboardHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/dashboards", dashboardHandler.List).Methods("GET", "OPTIONS")
	protected.HandleFunc("/dashboards/{id}", dashboardHandler.Get).Methods("GET", "OPTIONS")
	protected.HandleFunc("/dashboards/{id}", dashboardHandler.Update).Methods("PATCH", "PUT", "OPTIONS")
	protected.HandleFunc("/dashboards/{id}", dashboardHandler.Delete).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/dashboards/{id}/tabs", dashboardHandler.ListTabs).Methods("GET", "OPTIONS")
	protected.HandleFunc("/dashboards/{id}/tabs", dashboardHandler.CreateTab).Methods("POST", "OPTIONS")
	protected.HandleFunc("/tabs/{id}", dashboardHandler.UpdateTab).Methods("PATCH", "PUT", "OPTIONS")
	protected.HandleFunc("/tabs/{id}", dashboardHandler.DeleteTab).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/tabs/{id}/widgets", dashboardHandler.CreateWidget).Methods("POST", "OPTIONS")
	protected.HandleFunc("/widgets/layouts", dashboardHandler.UpdateLayouts).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/widgets/{id}", dashboardHandler.UpdateWidget).Methods("PATCH", "PUT", "OPTIONS")
	protected.HandleFunc("/widgets/{id}", dashboardHandler.DeleteWidget).Methods("DELETE", "OPTIONS")

	protected.HandleFunc("/storage/public-url", storageHandler.PublicURL).Methods("GET", "OPTIONS")

	r.HandleFunc("/ws", wsHandler.HandleConnection)

	// Health endpoint
	r.HandleFunc("/health", healthHandler).Methods("GET")
	r.HandleFunc("/", rootHandler).Methods("GET")

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting Planboard Server on %s (env: %s)", addr, cfg.Server.Env)
		log.Printf("Connected to CouchDB at %s:%s", cfg.Database.Host, cfg.Database.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"planboard-server"}`))
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"service":"planboard-server","docs":"/api/v1"}`))
}
