package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/studypal/backend/internal/assistant"
	"github.com/studypal/backend/internal/auth"
	"github.com/studypal/backend/internal/database"
	"github.com/studypal/backend/internal/middleware"
	"github.com/studypal/backend/internal/progress"
	"github.com/studypal/backend/internal/quiz"
	"github.com/studypal/backend/internal/storage"
	"github.com/studypal/backend/internal/studysets"
	"github.com/studypal/backend/internal/users"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize stores and handlers
	gateway := storage.NewPostgresGateway(db)
	userStore := users.NewStore(gateway)

	authHandler := auth.NewHandler(userStore)
	setsHandler := studysets.NewHandler(userStore)
	quizHandler := quiz.NewHandler(userStore)
	progressHandler := progress.NewHandler(userStore)
	assistantHandler := assistant.NewHandler(assistant.NewAssistant())

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	setsHandler.RegisterRoutes(protected)
	quizHandler.RegisterRoutes(protected)
	progressHandler.RegisterRoutes(protected)
	assistantHandler.RegisterRoutes(protected)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
