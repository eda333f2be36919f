package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"autoschool/internal/auth"
	"autoschool/internal/authz"
	"autoschool/internal/groups"
	"autoschool/internal/lectures"
	"autoschool/internal/models"
	"autoschool/internal/results"
	"autoschool/internal/tests"
	"autoschool/pkg/database"
	"autoschool/pkg/storage"
	"autoschool/pkg/tokenstore"

	"github.com/gorilla/mux"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize database
	dbConfig := &database.Config{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
	}

	db, err := database.NewPostgresDB(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Grant{},
		&models.Group{},
		&models.Membership{},
		&models.Lecture{},
		&models.LectureImage{},
		&models.Test{},
		&models.Question{},
		&models.Answer{},
		&models.TestResult{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Token revocation store: Redis when configured, in-process otherwise
	var tokens tokenstore.Store = tokenstore.NewMemoryStore()
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		tokens = tokenstore.NewRedisStore(addr)
	}

	// Media store for uploaded images
	mediaRoot := os.Getenv("MEDIA_ROOT")
	if mediaRoot == "" {
		mediaRoot = "./media"
	}
	media := storage.NewLocalStore(mediaRoot)

	// Initialize repositories
	authRepo := auth.NewRepository(db)
	groupRepo := groups.NewRepository(db)
	lectureRepo := lectures.NewRepository(db)
	testRepo := tests.NewRepository(db)
	resultRepo := results.NewRepository(db)

	// Initialize services
	jwtSecret := os.Getenv("JWT_SECRET")
	authService := auth.NewService(authRepo, tokens, jwtSecret)
	groupService := groups.NewService(groupRepo)
	lectureService := lectures.NewService(lectureRepo, media)
	testService := tests.NewService(testRepo, media)
	resultService := results.NewService(resultRepo)

	// Initialize handlers
	authHandler := auth.NewHandler(authService)
	groupHandler := groups.NewHandler(groupService)
	lectureHandler := lectures.NewHandler(lectureService)
	testHandler := tests.NewHandler(testService)
	resultHandler := results.NewHandler(resultService)

	// Setup router
	router := mux.NewRouter()

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	handler := corsMiddleware.Handler(router)

	// Login is the only route that does not require a token
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Uploaded images are served straight from the media root
	router.PathPrefix("/media/").Handler(
		http.StripPrefix("/media/", http.FileServer(http.Dir(mediaRoot))))

	api := router.PathPrefix("/api").Subrouter()
	api.Use(auth.JWTMiddleware(jwtSecret, authRepo, tokens))

	adminOrInstructor := auth.Require(authz.IsAdminOrInstructor)
	adminOrReadOnly := auth.RequireMethodAware(authz.IsAdminOrReadOnly)

	api.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST", "OPTIONS")

	// Users: creation is gated per-role inside the service, the rest of the
	// surface is admin-or-read-only
	api.HandleFunc("/users", authHandler.CreateUser).Methods("POST", "OPTIONS")
	api.HandleFunc("/users", adminOrReadOnly(authHandler.ListUsers)).Methods("GET")
	api.HandleFunc("/users/{id:[0-9]+}", adminOrReadOnly(authHandler.GetUser)).Methods("GET")
	api.HandleFunc("/users/{id:[0-9]+}", adminOrReadOnly(authHandler.DeleteUser)).Methods("DELETE")

	// Groups and memberships
	api.HandleFunc("/groups", adminOrInstructor(groupHandler.Create)).Methods("POST", "OPTIONS")
	api.HandleFunc("/groups", adminOrInstructor(groupHandler.List)).Methods("GET")
	api.HandleFunc("/groups/{id:[0-9]+}", adminOrInstructor(groupHandler.Get)).Methods("GET")
	api.HandleFunc("/groups/{id:[0-9]+}", adminOrInstructor(groupHandler.Delete)).Methods("DELETE")
	api.HandleFunc("/groups/{id:[0-9]+}/add_student", adminOrInstructor(groupHandler.AddStudent)).Methods("POST", "OPTIONS")
	api.HandleFunc("/groups/{id:[0-9]+}/remove_student", adminOrInstructor(groupHandler.RemoveStudent)).Methods("DELETE")

	// Lectures: reads are role-filtered in the service, mutations are gated
	api.HandleFunc("/lectures", adminOrInstructor(lectureHandler.Create)).Methods("POST", "OPTIONS")
	api.HandleFunc("/lectures", lectureHandler.List).Methods("GET")
	api.HandleFunc("/lectures/{id:[0-9]+}", lectureHandler.Get).Methods("GET")
	api.HandleFunc("/lectures/{id:[0-9]+}", adminOrInstructor(lectureHandler.Delete)).Methods("DELETE")
	api.HandleFunc("/lectures/{id:[0-9]+}/add_image", adminOrInstructor(lectureHandler.AddImage)).Methods("POST", "OPTIONS")

	// Tests
	api.HandleFunc("/tests", adminOrInstructor(testHandler.Create)).Methods("POST", "OPTIONS")
	api.HandleFunc("/tests", testHandler.List).Methods("GET")
	api.HandleFunc("/tests/{id:[0-9]+}", testHandler.Get).Methods("GET")
	api.HandleFunc("/tests/{id:[0-9]+}", adminOrInstructor(testHandler.Delete)).Methods("DELETE")
	api.HandleFunc("/tests/{id:[0-9]+}/add_question", adminOrInstructor(testHandler.AddQuestion)).Methods("POST", "OPTIONS")
	api.HandleFunc("/tests/{id:[0-9]+}/add_answer", adminOrInstructor(testHandler.AddAnswer)).Methods("POST", "OPTIONS")
	api.HandleFunc("/tests/{id:[0-9]+}/submit_test", testHandler.Submit).Methods("POST", "OPTIONS")

	// Results ledger, read-only
	api.HandleFunc("/results", resultHandler.List).Methods("GET")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown setup
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server shutdown gracefully")
}
