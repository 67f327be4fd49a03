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

	"github.com/fatih/color"

	"gollmf-backend/internal/config"
	"gollmf-backend/internal/handlers"
	"gollmf-backend/internal/models"
	"gollmf-backend/internal/router"
	"gollmf-backend/internal/services"
)

func main() {
	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldYellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()

	log.Println("🚀 Starting GOLLMF Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize OpenAI Provider ────
	provider := services.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAITimeout)
	if cfg.HasOpenAIKey() {
		log.Printf("✓ OpenAI client initialized (model %s)", cfg.OpenAIModel)
	} else {
		log.Println(boldYellow("✗ OPENAI_API_KEY not set, chat requests will fail until it is configured"))
	}

	// ──── Step 3: Load Course ────
	var course *models.Course
	if c, err := services.LoadCourse(cfg.CourseFile); err != nil {
		log.Printf("✗ Course not loaded: %v", err)
	} else {
		course = c
		log.Printf("✓ Course loaded: %s (%d holes)", course.CourseName, len(course.Holes))
	}

	// ──── Initialize Services ────
	relayService := services.NewRelayService(provider, services.GenerationParams{
		Model:       cfg.OpenAIModel,
		MaxTokens:   cfg.OpenAIMaxTokens,
		Temperature: float32(cfg.OpenAITemperature),
	})
	courseService := services.NewCourseService(course)

	// ──── Initialize Handlers ────
	chatHandler := handlers.NewChatHandler(relayService)
	healthHandler := handlers.NewHealthHandler(cfg.HasOpenAIKey())
	courseHandler := handlers.NewCourseHandler(courseService)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(
		chatHandler,
		healthHandler,
		courseHandler,
		cfg.StaticDir,
		cfg.AllowedOrigins,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.OpenAITimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("%s on port %s", boldGreen("✓ GOLLMF server running"), cfg.Port)
	log.Printf("  OpenAI API Key configured: %t", cfg.HasOpenAIKey())
	log.Printf("  Open %s to play!", boldCyan(fmt.Sprintf("http://localhost:%s", cfg.Port)))

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
