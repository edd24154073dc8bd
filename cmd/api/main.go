package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"DiabetesDiet/internal/auth"
	"DiabetesDiet/internal/database"
	"DiabetesDiet/internal/dietary"
	"DiabetesDiet/internal/foodref"
	"DiabetesDiet/internal/goals"
	"DiabetesDiet/internal/patient"
	"DiabetesDiet/internal/plan"
	"DiabetesDiet/internal/research"
	"DiabetesDiet/internal/server"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
)

func gracefulShutdown(apiServer *http.Server, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Info().Msg("shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	dbService := database.NewService()
	defer dbService.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := dbService.CreateTables(ctx); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("could not apply database schema")
	}
	cancel()

	if err := auth.InitAuth(database.Dbpool); err != nil {
		log.Fatal().Err(err).Msg("could not initialize authentication")
	}

	resolver, err := foodref.NewResolver(dbService.Queries())
	if err != nil {
		log.Fatal().Err(err).Msg("could not initialize food reference resolver")
	}

	weightsPath := os.Getenv("MODEL_WEIGHTS_PATH")
	if weightsPath == "" {
		weightsPath = "ml/weights.json"
	}
	classifier := plan.LoadClassifier(weightsPath)

	patient.InitPatients(database.Dbpool)
	dietary.InitDietary(database.Dbpool, resolver)
	goals.InitGoals(database.Dbpool)
	plan.InitPlans(database.Dbpool, classifier)
	research.InitResearch(database.Dbpool, classifier)

	apiServer := server.NewServer(dbService)

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(apiServer, done)

	log.Info().Str("addr", apiServer.Addr).Msg("starting API server")
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info().Msg("Graceful shutdown complete.")
}
