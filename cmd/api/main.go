package main

import (
	"context"
	"os"

	"github.com/yigit/learnhub/internal/pkg/logger"
	"github.com/yigit/learnhub/internal/server"
)

// @title LearnHub API
// @version 1.0
// @description Course catalog, enrollment and reporting API
// @termsOfService http://swagger.io/terms/

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	srv, err := server.NewServer(context.Background())
	if err != nil {
		// Setup functions log their own details.
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
