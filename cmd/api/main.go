package main

import (
	"os"

	"github.com/yigit/tcasystem/internal/pkg/logger"
	"github.com/yigit/tcasystem/internal/server"
)

// @title Teacher Course Allotment API
// @version 1.0
// @description Assigns courses to teachers and prints allotment reports

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
