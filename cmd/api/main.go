package main

import (
	"os"

	"github.com/examplatform/backend/internal/pkg/logger"
	"github.com/examplatform/backend/internal/server"
)

// @title Exam Platform API
// @version 1.0
// @description Course, exam and result management with role-based access.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}
