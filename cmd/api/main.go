package main

import (
	"os"

	"github.com/schoolhub/backend/internal/pkg/logger"
	"github.com/schoolhub/backend/internal/server"
)

// @title           SchoolHub API
// @version         1.0
// @description     REST backend for the SchoolHub school-management platform.

// @contact.name   SchoolHub Team
// @contact.email  support@schoolhub.app

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
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
