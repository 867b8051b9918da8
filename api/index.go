package handler

import (
	"log"
	"net/http"
	"sync"

	config "pricegenie-api/configs"
	"pricegenie-api/pkg/app"

	"github.com/gin-gonic/gin"
)

var (
	router *gin.Engine
	once   sync.Once
)

// setupApp builds the router once per function instance. Configuration comes
// from the platform's environment variables, so no .env file is read.
func setupApp() *gin.Engine {
	once.Do(func() {
		log.Printf("🟢 [setupApp] Initializing Gin application")
		cfg := config.LoadConfig()
		router = app.New(cfg)
	})
	return router
}

// Handler is the serverless entry point for every request.
func Handler(w http.ResponseWriter, r *http.Request) {
	setupApp().ServeHTTP(w, r)
}
