package handlers

import (
	"crypto/subtle"
	"log"
	"net/http"
	"sync/atomic"

	config "pricegenie-api/configs"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AdminHandler toggles maintenance mode and reports server health.
type AdminHandler struct {
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string

	maintenance atomic.Bool
	modelLoaded func() bool
}

// NewAdminHandler creates the handler. modelLoaded may be nil.
func NewAdminHandler(cfg *config.Config, modelLoaded func() bool) *AdminHandler {
	return &AdminHandler{
		AdminUsername:     cfg.AdminUsername,
		AdminPassword:     cfg.AdminPassword,
		AdminPasswordHash: cfg.AdminPasswordHash,
		modelLoaded:       modelLoaded,
	}
}

// AdminCredentials is the request body of the maintenance endpoints.
type AdminCredentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AdminHandler) StartMaintenance(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	h.maintenance.Store(true)
	log.Printf("🛠️ [admin] maintenance mode started")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Maintenance mode started"})
}

func (h *AdminHandler) StopMaintenance(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	h.maintenance.Store(false)
	log.Printf("🛠️ [admin] maintenance mode stopped")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Maintenance mode stopped"})
}

// GetHealthStatus reports maintenance mode and model availability.
func (h *AdminHandler) GetHealthStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"isMaintenanceMode": h.maintenance.Load(),
		"modelLoaded":       h.isModelLoaded(),
	})
}

// HealthCheck answers load balancer probes; 503 while in maintenance.
func (h *AdminHandler) HealthCheck(c *gin.Context) {
	if h.maintenance.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "message": "Server is in maintenance mode"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "modelLoaded": h.isModelLoaded()})
}

func (h *AdminHandler) isModelLoaded() bool {
	return h.modelLoaded != nil && h.modelLoaded()
}

func (h *AdminHandler) authorize(c *gin.Context) bool {
	var input AdminCredentials
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Username and password are required"})
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(h.AdminUsername)) == 1
	if !userOK || !h.passwordMatches(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid credentials"})
		return false
	}
	return true
}

func (h *AdminHandler) passwordMatches(password string) bool {
	if h.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(h.AdminPasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(h.AdminPassword)) == 1
}
