package http_api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adambennett/Planetwatcher-Server/internal/models"
)

// TokenRequest carries the opaque channel token of a subscriber.
type TokenRequest struct {
	Token string `json:"Token" binding:"required"`
}

// PlatformDetails describes the registering device.
type PlatformDetails struct {
	IsAndroid bool `json:"IsAndroid"`
}

// RegisterDeviceRequest represents the JSON body for device registration.
// Platform overrides the IsAndroid switch when set; the mobile apps only
// send PlatformDetails.
type RegisterDeviceRequest struct {
	Token           string          `json:"Token" binding:"required"`
	PlatformDetails PlatformDetails `json:"PlatformDetails"`
	Platform        string          `json:"Platform" binding:"omitempty,oneof=android ios telegram"`
}

// WatchUpdate is one subscriber-to-wallet link in an update request.
type WatchUpdate struct {
	WalletID uuid.UUID `json:"walletId" binding:"required"`
}

// UpdateWatchesRequest represents the JSON body for replacing a
// subscriber's watch set.
type UpdateWatchesRequest struct {
	Token         string        `json:"Token" binding:"required"`
	WalletWatches []WatchUpdate `json:"WalletWatches"`
}

// manualRefresh is a handler for the /manual-refresh endpoint. It triggers
// one scan cycle; the per-wallet polls run staggered in the background.
func (s *HTTPServer) manualRefresh(c *gin.Context) {
	s.watcher.RunScanCycle()
	c.Status(http.StatusOK)
}

// getWallets is a handler for the /get-wallets endpoint.
func (s *HTTPServer) getWallets(c *gin.Context) {
	wallets, err := s.watcher.ListWallets()
	if err != nil {
		s.logger.Error("Failed to list wallets ", "error ", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(wallets) == 0 {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, wallets)
}

// checkRegistration is a handler for the /check-registration endpoint.
func (s *HTTPServer) checkRegistration(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("Invalid request body ", "error ", err)
		c.Status(http.StatusBadRequest)
		return
	}

	registered, err := s.watcher.IsRegistered(req.Token)
	if err != nil {
		s.logger.Error("Failed to check registration ", "error ", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if !registered {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}

// registerDevice is a handler for the /register-device endpoint.
func (s *HTTPServer) registerDevice(c *gin.Context) {
	var req RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("Invalid request body ", "error ", err)
		c.Status(http.StatusBadRequest)
		return
	}

	platform := models.Platform(req.Platform)
	if platform == "" {
		if req.PlatformDetails.IsAndroid {
			platform = models.PlatformAndroid
		} else {
			platform = models.PlatformIOS
		}
	}

	if err := s.watcher.RegisterDevice(req.Token, platform); err != nil {
		s.logger.Error("Failed to register device ", "error ", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

// getWalletWatches is a handler for the /get-wallet-watches endpoint.
func (s *HTTPServer) getWalletWatches(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("Invalid request body ", "error ", err)
		c.Status(http.StatusBadRequest)
		return
	}

	watches, err := s.watcher.WatchesForToken(req.Token)
	if err != nil {
		s.logger.Error("Failed to get wallet watches ", "error ", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(watches) == 0 {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, watches)
}

// updateWalletWatches is a handler for the /update-wallet-watches endpoint.
// The subscriber's existing watch set is replaced wholesale.
func (s *HTTPServer) updateWalletWatches(c *gin.Context) {
	var req UpdateWatchesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("Invalid request body ", "error ", err)
		c.Status(http.StatusBadRequest)
		return
	}

	walletIDs := make([]uuid.UUID, 0, len(req.WalletWatches))
	for _, watch := range req.WalletWatches {
		walletIDs = append(walletIDs, watch.WalletID)
	}

	if err := s.watcher.ReplaceWatchesForToken(req.Token, walletIDs); err != nil {
		s.logger.Error("Failed to update wallet watches ", "error ", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}
