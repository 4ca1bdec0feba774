package http_api

// routes sets up the routes for the HTTP server.
func (s *HTTPServer) routes() {
	s.router.GET("/manual-refresh", s.manualRefresh)
	s.router.GET("/get-wallets", s.getWallets)

	s.router.POST("/check-registration", s.checkRegistration)
	s.router.POST("/register-device", s.registerDevice)
	s.router.POST("/get-wallet-watches", s.getWalletWatches)
	s.router.POST("/update-wallet-watches", s.updateWalletWatches)
}
