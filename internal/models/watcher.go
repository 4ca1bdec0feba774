package models

import "github.com/google/uuid"

type WatcherI interface {
	// Start runs the scan scheduler and blocks until Shutdown is called.
	Start() error

	// Shutdown stops the scheduler and waits for in-flight wallet
	// pipelines to finish.
	Shutdown()

	// RunScanCycle polls every tracked wallet once, staggering the polls
	// to avoid bursting the indexer. It returns without waiting for the
	// per-wallet pipelines.
	RunScanCycle()

	// RegisterDevice (re)registers a subscriber token and subscribes it to
	// every tracked wallet.
	RegisterDevice(token string, platform Platform) error

	// IsRegistered reports whether the token belongs to a subscriber.
	IsRegistered(token string) (bool, error)

	ListWallets() ([]*Wallet, error)

	// WatchesForToken lists the watches held by the subscriber carrying
	// the token.
	WatchesForToken(token string) ([]*WalletWatch, error)

	// ReplaceWatchesForToken swaps the subscriber's watch set for the
	// given wallets.
	ReplaceWatchesForToken(token string, walletIDs []uuid.UUID) error
}
