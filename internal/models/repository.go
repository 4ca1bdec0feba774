package models

import (
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	ListWallets() ([]*Wallet, error)
	GetWallet(id uuid.UUID) (*Wallet, error)
	// UpdateWalletHeartbeat records a confirmed heartbeat. The write is
	// conditional: it applies only while the stored timestamp is null or
	// not newer than the given one, keeping LastConnected monotonic.
	UpdateWalletHeartbeat(id uuid.UUID, timestamp int64, formatted string) error

	ListNotificationTokens() ([]*NotificationToken, error)
	// GetNotificationTokenByValue returns nil without error when no
	// subscriber carries the token.
	GetNotificationTokenByValue(token string) (*NotificationToken, error)
	CreateNotificationToken(*NotificationToken) error
	DeleteNotificationTokenByValue(token string) error
	// MarkTokensSent stamps LastSent for every listed subscriber after a
	// successful delivery.
	MarkTokensSent(ids []uuid.UUID, at time.Time) error

	ListWatchesForWallet(walletID uuid.UUID) ([]*WalletWatch, error)
	ListWatchesForToken(tokenID uuid.UUID) ([]*WalletWatch, error)
	// ReplaceWatchesForToken atomically swaps the subscriber's watch set
	// for the given wallets.
	ReplaceWatchesForToken(tokenID uuid.UUID, walletIDs []uuid.UUID) error
}
