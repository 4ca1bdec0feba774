package models

import "github.com/google/uuid"

// WalletWatch links one subscriber to one wallet. The existence of a row
// means the subscriber wants events for that wallet; a row pointing at a
// deleted wallet or subscriber is inert and ignored at dispatch time.
type WalletWatch struct {
	// ID is the unique identifier for the watch.
	ID uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	// WalletID is the watched wallet.
	WalletID uuid.UUID `json:"wallet_id" gorm:"column:wallet_id;index"`
	// NotificationTokenID is the watching subscriber.
	NotificationTokenID uuid.UUID `json:"notification_token_id" gorm:"column:notification_token_id;index"`
}
