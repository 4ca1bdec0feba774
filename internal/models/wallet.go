package models

import "github.com/google/uuid"

// Wallet represents a monitored wallet in the system.
type Wallet struct {
	// ID is the unique identifier for the wallet.
	ID uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	// Address is the chain address the heartbeat transactions come from.
	Address string `json:"address" gorm:"column:address;unique;not null"`
	// LastConnected is the unix timestamp of the last confirmed heartbeat.
	// Nil until the first heartbeat is ever seen for this wallet.
	LastConnected *int64 `json:"last_connected" gorm:"column:last_connected;index"`
	// LastConnectedFormatted is the human readable form of LastConnected,
	// rendered once at write time so every channel shows the same string.
	LastConnectedFormatted string `json:"last_connected_formatted" gorm:"column:last_connected_formatted"`
	// DisplayName is the name shown in notification titles.
	DisplayName string `json:"display_name" gorm:"column:display_name"`
	// PhoneName is the name of the device streaming data for this wallet.
	PhoneName string `json:"phone_name" gorm:"column:phone_name"`
}
