package models

import (
	"time"

	"github.com/google/uuid"
)

// Platform is a notification transport kind.
type Platform string

const (
	// PlatformAndroid delivers through FCM with a data payload.
	PlatformAndroid Platform = "android"
	// PlatformIOS delivers through FCM with an APNs payload.
	PlatformIOS Platform = "ios"
	// PlatformTelegram delivers through a bot direct message.
	PlatformTelegram Platform = "telegram"
)

// NotificationToken represents a subscribed device or chat.
type NotificationToken struct {
	// ID is the unique identifier for the subscriber.
	ID uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	// Token is the opaque channel token: an FCM registration token for
	// android/ios, a chat id for telegram.
	Token string `json:"token" gorm:"column:token;unique;not null"`
	// Platform selects the delivery channel for this subscriber.
	Platform Platform `json:"platform" gorm:"column:platform"`
	// IsEnabled gates all notifications for this subscriber.
	IsEnabled bool `json:"is_enabled" gorm:"column:is_enabled"`
	// SendStillConnected opts the subscriber in to Good notifications.
	SendStillConnected bool `json:"send_still_connected" gorm:"column:send_still_connected"`
	// NotificationInterval is the personal cooldown in minutes.
	// Nil means no cooldown.
	NotificationInterval *int `json:"notification_interval" gorm:"column:notification_interval"`
	// LastSent is when a notification was last delivered to this subscriber.
	LastSent *time.Time `json:"last_sent" gorm:"column:last_sent"`
}
