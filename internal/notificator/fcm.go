package notificator

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/adambennett/Planetwatcher-Server/pkg/logger"
)

// FCMNotificator delivers push notifications through Firebase Cloud
// Messaging. One instance serves one platform group: the android shape
// carries the data payload next to the notification, the ios shape carries
// the notification plus an APNs badge.
type FCMNotificator struct {
	logger *logger.Logger
	client *messaging.Client
	ios    bool
}

func NewFCMNotificator(ctx context.Context, credentialsFile string, ios bool, logger *logger.Logger) (*FCMNotificator, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase messaging: %w", err)
	}
	return &FCMNotificator{logger: logger, client: client, ios: ios}, nil
}

// Send multicasts one notification to the whole token batch.
func (f *FCMNotificator) Send(ctx context.Context, tokens []string, title, body string) error {
	message := &messaging.MulticastMessage{
		Tokens:       tokens,
		Notification: &messaging.Notification{Title: title, Body: body},
	}
	if f.ios {
		badge := 1
		message.APNS = &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Badge: &badge},
			},
		}
	} else {
		message.Data = map[string]string{"title": title, "body": body}
	}

	response, err := f.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send multicast message: %w", err)
	}
	if response.FailureCount > 0 {
		f.logger.Warn("Some push deliveries failed ", "failures ", response.FailureCount, " successes ", response.SuccessCount)
	}
	return nil
}
