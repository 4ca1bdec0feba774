package watcher

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/adambennett/Planetwatcher-Server/internal/models"
)

// titleAndBody builds the notification text for an event. The wording is
// fixed; the mobile apps parse these strings.
func titleAndBody(event models.WalletEvent, wallet *models.Wallet) (string, string) {
	switch event.Kind {
	case models.EventGood:
		return wallet.DisplayName + " Connected",
			"Still connected properly as of " + wallet.LastConnectedFormatted
	case models.EventWarning:
		phoneName := wallet.PhoneName
		if phoneName == "" {
			phoneName = "This device"
		}
		var ending string
		switch {
		case event.Hours == 0:
			ending = "an unknown amount of time."
		case event.Hours == 1:
			ending = "1 hour."
		default:
			ending = fmt.Sprintf("%d hours.", event.Hours)
		}
		return wallet.DisplayName + " Warning",
			fmt.Sprintf("%s may be disconnected and has not sent data streams for %s", phoneName, ending)
	}
	return "", ""
}

// dispatch groups the eligible subscribers by platform, invokes each
// platform's sink once with the full token batch for that group, and
// stamps lastSent for every subscriber in a group whose delivery
// succeeded. A failing channel is logged and does not block the others.
func (w *Watcher) dispatch(ctx context.Context, event models.WalletEvent, wallet *models.Wallet, eligible []*models.NotificationToken) {
	if len(eligible) == 0 {
		return
	}
	title, body := titleAndBody(event, wallet)

	groups := make(map[models.Platform][]*models.NotificationToken)
	for _, token := range eligible {
		groups[token.Platform] = append(groups[token.Platform], token)
	}

	for platform, group := range groups {
		sink, ok := w.sinks[platform]
		if !ok {
			w.logger.Warn("No sink registered for platform ", platform)
			continue
		}

		values := make([]string, 0, len(group))
		ids := make([]uuid.UUID, 0, len(group))
		for _, token := range group {
			values = append(values, token.Token)
			ids = append(ids, token.ID)
		}

		if err := sink.Send(ctx, values, title, body); err != nil {
			w.logger.Error("Failed to deliver notification ", "platform ", platform, " wallet ", wallet.DisplayName, " error ", err)
			continue
		}
		w.logger.Info("Notification delivered ", "platform ", platform, " wallet ", wallet.DisplayName, " event ", event.Kind, " subscribers ", len(group))

		if err := w.repo.MarkTokensSent(ids, w.now()); err != nil {
			w.logger.Error("Failed to record last sent ", "platform ", platform, " error ", err)
		}
	}
}
