package watcher

import (
	"time"

	"github.com/google/uuid"

	"github.com/adambennett/Planetwatcher-Server/internal/models"
)

// selectEligible filters the subscriber set down to those who should
// receive the given event for the watched wallet. Predicates run in order
// and a subscriber drops out at the first failing one: enabled, Good
// opt-in, personal cooldown, watch membership.
func selectEligible(event models.WalletEvent, tokens []*models.NotificationToken, watches []*models.WalletWatch, now time.Time) []*models.NotificationToken {
	watched := make(map[uuid.UUID]bool, len(watches))
	for _, watch := range watches {
		watched[watch.NotificationTokenID] = true
	}

	var eligible []*models.NotificationToken
	for _, token := range tokens {
		if !token.IsEnabled {
			continue
		}
		if event.Kind == models.EventGood && !token.SendStillConnected {
			continue
		}
		if token.LastSent != nil && token.NotificationInterval != nil {
			// Minutes component of the gap only, so the counter wraps
			// every hour. Inherited behavior, pinned in tests.
			minutesSince := int(now.Sub(*token.LastSent).Minutes()) % 60
			if minutesSince <= *token.NotificationInterval {
				continue
			}
		}
		if !watched[token.ID] {
			continue
		}
		eligible = append(eligible, token)
	}
	return eligible
}
