package watcher

import (
	"fmt"
	"time"

	"github.com/adambennett/Planetwatcher-Server/internal/models"
)

// formatDisplayTime renders a heartbeat timestamp the way the mobile apps
// expect it: M/D/YYYY H:MM, minutes zero-padded.
func formatDisplayTime(timestamp int64) string {
	t := time.Unix(timestamp, 0)
	return fmt.Sprintf("%d/%d/%d %d:%02d", int(t.Month()), t.Day(), t.Year(), t.Hour(), t.Minute())
}

// classify turns a poll result into a wallet event, applying the heartbeat
// update when the result carries a timestamp at least as new as the stored
// one.
//
// The lateness check compares hour-of-day values, not elapsed time: a
// heartbeat at 23:00 checked at 01:00 the next day classifies Good because
// 23 is not an earlier hour than 1. Inherited behavior the mobile apps are
// tuned to; see the day-boundary test before changing it.
func (w *Watcher) classify(wallet *models.Wallet, result models.PollResult, now time.Time) models.WalletEvent {
	switch result.Kind {
	case models.PollFailed:
		w.logger.Info("Skipping classification after failed poll ", "wallet ", wallet.DisplayName)
		return models.WalletEvent{Kind: models.EventUnknown}
	case models.PollEmpty:
		w.logger.Info("No activity found ", "wallet ", wallet.DisplayName)
		return models.WalletEvent{Kind: models.EventUnknown}
	case models.PollUnmatched:
		w.logger.Info("Activity without heartbeat signature ", "wallet ", wallet.DisplayName)
		return models.WalletEvent{
			Kind:  models.EventWarning,
			Hours: hoursSinceLastStream(wallet.LastConnected, now),
		}
	}

	if wallet.LastConnected == nil || result.Timestamp >= *wallet.LastConnected {
		if err := w.repo.UpdateWalletHeartbeat(wallet.ID, result.Timestamp, result.DisplayTime); err != nil {
			w.logger.Error("Failed to update wallet heartbeat ", "wallet ", wallet.DisplayName, " error ", err)
			return models.WalletEvent{Kind: models.EventUnknown}
		}
	}

	heartbeat := time.Unix(result.Timestamp, 0)
	if heartbeat.Hour() < now.Hour() {
		difference := now.Hour() - heartbeat.Hour()
		if difference > 1 {
			return models.WalletEvent{Kind: models.EventWarning, Hours: difference}
		}
	}
	return models.WalletEvent{Kind: models.EventGood}
}

// hoursSinceLastStream estimates wallet silence from the hour-of-day gap
// between now and the last confirmed heartbeat, floored at zero. Zero means
// the duration could not be determined.
func hoursSinceLastStream(lastConnected *int64, now time.Time) int {
	if lastConnected == nil {
		return 0
	}
	hours := now.Hour() - time.Unix(*lastConnected, 0).Hour()
	if hours < 0 {
		return 0
	}
	return hours
}
