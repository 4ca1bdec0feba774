package watcher

import (
	"fmt"
	"time"
)

// fallbackStartDate bounds the first query for a wallet that has never
// reported a heartbeat, so first polls stay bounded instead of scanning the
// whole chain history.
const fallbackStartDate = "2021-12-05"

// startBound converts a wallet's last confirmed heartbeat into the
// after-time bound for an indexer query. Day granularity only; the indexer
// query does not need time of day.
func startBound(lastConnected *int64) string {
	if lastConnected == nil {
		return fallbackStartDate
	}
	t := time.Unix(*lastConnected, 0)
	return fmt.Sprintf("%d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}
