package models

// PollKind discriminates the outcome of a wallet poll.
type PollKind int

const (
	// PollFound means a heartbeat transaction was found.
	PollFound PollKind = iota
	// PollUnmatched means the indexer returned transactions but none of
	// them carried the heartbeat signature.
	PollUnmatched
	// PollEmpty means the indexer returned no transactions at all.
	PollEmpty
	// PollFailed means the indexer query itself failed.
	PollFailed
)

// PollResult is the outcome of polling a single wallet.
type PollResult struct {
	Kind PollKind
	// Timestamp is the round time of the heartbeat, set only for PollFound.
	Timestamp int64
	// DisplayTime is the human readable form of Timestamp, set only for
	// PollFound.
	DisplayTime string
}

// EventKind classifies the state of a wallet after a poll.
type EventKind int

const (
	// EventGood means the wallet heartbeat arrived on time.
	EventGood EventKind = iota
	// EventWarning means the wallet appears to have gone silent.
	EventWarning
	// EventUnknown means the poll was inconclusive. Unknown events are
	// logged and never dispatched.
	EventUnknown
)

// String implements fmt.Stringer for log output.
func (e EventKind) String() string {
	switch e {
	case EventGood:
		return "Good"
	case EventWarning:
		return "Warning"
	default:
		return "Unknown"
	}
}

// WalletEvent is the classified outcome of one wallet poll cycle.
type WalletEvent struct {
	Kind EventKind
	// Hours is how many hours the wallet appears to have been silent,
	// meaningful for Warning events only. Zero means the duration could
	// not be determined.
	Hours int
}
