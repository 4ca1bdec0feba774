package models

import "context"

// Transaction is a single transaction record as returned by the indexer.
// The indexer returns the records newest-relevant-first per its own
// contract, so the first matching record is the most recent one.
type Transaction struct {
	// RoundTime is the unix timestamp of the round the transaction was
	// confirmed in.
	RoundTime int64 `json:"round-time"`
	// AssetTransfer is present only for asset transfer transactions.
	AssetTransfer *AssetTransfer `json:"asset-transfer-transaction,omitempty"`
}

// AssetTransfer is the asset transfer sub-record of a transaction.
type AssetTransfer struct {
	AssetID uint64 `json:"asset-id"`
	Amount  uint64 `json:"amount"`
}

// IndexerService represents a blockchain indexer that can be queried for
// wallet activity.
type IndexerService interface {
	// SearchTransactions returns the transactions involving address at or
	// after afterDate (YYYY-MM-DD).
	SearchTransactions(ctx context.Context, address, afterDate string) ([]Transaction, error)
}
