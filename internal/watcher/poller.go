package watcher

import (
	"context"

	"github.com/adambennett/Planetwatcher-Server/internal/models"
)

// poll queries the indexer for activity on the wallet since its last
// confirmed heartbeat and reduces the transaction list to a single
// PollResult. A failed query is inconclusive, not evidence of silence.
func (w *Watcher) poll(ctx context.Context, wallet *models.Wallet) models.PollResult {
	txs, err := w.indexer.SearchTransactions(ctx, wallet.Address, startBound(wallet.LastConnected))
	if err != nil {
		w.logger.Error("Failed to search transactions ", "wallet ", wallet.DisplayName, " error ", err)
		return models.PollResult{Kind: models.PollFailed}
	}

	if len(txs) == 0 {
		return models.PollResult{Kind: models.PollEmpty}
	}

	// The indexer returns newest-relevant-first, so the first transaction
	// carrying the heartbeat signature is the most recent heartbeat.
	for _, tx := range txs {
		transfer := tx.AssetTransfer
		if transfer != nil && transfer.AssetID == w.assetID && transfer.Amount == 0 {
			return models.PollResult{
				Kind:        models.PollFound,
				Timestamp:   tx.RoundTime,
				DisplayTime: formatDisplayTime(tx.RoundTime),
			}
		}
	}

	return models.PollResult{Kind: models.PollUnmatched}
}
