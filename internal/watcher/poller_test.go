package watcher

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/adambennett/Planetwatcher-Server/internal/models"
)

func TestPoll_FindsMostRecentHeartbeat(t *testing.T) {
	newer := time.Date(2022, time.June, 15, 10, 0, 0, 0, time.Local)
	older := time.Date(2022, time.June, 15, 8, 0, 0, 0, time.Local)
	idx := &fakeIndexer{transactions: map[string][]models.Transaction{
		// Newest first, as the indexer orders its results.
		"AAA": {heartbeatTx(newer), heartbeatTx(older)},
	}}
	w := newTestWatcher(&fakeRepo{}, idx, nil)

	result := w.poll(context.Background(), &models.Wallet{ID: uuid.New(), Address: "AAA"})

	assert.Equal(t, models.PollFound, result.Kind)
	assert.Equal(t, newer.Unix(), result.Timestamp)
	assert.Equal(t, formatDisplayTime(newer.Unix()), result.DisplayTime)
}

func TestPoll_SkipsTransactionsWithoutTheSignature(t *testing.T) {
	at := time.Date(2022, time.June, 15, 10, 0, 0, 0, time.Local)
	idx := &fakeIndexer{transactions: map[string][]models.Transaction{
		"AAA": {
			// Plain payment, no asset transfer sub-record.
			{RoundTime: at.Add(time.Minute).Unix()},
			// Right asset, nonzero amount.
			{RoundTime: at.Add(30 * time.Second).Unix(), AssetTransfer: &models.AssetTransfer{AssetID: testAssetID, Amount: 7}},
			// Zero amount, wrong asset.
			{RoundTime: at.Add(15 * time.Second).Unix(), AssetTransfer: &models.AssetTransfer{AssetID: 99, Amount: 0}},
			heartbeatTx(at),
		},
	}}
	w := newTestWatcher(&fakeRepo{}, idx, nil)

	result := w.poll(context.Background(), &models.Wallet{ID: uuid.New(), Address: "AAA"})

	assert.Equal(t, models.PollFound, result.Kind)
	assert.Equal(t, at.Unix(), result.Timestamp)
}

func TestPoll_UnmatchedActivity(t *testing.T) {
	idx := &fakeIndexer{transactions: map[string][]models.Transaction{
		"AAA": {{RoundTime: time.Now().Unix(), AssetTransfer: &models.AssetTransfer{AssetID: 99, Amount: 3}}},
	}}
	w := newTestWatcher(&fakeRepo{}, idx, nil)

	result := w.poll(context.Background(), &models.Wallet{ID: uuid.New(), Address: "AAA"})
	assert.Equal(t, models.PollUnmatched, result.Kind)
}

func TestPoll_NoTransactionsAtAll(t *testing.T) {
	w := newTestWatcher(&fakeRepo{}, &fakeIndexer{}, nil)
	result := w.poll(context.Background(), &models.Wallet{ID: uuid.New(), Address: "AAA"})
	assert.Equal(t, models.PollEmpty, result.Kind)
}

func TestPoll_IndexerFailure(t *testing.T) {
	idx := &fakeIndexer{errs: map[string]error{"AAA": assert.AnError}}
	w := newTestWatcher(&fakeRepo{}, idx, nil)

	result := w.poll(context.Background(), &models.Wallet{ID: uuid.New(), Address: "AAA"})
	assert.Equal(t, models.PollFailed, result.Kind, "an indexer error is inconclusive, not unmatched")
}

func TestPoll_QueriesFromLastConnectedDay(t *testing.T) {
	idx := &fakeIndexer{}
	w := newTestWatcher(&fakeRepo{}, idx, nil)
	last := time.Date(2022, time.March, 7, 18, 0, 0, 0, time.Local).Unix()

	w.poll(context.Background(), &models.Wallet{ID: uuid.New(), Address: "AAA", LastConnected: &last})

	assert.Equal(t, "2022-03-07", idx.afterDates["AAA"])
}
