package watcher

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adambennett/Planetwatcher-Server/internal/models"
)

func TestTitleAndBody(t *testing.T) {
	wallet := &models.Wallet{
		DisplayName:            "Sensor A",
		PhoneName:              "Garage Phone",
		LastConnectedFormatted: "3/7/2022 9:05",
	}

	tests := []struct {
		name      string
		event     models.WalletEvent
		wallet    *models.Wallet
		wantTitle string
		wantBody  string
	}{
		{
			name:      "good",
			event:     models.WalletEvent{Kind: models.EventGood},
			wallet:    wallet,
			wantTitle: "Sensor A Connected",
			wantBody:  "Still connected properly as of 3/7/2022 9:05",
		},
		{
			name:      "warning plural hours",
			event:     models.WalletEvent{Kind: models.EventWarning, Hours: 3},
			wallet:    wallet,
			wantTitle: "Sensor A Warning",
			wantBody:  "Garage Phone may be disconnected and has not sent data streams for 3 hours.",
		},
		{
			name:      "warning single hour",
			event:     models.WalletEvent{Kind: models.EventWarning, Hours: 1},
			wallet:    wallet,
			wantBody:  "Garage Phone may be disconnected and has not sent data streams for 1 hour.",
			wantTitle: "Sensor A Warning",
		},
		{
			name:      "warning unknown duration",
			event:     models.WalletEvent{Kind: models.EventWarning, Hours: 0},
			wallet:    wallet,
			wantTitle: "Sensor A Warning",
			wantBody:  "Garage Phone may be disconnected and has not sent data streams for an unknown amount of time.",
		},
		{
			name:      "warning without a phone name",
			event:     models.WalletEvent{Kind: models.EventWarning, Hours: 2},
			wallet:    &models.Wallet{DisplayName: "Sensor B"},
			wantTitle: "Sensor B Warning",
			wantBody:  "This device may be disconnected and has not sent data streams for 2 hours.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, body := titleAndBody(tt.event, tt.wallet)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestDispatch_GroupsByPlatform(t *testing.T) {
	androidSink := &fakeSink{}
	iosSink := &fakeSink{}
	repo := &fakeRepo{}
	w := newTestWatcher(repo, &fakeIndexer{}, map[models.Platform]models.Sink{
		models.PlatformAndroid: androidSink,
		models.PlatformIOS:     iosSink,
	})

	wallet := &models.Wallet{ID: uuid.New(), DisplayName: "Sensor A"}
	eligible := []*models.NotificationToken{
		{ID: uuid.New(), Token: "a1", Platform: models.PlatformAndroid},
		{ID: uuid.New(), Token: "a2", Platform: models.PlatformAndroid},
		{ID: uuid.New(), Token: "i1", Platform: models.PlatformIOS},
	}

	w.dispatch(context.Background(), models.WalletEvent{Kind: models.EventWarning, Hours: 2}, wallet, eligible)

	require.Equal(t, 1, androidSink.callCount(), "one call per nonempty group")
	assert.ElementsMatch(t, []string{"a1", "a2"}, androidSink.calls[0].tokens)
	require.Equal(t, 1, iosSink.callCount())
	assert.Equal(t, []string{"i1"}, iosSink.calls[0].tokens)

	assert.Len(t, repo.sentBatches, 2, "lastSent stamped per delivered group")
}

func TestDispatch_FailedChannelDoesNotBlockOthers(t *testing.T) {
	androidSink := &fakeSink{err: assert.AnError}
	iosSink := &fakeSink{}
	repo := &fakeRepo{}
	w := newTestWatcher(repo, &fakeIndexer{}, map[models.Platform]models.Sink{
		models.PlatformAndroid: androidSink,
		models.PlatformIOS:     iosSink,
	})

	androidToken := &models.NotificationToken{ID: uuid.New(), Token: "a1", Platform: models.PlatformAndroid}
	iosToken := &models.NotificationToken{ID: uuid.New(), Token: "i1", Platform: models.PlatformIOS}
	repo.tokens = []*models.NotificationToken{androidToken, iosToken}
	wallet := &models.Wallet{ID: uuid.New(), DisplayName: "Sensor A"}

	w.dispatch(context.Background(), models.WalletEvent{Kind: models.EventWarning, Hours: 2}, wallet,
		[]*models.NotificationToken{androidToken, iosToken})

	assert.Equal(t, 1, iosSink.callCount())
	require.Len(t, repo.sentBatches, 1, "only the delivered group is stamped")
	assert.Equal(t, []uuid.UUID{iosToken.ID}, repo.sentBatches[0])
	assert.Nil(t, androidToken.LastSent, "failed delivery must not stamp lastSent")
	assert.NotNil(t, iosToken.LastSent)
}

func TestDispatch_MissingSinkSkipsGroup(t *testing.T) {
	repo := &fakeRepo{}
	w := newTestWatcher(repo, &fakeIndexer{}, map[models.Platform]models.Sink{})

	wallet := &models.Wallet{ID: uuid.New(), DisplayName: "Sensor A"}
	w.dispatch(context.Background(), models.WalletEvent{Kind: models.EventWarning, Hours: 1}, wallet,
		[]*models.NotificationToken{{ID: uuid.New(), Token: "t1", Platform: models.PlatformTelegram}})

	assert.Empty(t, repo.sentBatches)
}

func TestDispatch_NoEligibleSubscribersIsANoop(t *testing.T) {
	sink := &fakeSink{}
	repo := &fakeRepo{}
	w := newTestWatcher(repo, &fakeIndexer{}, map[models.Platform]models.Sink{models.PlatformAndroid: sink})

	w.dispatch(context.Background(), models.WalletEvent{Kind: models.EventGood},
		&models.Wallet{ID: uuid.New()}, nil)

	assert.Zero(t, sink.callCount())
}

// Two subscribers watch one wallet; the one inside its cooldown is filtered
// out and the sink is invoked once with only the other token.
func TestWarningPipeline_CooldownFiltersBatch(t *testing.T) {
	wallet := &models.Wallet{ID: uuid.New(), Address: "AAA", DisplayName: "Sensor A", PhoneName: "Garage Phone",
		LastConnected: int64Ptr(time.Now().Add(-8 * time.Hour).Unix())}
	cooling := &models.NotificationToken{
		ID: uuid.New(), Token: "cooling", Platform: models.PlatformAndroid, IsEnabled: true,
		NotificationInterval: intPtr(30), LastSent: timePtr(time.Now().Add(-10 * time.Minute)),
	}
	ready := &models.NotificationToken{
		ID: uuid.New(), Token: "ready", Platform: models.PlatformAndroid, IsEnabled: true,
	}
	repo := &fakeRepo{
		wallets: []*models.Wallet{wallet},
		tokens:  []*models.NotificationToken{cooling, ready},
		watches: []*models.WalletWatch{
			{ID: uuid.New(), WalletID: wallet.ID, NotificationTokenID: cooling.ID},
			{ID: uuid.New(), WalletID: wallet.ID, NotificationTokenID: ready.ID},
		},
	}
	// Activity on the wallet, but nothing carrying the heartbeat signature.
	idx := &fakeIndexer{transactions: map[string][]models.Transaction{
		"AAA": {{RoundTime: time.Now().Unix(), AssetTransfer: &models.AssetTransfer{AssetID: 1, Amount: 5}}},
	}}
	sink := &fakeSink{}
	w := newTestWatcher(repo, idx, map[models.Platform]models.Sink{models.PlatformAndroid: sink})

	w.RunScanCycle()
	w.wg.Wait()

	require.Equal(t, 1, sink.callCount())
	assert.Equal(t, []string{"ready"}, sink.calls[0].tokens)
	assert.Equal(t, "Sensor A Warning", sink.calls[0].title)
}
