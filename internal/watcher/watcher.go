package watcher

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/adambennett/Planetwatcher-Server/internal/config"
	"github.com/adambennett/Planetwatcher-Server/internal/models"
	"github.com/adambennett/Planetwatcher-Server/pkg/logger"
)

// Watcher is the main struct for the heartbeat monitoring engine. It owns
// the scan scheduler and runs the poll -> classify -> select -> dispatch
// pipeline for every tracked wallet.
type Watcher struct {
	logger *logger.Logger
	config *config.Config

	repo    models.Repository
	indexer models.IndexerService
	sinks   map[models.Platform]models.Sink

	assetID uint64
	stagger time.Duration

	// now is swapped out by tests.
	now func() time.Time

	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher creates a new Watcher instance
func NewWatcher(
	repo models.Repository,
	indexer models.IndexerService,
	sinks map[models.Platform]models.Sink,
	logger *logger.Logger,
	config *config.Config,
) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		repo:    repo,
		indexer: indexer,
		sinks:   sinks,
		logger:  logger,
		config:  config,
		assetID: config.HeartbeatAssetID,
		stagger: config.StaggerDelay,
		now:     time.Now,
		cron:    cron.New(),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start runs one immediate scan, schedules the periodic ones, and blocks
// until Shutdown is called.
func (w *Watcher) Start() error {
	if !w.config.Notifications {
		w.logger.Info("Notifications disabled, watcher idle")
		<-w.ctx.Done()
		return nil
	}

	w.RunScanCycle()

	spec := fmt.Sprintf("@every %s", w.config.ScanInterval)
	if _, err := w.cron.AddFunc(spec, w.RunScanCycle); err != nil {
		return fmt.Errorf("failed to schedule scan cycle: %w", err)
	}
	w.cron.Start()
	w.logger.Info("Watcher started ", "interval ", w.config.ScanInterval, " stagger ", w.stagger)

	<-w.ctx.Done()
	return nil
}

// Shutdown stops the scheduler, cancels in-flight wallet pipelines and
// waits for them to drain.
func (w *Watcher) Shutdown() {
	if w.cron != nil {
		w.cron.Stop()
	}
	w.cancel()
	w.wg.Wait()
	w.logger.Info("Watcher stopped")
}

// RunScanCycle launches one staggered pipeline per tracked wallet. The
// stagger spaces the indexer calls; the pipelines themselves are mutually
// independent and a slow or failing wallet never blocks its siblings.
func (w *Watcher) RunScanCycle() {
	wallets, err := w.repo.ListWallets()
	if err != nil {
		w.logger.Error("Failed to list wallets ", "error ", err)
		return
	}
	w.logger.Debug("Scan cycle starting ", "wallets ", len(wallets))

	var delay time.Duration
	for _, wallet := range wallets {
		w.wg.Add(1)
		go w.walletPipeline(wallet, delay)
		delay += w.stagger
	}
}

// walletPipeline runs poll -> classify -> select -> dispatch for a single
// wallet. Every failure is handled here so it cannot escape to the scan
// cycle.
func (w *Watcher) walletPipeline(wallet *models.Wallet, delay time.Duration) {
	defer w.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("Wallet pipeline panicked ",
				"wallet ", wallet.DisplayName,
				" panic ", r,
				" stack ", string(debug.Stack()))
		}
	}()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-w.ctx.Done():
			return
		}
	}

	result := w.poll(w.ctx, wallet)
	event := w.classify(wallet, result, w.now())
	if event.Kind == models.EventUnknown {
		return
	}

	if event.Kind == models.EventGood {
		// Re-read so the body carries the formatted time written a moment
		// ago rather than the stale in-memory copy.
		if fresh, err := w.repo.GetWallet(wallet.ID); err != nil {
			w.logger.Error("Failed to refresh wallet ", "wallet ", wallet.DisplayName, " error ", err)
		} else {
			wallet = fresh
		}
	}

	tokens, err := w.repo.ListNotificationTokens()
	if err != nil {
		w.logger.Error("Failed to list notification tokens ", "error ", err)
		return
	}
	watches, err := w.repo.ListWatchesForWallet(wallet.ID)
	if err != nil {
		w.logger.Error("Failed to list watches ", "wallet ", wallet.DisplayName, " error ", err)
		return
	}

	eligible := selectEligible(event, tokens, watches, w.now())
	w.dispatch(w.ctx, event, wallet, eligible)
}

// RegisterDevice (re)registers a subscriber token. Any previous row for the
// token is replaced and the new subscriber starts out watching every
// tracked wallet, as the mobile apps expect.
func (w *Watcher) RegisterDevice(token string, platform models.Platform) error {
	if err := w.repo.DeleteNotificationTokenByValue(token); err != nil {
		return err
	}

	created := &models.NotificationToken{
		Token:     token,
		Platform:  platform,
		IsEnabled: true,
	}
	if err := w.repo.CreateNotificationToken(created); err != nil {
		return err
	}

	wallets, err := w.repo.ListWallets()
	if err != nil {
		return err
	}
	walletIDs := make([]uuid.UUID, 0, len(wallets))
	for _, wallet := range wallets {
		walletIDs = append(walletIDs, wallet.ID)
	}
	return w.repo.ReplaceWatchesForToken(created.ID, walletIDs)
}

// IsRegistered checks if the given token belongs to a subscriber
func (w *Watcher) IsRegistered(token string) (bool, error) {
	record, err := w.repo.GetNotificationTokenByValue(token)
	if err != nil {
		return false, err
	}
	return record != nil, nil
}

func (w *Watcher) ListWallets() ([]*models.Wallet, error) {
	return w.repo.ListWallets()
}

// WatchesForToken lists the watches held by the subscriber carrying the
// token.
func (w *Watcher) WatchesForToken(token string) ([]*models.WalletWatch, error) {
	record, err := w.repo.GetNotificationTokenByValue(token)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	return w.repo.ListWatchesForToken(record.ID)
}

// ReplaceWatchesForToken swaps the subscriber's watch set for the given
// wallets.
func (w *Watcher) ReplaceWatchesForToken(token string, walletIDs []uuid.UUID) error {
	record, err := w.repo.GetNotificationTokenByValue(token)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("unknown notification token")
	}
	return w.repo.ReplaceWatchesForToken(record.ID, walletIDs)
}
