package sync

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/novahq/nova-go/internal/api"
	"github.com/novahq/nova-go/internal/config"
	"github.com/novahq/nova-go/internal/database"
	"github.com/novahq/nova-go/internal/monitor"
)

// Service pulls account transactions from the Nova API into the local ledger
type Service struct {
	db     *database.DB
	config *Config
	logger *monitor.Logger
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewService creates a new sync service
func NewService(db *database.DB, cfg *Config, logger *monitor.Logger) *Service {
	return &Service{
		db:     db,
		config: cfg,
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

// Start starts the sync service
func (s *Service) Start() error {
	if err := s.db.InitSchema(); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	s.logger.Info("database schema ready")

	s.wg.Add(1)
	go s.syncLoop()

	s.logger.Info("transaction sync service started")
	return nil
}

// Stop stops the sync service
func (s *Service) Stop() {
	close(s.stopCh)
	s.wg.Wait()
	s.logger.Info("transaction sync service stopped")
}

// syncLoop runs the main sync loop
func (s *Service) syncLoop() {
	defer s.wg.Done()

	interval := time.Duration(s.config.Sync.IntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run immediately on start
	s.syncAll()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.syncAll()
		}
	}
}

// syncAll syncs all accounts and currencies
func (s *Service) syncAll() {
	s.logger.Info("starting transaction sync pass")

	accounts := s.config.Sync.Accounts
	if len(accounts) == 0 {
		// Fall back to a single default account from the environment.
		apiKey := os.Getenv("NOVA_API_KEY")
		apiSecret := os.Getenv("NOVA_API_SECRET")

		if apiKey == "" || apiSecret == "" {
			s.logger.Error("no accounts configured and NOVA_API_KEY/NOVA_API_SECRET are not set")
			return
		}

		accounts = []AccountConfig{
			{
				AccountID: "default",
				APIKey:    apiKey,
				APISecret: apiSecret,
				Enabled:   true,
			},
		}
	}

	currencies := s.config.Sync.Currencies
	if len(currencies) == 0 {
		currencies = []string{"BTC"}
	}

	for _, account := range accounts {
		if !account.Enabled {
			s.logger.WithFields(map[string]interface{}{
				"account_id": account.AccountID,
			}).Info("skipping disabled account")
			continue
		}

		for _, currency := range currencies {
			s.syncAccountCurrency(account, currency)
		}
	}

	s.logger.Info("transaction sync pass finished")
}

// syncAccountCurrency syncs transactions for one account and currency
func (s *Service) syncAccountCurrency(account AccountConfig, currency string) {
	startTime := time.Now()

	s.logger.WithFields(map[string]interface{}{
		"account_id": account.AccountID,
		"currency":   currency,
	}).Info("syncing account transactions")

	client, err := api.New(&config.Config{
		Nova: config.NovaConfig{
			APIPath:   s.config.Sync.Nova.APIPath,
			APIKey:    account.APIKey,
			APISecret: account.APISecret,
		},
	}, s.logger)
	if err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"account_id": account.AccountID,
			"currency":   currency,
		}).Error("failed to create nova client")

		s.db.SaveSyncStatus(account.AccountID, currency, 0, 0, "error", err.Error())
		return
	}

	lastTxTime, err := s.db.GetLastTransactionTime(account.AccountID, currency)
	if err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"account_id": account.AccountID,
			"currency":   currency,
		}).Warn("failed to read last transaction time, fetching all records")
	}

	filter := &api.TransactionFilter{Currency: &currency}
	if lastTxTime > 0 {
		filter.Since = &lastTxTime
	}
	if s.config.Sync.PageSize > 0 {
		filter.Limit = &s.config.Sync.PageSize
	}

	txs, err := client.GetTransactions(filter)
	if err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"account_id": account.AccountID,
			"currency":   currency,
		}).Error("failed to fetch transactions")

		s.db.SaveSyncStatus(account.AccountID, currency, lastTxTime, 0, "error", err.Error())
		return
	}

	// Filter transactions that are newer than last stored time
	var newTxs []api.Transaction
	maxTxTime := lastTxTime

	for _, tx := range txs {
		if tx.CreatedAt > lastTxTime {
			newTxs = append(newTxs, tx)
			if tx.CreatedAt > maxTxTime {
				maxTxTime = tx.CreatedAt
			}
		}
	}

	if len(newTxs) == 0 {
		s.logger.WithFields(map[string]interface{}{
			"account_id": account.AccountID,
			"currency":   currency,
			"fetched":    len(txs),
		}).Info("no new transactions")

		s.db.SaveSyncStatus(account.AccountID, currency, lastTxTime, 0, "success", "")
		return
	}

	savedCount, err := s.db.SaveTransactions(account.AccountID, newTxs)
	if err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"account_id": account.AccountID,
			"currency":   currency,
			"count":      len(newTxs),
		}).Error("failed to save transactions")

		s.db.SaveSyncStatus(account.AccountID, currency, maxTxTime, savedCount, "error", err.Error())
		return
	}

	duration := time.Since(startTime)
	s.logger.WithFields(map[string]interface{}{
		"account_id":  account.AccountID,
		"currency":    currency,
		"fetched":     len(txs),
		"new":         len(newTxs),
		"saved":       savedCount,
		"duration_ms": duration.Milliseconds(),
	}).Info("sync succeeded")

	s.db.SaveSyncStatus(account.AccountID, currency, maxTxTime, savedCount, "success", "")
}
