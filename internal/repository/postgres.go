package repository

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/adambennett/Planetwatcher-Server/internal/models"
	"github.com/adambennett/Planetwatcher-Server/pkg/logger"
)

type PostgresDB struct {
	logger *logger.Logger

	Conn *gorm.DB
}

func NewPostgresDB(user, password, dbname, host string, port int, logger *logger.Logger) (models.Repository, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		host, user, password, dbname, port)

	// Configure GORM logger to suppress "record not found" messages
	gormLogger := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // Use standard logger
		gormLogger.Config{
			SlowThreshold:             200 * time.Millisecond, // Log queries slower than this
			LogLevel:                  gormLogger.Warn,        // Only log warnings or errors
			IgnoreRecordNotFoundError: true,                   // Suppress "record not found" errors
			Colorful:                  true,                   // Enable colorful logs
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %s", err)
	}

	if err := db.AutoMigrate(&models.Wallet{}, &models.NotificationToken{}, &models.WalletWatch{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate models: %s", err)
	}
	logger.Info("Successfully connected to PostgreSQL!")
	return &PostgresDB{Conn: db, logger: logger}, nil
}

func (db *PostgresDB) Close() error {
	sqlDB, err := db.Conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %s", err)
	}
	return sqlDB.Close()
}

func (db *PostgresDB) ListWallets() ([]*models.Wallet, error) {
	var wallets []*models.Wallet
	if err := db.Conn.Find(&wallets).Error; err != nil {
		return nil, fmt.Errorf("failed to list wallets: %s", err)
	}

	return wallets, nil
}

func (db *PostgresDB) GetWallet(id uuid.UUID) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := db.Conn.Where("id = ?", id).First(&wallet).Error; err != nil {
		return nil, fmt.Errorf("failed to get wallet: %s", err)
	}

	return &wallet, nil
}

// UpdateWalletHeartbeat writes the heartbeat behind a guard on the stored
// timestamp, so a concurrent poll carrying an older heartbeat cannot move
// last_connected backwards.
func (db *PostgresDB) UpdateWalletHeartbeat(id uuid.UUID, timestamp int64, formatted string) error {
	result := db.Conn.Model(&models.Wallet{}).
		Where("id = ? AND (last_connected IS NULL OR last_connected <= ?)", id, timestamp).
		Updates(map[string]interface{}{
			"last_connected":           timestamp,
			"last_connected_formatted": formatted,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update wallet heartbeat: %s", result.Error)
	}
	if result.RowsAffected == 0 {
		db.logger.Debug("Skipped stale heartbeat update ", "wallet ", id, " timestamp ", timestamp)
	}

	return nil
}

func (db *PostgresDB) ListNotificationTokens() ([]*models.NotificationToken, error) {
	var tokens []*models.NotificationToken
	if err := db.Conn.Find(&tokens).Error; err != nil {
		return nil, fmt.Errorf("failed to list notification tokens: %s", err)
	}

	return tokens, nil
}

func (db *PostgresDB) GetNotificationTokenByValue(token string) (*models.NotificationToken, error) {
	var record models.NotificationToken
	if err := db.Conn.Where("token = ?", token).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get notification token: %s", err)
	}

	return &record, nil
}

func (db *PostgresDB) CreateNotificationToken(token *models.NotificationToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	if err := db.Conn.Create(token).Error; err != nil {
		return fmt.Errorf("failed to create notification token: %s", err)
	}

	return nil
}

func (db *PostgresDB) DeleteNotificationTokenByValue(token string) error {
	if err := db.Conn.Where("token = ?", token).Delete(&models.NotificationToken{}).Error; err != nil {
		return fmt.Errorf("failed to delete notification token: %s", err)
	}

	return nil
}

func (db *PostgresDB) MarkTokensSent(ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	if err := db.Conn.Model(&models.NotificationToken{}).Where("id IN ?", ids).Update("last_sent", at).Error; err != nil {
		return fmt.Errorf("failed to mark tokens sent: %s", err)
	}

	return nil
}

func (db *PostgresDB) ListWatchesForWallet(walletID uuid.UUID) ([]*models.WalletWatch, error) {
	var watches []*models.WalletWatch
	if err := db.Conn.Where("wallet_id = ?", walletID).Find(&watches).Error; err != nil {
		return nil, fmt.Errorf("failed to list watches for wallet: %s", err)
	}

	return watches, nil
}

func (db *PostgresDB) ListWatchesForToken(tokenID uuid.UUID) ([]*models.WalletWatch, error) {
	var watches []*models.WalletWatch
	if err := db.Conn.Where("notification_token_id = ?", tokenID).Find(&watches).Error; err != nil {
		return nil, fmt.Errorf("failed to list watches for token: %s", err)
	}

	return watches, nil
}

func (db *PostgresDB) ReplaceWatchesForToken(tokenID uuid.UUID, walletIDs []uuid.UUID) error {
	err := db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("notification_token_id = ?", tokenID).Delete(&models.WalletWatch{}).Error; err != nil {
			return err
		}
		for _, walletID := range walletIDs {
			watch := models.WalletWatch{
				ID:                  uuid.New(),
				WalletID:            walletID,
				NotificationTokenID: tokenID,
			}
			if err := tx.Create(&watch).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace watches for token: %s", err)
	}

	return nil
}
