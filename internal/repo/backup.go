package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"QuickMemo/internal/model"
)

// BackupRepository — доступ к снапшоту и записи о покупке пользователя.
type BackupRepository interface {
	// UpsertBackup заменяет снапшот пользователя целиком.
	UpsertBackup(ctx context.Context, rec *model.BackupRecord) error
	// GetBackup возвращает снапшот; gorm.ErrRecordNotFound, если его нет.
	GetBackup(ctx context.Context, userID int64) (*model.BackupRecord, error)

	UpsertSubscription(ctx context.Context, rec *model.SubscriptionRecord) error
	GetSubscription(ctx context.Context, userID int64) (*model.SubscriptionRecord, error)
}

type backupRepo struct {
	db *gorm.DB
}

// NewBackupRepository создаёт реализацию репозитория снапшотов.
func NewBackupRepository(db *gorm.DB) BackupRepository {
	return &backupRepo{db: db}
}

func (r *backupRepo) UpsertBackup(ctx context.Context, rec *model.BackupRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"device_id", "memos_blob", "categories_blob",
			"memos_count", "categories_count",
			"last_backup_date", "app_version", "updated_at",
		}),
	}).Create(rec).Error
}

func (r *backupRepo) GetBackup(ctx context.Context, userID int64) (*model.BackupRecord, error) {
	var rec model.BackupRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *backupRepo) UpsertSubscription(ctx context.Context, rec *model.SubscriptionRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"transaction_id", "product_id", "is_pro",
			"device_id", "last_updated", "updated_at",
		}),
	}).Create(rec).Error
}

func (r *backupRepo) GetSubscription(ctx context.Context, userID int64) (*model.SubscriptionRecord, error) {
	var rec model.SubscriptionRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}
