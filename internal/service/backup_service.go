package service

import (
	"context"

	"go.uber.org/zap"

	"QuickMemo/internal/model"
	"QuickMemo/internal/repo"
)

// BackupService — хранение снапшотов и записей о покупке.
type BackupService struct {
	repo   repo.BackupRepository
	logger *zap.SugaredLogger
}

func NewBackupService(r repo.BackupRepository, logger *zap.SugaredLogger) *BackupService {
	return &BackupService{repo: r, logger: logger}
}

// SaveBackup заменяет снапшот пользователя целиком (upsert).
func (s *BackupService) SaveBackup(ctx context.Context, rec *model.BackupRecord) error {
	if err := s.repo.UpsertBackup(ctx, rec); err != nil {
		return err
	}
	s.logger.Infow("backup saved",
		"user", rec.UserID, "memos", rec.MemosCount, "categories", rec.CategoriesCount,
		"device", rec.DeviceID)
	return nil
}

// GetBackup возвращает снапшот пользователя.
func (s *BackupService) GetBackup(ctx context.Context, userID int64) (*model.BackupRecord, error) {
	return s.repo.GetBackup(ctx, userID)
}

// SaveSubscription заменяет запись о покупке пользователя.
func (s *BackupService) SaveSubscription(ctx context.Context, rec *model.SubscriptionRecord) error {
	return s.repo.UpsertSubscription(ctx, rec)
}

// GetSubscription возвращает запись о покупке пользователя.
func (s *BackupService) GetSubscription(ctx context.Context, userID int64) (*model.SubscriptionRecord, error) {
	return s.repo.GetSubscription(ctx, userID)
}
