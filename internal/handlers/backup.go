package handlers

import (
	"QuickMemo/internal/config"
	"QuickMemo/internal/middleware"
	"QuickMemo/internal/model"
	"QuickMemo/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BackupHandler обрабатывает снапшоты резервной копии и статус покупки.
type BackupHandler struct {
	BackupService *service.BackupService
	Logger        *zap.SugaredLogger
	Config        *config.Config
}

// NewBackupHandler создаёт хендлер backup
func NewBackupHandler(backupService *service.BackupService, logger *zap.SugaredLogger, cfg *config.Config) *BackupHandler {
	return &BackupHandler{BackupService: backupService, Logger: logger, Config: cfg}
}

// SnapshotDTO — контракт снапшота на проводе. Даты ходят как unix-секунды.
type SnapshotDTO struct {
	DeviceID        string `json:"device_id"`
	MemosData       []byte `json:"memos_data"`
	CategoriesData  []byte `json:"categories_data"`
	MemosCount      int    `json:"memos_count"`
	CategoriesCount int    `json:"categories_count"`
	LastBackupDate  int64  `json:"last_backup_date"`
	AppVersion      string `json:"app_version"`
}

// SubscriptionDTO — контракт записи о покупке на проводе.
type SubscriptionDTO struct {
	TransactionID string `json:"transaction_id"`
	ProductID     string `json:"product_id"`
	IsPro         bool   `json:"is_pro"`
	DeviceID      string `json:"device_id"`
	LastUpdated   int64  `json:"last_updated"`
}

// AccountStatus — проба доступности аккаунта: 200 для владельца куки,
// 401 для анонима.
func (h *BackupHandler) AccountStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"result": "available"})
}

// PutBackup заменяет снапшот пользователя целиком.
func (h *BackupHandler) PutBackup(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req SnapshotDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("PutBackup: invalid request body", "user_id", userID, "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	limit := h.Config.BackupMaxSizeMB * 1024 * 1024
	if limit > 0 && len(req.MemosData)+len(req.CategoriesData) > limit {
		http.Error(w, "backup quota exceeded", http.StatusInsufficientStorage)
		return
	}

	rec := &model.BackupRecord{
		UserID:          userID,
		DeviceID:        req.DeviceID,
		MemosBlob:       req.MemosData,
		CategoriesBlob:  req.CategoriesData,
		MemosCount:      req.MemosCount,
		CategoriesCount: req.CategoriesCount,
		LastBackupDate:  time.Unix(req.LastBackupDate, 0).UTC(),
		AppVersion:      req.AppVersion,
	}
	if err := h.BackupService.SaveBackup(r.Context(), rec); err != nil {
		h.Logger.Errorw("PutBackup: save failed", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// GetBackup возвращает снапшот пользователя; 404, если его ещё нет.
func (h *BackupHandler) GetBackup(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	rec, err := h.BackupService.GetBackup(r.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "no backup", http.StatusNotFound)
			return
		}
		h.Logger.Errorw("GetBackup: load failed", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := SnapshotDTO{
		DeviceID:        rec.DeviceID,
		MemosData:       rec.MemosBlob,
		CategoriesData:  rec.CategoriesBlob,
		MemosCount:      rec.MemosCount,
		CategoriesCount: rec.CategoriesCount,
		LastBackupDate:  rec.LastBackupDate.Unix(),
		AppVersion:      rec.AppVersion,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// PutSubscription заменяет запись о покупке пользователя.
func (h *BackupHandler) PutSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req SubscriptionDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	rec := &model.SubscriptionRecord{
		UserID:        userID,
		TransactionID: req.TransactionID,
		ProductID:     req.ProductID,
		IsPro:         req.IsPro,
		DeviceID:      req.DeviceID,
		LastUpdated:   time.Unix(req.LastUpdated, 0).UTC(),
	}
	if err := h.BackupService.SaveSubscription(r.Context(), rec); err != nil {
		h.Logger.Errorw("PutSubscription: save failed", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// GetSubscription возвращает запись о покупке; 404, если её нет.
func (h *BackupHandler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	rec, err := h.BackupService.GetSubscription(r.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "no subscription", http.StatusNotFound)
			return
		}
		h.Logger.Errorw("GetSubscription: load failed", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := SubscriptionDTO{
		TransactionID: rec.TransactionID,
		ProductID:     rec.ProductID,
		IsPro:         rec.IsPro,
		DeviceID:      rec.DeviceID,
		LastUpdated:   rec.LastUpdated.Unix(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
