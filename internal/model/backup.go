package model

import "time"

// BackupRecord — единственная запись снапшота на пользователя. Приватные
// данные пользователей изолированы по UserID, поэтому «фиксированный ключ
// аккаунта» — это просто уникальность по владельцу: любое устройство,
// вошедшее в тот же аккаунт, читает и пишет одну и ту же запись.
type BackupRecord struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"not null;uniqueIndex"`

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	DeviceID       string
	MemosBlob      []byte
	CategoriesBlob []byte

	MemosCount      int
	CategoriesCount int

	LastBackupDate time.Time
	AppVersion     string

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// SubscriptionRecord — статус покупки, одна запись на пользователя.
type SubscriptionRecord struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"not null;uniqueIndex"`

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	TransactionID string
	ProductID     string
	IsPro         bool `gorm:"not null;default:false"`
	DeviceID      string
	LastUpdated   time.Time

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
