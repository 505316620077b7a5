package model

// Snapshot — единица обмена с удалённым хранилищем: обе коллекции в
// сериализованном виде плюс служебные поля. Один снапшот на аккаунт,
// под фиксированным ключом — любое устройство с тем же аккаунтом
// видит тот же снапшот.
type Snapshot struct {
	DeviceID        string    `json:"device_id"`
	MemosData       []byte    `json:"memos_data"`
	CategoriesData  []byte    `json:"categories_data"`
	MemosCount      int       `json:"memos_count"`
	CategoriesCount int       `json:"categories_count"`
	LastBackupDate  Timestamp `json:"last_backup_date"`
	AppVersion      string    `json:"app_version"`
}

// SubscriptionStatus — запись о покупке, хранящаяся рядом со снапшотом.
// Позволяет восстановить статус Pro после переустановки.
type SubscriptionStatus struct {
	TransactionID string    `json:"transaction_id"`
	ProductID     string    `json:"product_id"`
	IsPro         bool      `json:"is_pro"`
	DeviceID      string    `json:"device_id"`
	LastUpdated   Timestamp `json:"last_updated"`
}
