package store

// Логические ключи хранилища. Имена стабильны: по ним же сканер старых
// расположений находит данные прошлых версий.
const (
	KeyMemos               = "memos"
	KeyCategories          = "categories"
	KeyCategoriesBackup    = "categories_backup"
	KeyArchivedMemos       = "archived_memos"
	KeyMigrationComplete   = "migration_complete"
	KeyWidgetCategory      = "widget_category_selection"
	KeyLastBackupTimestamp = "last_backup_timestamp"
	KeyIsPurchased         = "is_purchased"
)

// CollectionKeys — ключи коллекций, переносимые сканером из старых
// расположений.
func CollectionKeys() []string {
	return []string{KeyMemos, KeyCategories, KeyArchivedMemos}
}
