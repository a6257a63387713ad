package initializers

import (
	"github.com/Kariqs/amexan-commerce/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return err
	}
	log.Info("database synced successfully")
	return nil
}
