package services

import (
	"errors"

	"github.com/anjiri1684/omnilearn/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetMerchantSettings falls back to the built-in payee until an admin saves one.
func GetMerchantSettings(db *gorm.DB) (models.MerchantSettings, error) {
	var settings models.MerchantSettings
	err := db.First(&settings, "id = ?", models.MerchantSettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultMerchantSettings(), nil
	}
	if err != nil {
		return models.MerchantSettings{}, err
	}
	return settings, nil
}

func SaveMerchantSettings(db *gorm.DB, settings models.MerchantSettings) (models.MerchantSettings, error) {
	settings.ID = models.MerchantSettingsID
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "upi_id", "merchant_id", "number", "updated_at"}),
	}).Create(&settings).Error
	return settings, err
}
