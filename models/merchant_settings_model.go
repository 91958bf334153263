package models

import "time"

const MerchantSettingsID = 1

type MerchantSettings struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	UpiID      string    `gorm:"size:255;not null" json:"upi_id"`
	MerchantID string    `gorm:"size:100" json:"merchant_id"`
	Number     string    `gorm:"size:30" json:"number"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func DefaultMerchantSettings() MerchantSettings {
	return MerchantSettings{
		ID:    MerchantSettingsID,
		Name:  "Ekbal Singh",
		UpiID: "paytmqr13jawpo6eg@paytm",
	}
}
