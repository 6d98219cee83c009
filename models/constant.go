package models

// Constant is a single settings key/value row.
//
// Recognized names: hourly_rate, open_time, close_time, upi_id,
// whatsapp_number.
type Constant struct {
	ID    uint   `gorm:"primary_key" json:"-"`
	Name  string `gorm:"uniqueIndex;not null" json:"name"`
	Value string `gorm:"not null" json:"value"`
}
