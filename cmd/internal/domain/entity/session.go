package entity

// KeyToken is where the bearer token is persisted.
const KeyToken = "token"

// Setting is a persisted key/value pair, the dashboard's "local storage".
type Setting struct {
	Key       string `gorm:"primaryKey;autoIncrement:false;column:setting_key"`
	Value     string `gorm:"not null"`
	UpdatedAt int64  `gorm:"not null;autoUpdateTime:false"`
}
