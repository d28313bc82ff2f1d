package repository

import (
	"errors"
	"trackpass/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultSettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *DefaultSettingRepository {
	return &DefaultSettingRepository{db: db}
}

// Get returns the stored value, or "" when the key was never saved.
func (r *DefaultSettingRepository) Get(key string) (string, error) {
	var setting entity.Setting
	err := r.db.
		Where("setting_key = ?", key).
		First(&setting).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}

	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (r *DefaultSettingRepository) Set(key, value string, now int64) error {
	return r.db.Save(&entity.Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: now,
	}).Error
}

func (r *DefaultSettingRepository) Delete(key string) error {
	return r.db.
		Where("setting_key = ?", key).
		Delete(&entity.Setting{}).Error
}
