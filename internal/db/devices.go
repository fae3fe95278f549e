package db

import (
	"errors"
	"fmt"

	"go-ipconf/internal/models"

	"gorm.io/gorm"
)

func ListDevices() ([]models.Device, error) {
	var devices []models.Device
	if err := DB.Order("name asc").Find(&devices).Error; err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	return devices, nil
}

func GetDevice(id uint) (*models.Device, error) {
	var dev models.Device
	err := DB.First(&dev, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("device %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load device %d: %w", id, err)
	}
	return &dev, nil
}

func CreateDevice(dev *models.Device) error {
	if dev.Port == 0 {
		dev.Port = 161
	}
	if err := DB.Create(dev).Error; err != nil {
		return fmt.Errorf("create device: %w", err)
	}
	return nil
}

func DeleteDevice(id uint) error {
	if err := DB.Delete(&models.Device{}, id).Error; err != nil {
		return fmt.Errorf("delete device %d: %w", id, err)
	}
	return nil
}
