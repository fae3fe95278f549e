package models

import "time"

// Device is an SNMP target whose live addresses can be collected.
type Device struct {
	ID        uint `gorm:"primaryKey"`
	Name      string
	IPAddress string
	Community string
	Port      uint16
}

type Report struct {
	ID        uint   `gorm:"primaryKey"`
	UUID      string `gorm:"uniqueIndex;size:36"`
	Source    string // "paste" or "snmp"
	Input     string
	CreatedAt time.Time
	Devices   []ReportDevice
}

type ReportDevice struct {
	ID         uint `gorm:"primaryKey"`
	ReportID   uint `gorm:"index"`
	Position   int
	Name       string
	Interfaces []ReportInterface
}

type ReportInterface struct {
	ID             uint `gorm:"primaryKey"`
	ReportDeviceID uint `gorm:"index"`
	Position       int
	Name           string
	IPv4           string
	IPv6           string
}
